package discovery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/ratelimit"
	"github.com/leeks92/bus-mustarddata/internal/tago"
	"github.com/leeks92/bus-mustarddata/internal/terminal"
)

// ScheduleSource queries schedules for a full-ID terminal pair
type ScheduleSource interface {
	Schedules(ctx context.Context, depID, arrID, date string) ([]tago.ScheduleItem, error)
}

// DestinationSource lists destinations of a short-code departure and
// queries their schedules
type DestinationSource interface {
	ScheduleSource
	Destinations(ctx context.Context, depCode string) ([]model.ArrivalTerminal, error)
}

// CheckpointFunc persists the routes discovered so far
type CheckpointFunc func(ctx context.Context, routes []model.Route) error

// Options control one discovery pass
type Options struct {
	Date            string // YYYYMMDD
	ScheduleClass   ratelimit.Class
	CheckpointEvery int // departures between checkpoints, 0 disables
	Checkpoint      CheckpointFunc
}

// Stats summarise one discovery pass
type Stats struct {
	Departures  int
	APICalls    int
	Discovered  int
	SkippedSeen int
	SkippedSelf int
}

// Engine discovers routes by querying the provider one call at a time. The
// seen-set and the route list span every pass run on the same engine.
type Engine struct {
	limiter *ratelimit.Limiter
	logger  *zap.SugaredLogger

	seen   map[string]bool
	routes []model.Route
}

func NewEngine(limiter *ratelimit.Limiter, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		limiter: limiter,
		logger:  logger,
		seen:    make(map[string]bool),
	}
}

// Routes returns a copy of the routes discovered so far, in discovery order
func (e *Engine) Routes() []model.Route {
	out := make([]model.Route, len(e.routes))
	copy(out, e.routes)
	return out
}

// Seen reports whether a route key was already discovered
func (e *Engine) Seen(key string) bool {
	return e.seen[key]
}

// DiscoverByDestinations asks each short-code departure for its destinations
// and queries schedules for every resolved pair not yet seen
func (e *Engine) DiscoverByDestinations(ctx context.Context, src DestinationSource, dir *terminal.ExpressDirectory, opts Options) (Stats, error) {
	var stats Stats
	total := len(dir.Short)

	for i, dep := range dir.Short {
		if err := e.limiter.Wait(ctx, ratelimit.ClassDestinations); err != nil {
			return stats, err
		}
		stats.APICalls++
		arrivals, err := src.Destinations(ctx, dep.Code)
		if err != nil {
			return stats, fmt.Errorf("failed to list destinations of %s: %w", dep.Code, err)
		}
		stats.Departures++

		if len(arrivals) > 0 {
			e.logger.Debugw("Discovery: destinations", "progress", fmt.Sprintf("%d/%d", i+1, total), "departure", dep.Name, "count", len(arrivals))
		}

		depID := dir.FullID(dep.Code)
		for _, arr := range arrivals {
			arrID := dir.Canonical(arr.Code)
			key := model.RouteKey(depID, arrID)
			if e.seen[key] {
				stats.SkippedSeen++
				continue
			}

			found, err := e.probe(ctx, src, depID, arrID, opts, &stats)
			if err != nil {
				return stats, err
			}
			if len(found) > 0 {
				e.add(model.Route{
					DepTerminalID:   depID,
					DepTerminalName: dep.Name,
					ArrTerminalID:   arrID,
					ArrTerminalName: arr.Name,
					Schedules:       found,
				}, &stats)
			}
		}

		if (i+1)%10 == 0 {
			e.logger.Infow("Discovery: progress", "departures", fmt.Sprintf("%d/%d", i+1, total), "routes", len(e.routes))
		}
		if err := e.checkpoint(ctx, opts, i+1); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// ProbePairs queries schedules for every pair majors x all, skipping
// self-pairs and pairs already seen
func (e *Engine) ProbePairs(ctx context.Context, src ScheduleSource, majors, all []model.Terminal, opts Options) (Stats, error) {
	var stats Stats

	for i, dep := range majors {
		stats.Departures++
		for _, arr := range all {
			if dep.ID == arr.ID {
				stats.SkippedSelf++
				continue
			}
			key := model.RouteKey(dep.ID, arr.ID)
			if e.seen[key] {
				stats.SkippedSeen++
				continue
			}

			found, err := e.probe(ctx, src, dep.ID, arr.ID, opts, &stats)
			if err != nil {
				return stats, err
			}
			if len(found) > 0 {
				e.add(model.Route{
					DepTerminalID:   dep.ID,
					DepTerminalName: dep.Name,
					ArrTerminalID:   arr.ID,
					ArrTerminalName: arr.Name,
					Schedules:       found,
				}, &stats)
			}
		}

		e.logger.Debugw("Discovery: probed departure",
			"progress", fmt.Sprintf("%d/%d", i+1, len(majors)),
			"departure", dep.Name,
			"routes", len(e.routes),
		)
		if err := e.checkpoint(ctx, opts, i+1); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func (e *Engine) probe(ctx context.Context, src ScheduleSource, depID, arrID string, opts Options, stats *Stats) ([]model.Schedule, error) {
	class := opts.ScheduleClass
	if class == "" {
		class = ratelimit.ClassSchedules
	}
	if err := e.limiter.Wait(ctx, class); err != nil {
		return nil, err
	}

	stats.APICalls++
	items, err := src.Schedules(ctx, depID, arrID, opts.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules %s: %w", model.RouteKey(depID, arrID), err)
	}
	return MapSchedules(items), nil
}

func (e *Engine) add(route model.Route, stats *Stats) {
	e.seen[route.Key()] = true
	e.routes = append(e.routes, route)
	stats.Discovered++
}

func (e *Engine) checkpoint(ctx context.Context, opts Options, processed int) error {
	if opts.Checkpoint == nil || opts.CheckpointEvery <= 0 || processed%opts.CheckpointEvery != 0 {
		return nil
	}
	if err := opts.Checkpoint(ctx, e.Routes()); err != nil {
		return fmt.Errorf("failed to checkpoint routes: %w", err)
	}
	e.logger.Infow("Discovery: checkpoint saved", "routes", len(e.routes))
	return nil
}

// MapSchedules converts provider items, keeping provider order
func MapSchedules(items []tago.ScheduleItem) []model.Schedule {
	schedules := make([]model.Schedule, 0, len(items))
	for _, it := range items {
		grade := it.GradeNm.String()
		if grade == "" {
			grade = model.DefaultGrade
		}
		charge := int(it.Charge)
		if charge < 0 {
			charge = 0
		}
		schedules = append(schedules, model.Schedule{
			DepTime: model.FormatTime(it.DepPlandTime.String()),
			ArrTime: model.FormatTime(it.ArrPlandTime.String()),
			Grade:   grade,
			Charge:  charge,
		})
	}
	return schedules
}
