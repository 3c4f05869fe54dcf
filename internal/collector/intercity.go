package collector

import (
	"context"
	"fmt"

	"github.com/leeks92/bus-mustarddata/internal/discovery"
	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/notify"
	"github.com/leeks92/bus-mustarddata/internal/ratelimit"
	"github.com/leeks92/bus-mustarddata/internal/store"
	"github.com/leeks92/bus-mustarddata/internal/terminal"
)

// Intercity probes major intercity terminal pairs and merges the result
// into the stored snapshot. The provider only serves same-day schedules,
// so runs outside the morning window find fewer routes.
type Intercity struct {
	*Deps
}

func NewIntercity(d *Deps) *Intercity {
	return &Intercity{Deps: d}
}

func (c *Intercity) Run(ctx context.Context) error {
	now := discovery.InServiceZone(c.now())
	profile := c.Config.Profile.Intercity

	window := discovery.RunWindow{StartHour: profile.RunWindow.StartHour, EndHour: profile.RunWindow.EndHour}
	if err := window.Check(now); err != nil {
		if c.Config.EnforceRunWindow {
			return err
		}
		c.Logger.Warnw("Intercity: running outside the recommended window", "error", err)
	}
	if discovery.IsLateNight(now) {
		c.Logger.Warnw("Intercity: late night run, same-day schedules will be sparse", "hour", now.Hour())
	}

	c.Logger.Infow("Intercity: collection started", "runId", c.RunID)

	builder := terminal.NewBuilder(c.Limiter, nil, c.Logger)
	all, err := builder.BuildIntercity(ctx, c.API.Intercity())
	if err != nil {
		return err
	}
	if err := c.Store.SaveTerminals(ctx, model.Intercity, all); err != nil {
		return fmt.Errorf("failed to save intercity terminals: %w", err)
	}

	majors := discovery.MajorSelector{
		IDs:          profile.Majors.IDs,
		NamePatterns: profile.Majors.NamePatterns,
	}.Select(all)
	c.Logger.Infow("Intercity: major terminals",
		"count", len(majors),
		"pairs", len(majors)*len(majors),
	)

	existing, err := c.Store.Routes(ctx, model.Intercity)
	if err != nil {
		return fmt.Errorf("failed to load intercity routes: %w", err)
	}
	c.Logger.Infow("Intercity: existing routes loaded", "count", len(existing))

	engine := discovery.NewEngine(c.Limiter, c.Logger)
	stats, err := engine.ProbePairs(ctx, c.API.Intercity(), majors, majors, discovery.Options{
		Date:            discovery.ServiceDate(now),
		ScheduleClass:   ratelimit.ClassIntercityProbe,
		CheckpointEvery: profile.CheckpointEvery,
		Checkpoint:      c.merge,
	})
	if err != nil {
		return fmt.Errorf("intercity probe: %w", err)
	}

	fresh := engine.Routes()
	c.checkYield(ctx, model.Intercity, len(fresh))

	merged, err := c.Store.MergeRoutes(ctx, model.Intercity, fresh)
	if err != nil {
		return fmt.Errorf("failed to merge intercity routes: %w", err)
	}

	if _, err := c.Metadata.Update(ctx, model.MetadataUpdate{
		IntercityTerminalCount: model.Count(len(all)),
		IntercityRouteCount:    model.Count(len(merged)),
		RunID:                  c.runID(),
	}); err != nil {
		return err
	}

	c.publish(ctx, notify.Event{Dataset: store.DatasetIntercityRoutes, BusType: model.Intercity, Count: len(merged)})
	c.Logger.Infow("Intercity: collection finished",
		"apiCalls", stats.APICalls,
		"fresh", len(fresh),
		"previous", len(existing),
		"routes", len(merged),
	)
	return nil
}

func (c *Intercity) merge(ctx context.Context, routes []model.Route) error {
	if _, err := c.Store.MergeRoutes(ctx, model.Intercity, routes); err != nil {
		return fmt.Errorf("failed to merge intercity routes: %w", err)
	}
	return nil
}
