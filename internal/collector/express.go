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

// Express collects express terminals and routes. It also refreshes the
// intercity terminal snapshot.
type Express struct {
	*Deps
	Resolver terminal.IdentityResolver
}

// NewExpress resolves short codes with the profile's pinned identity map,
// falling back to name matching
func NewExpress(d *Deps) *Express {
	return &Express{
		Deps:     d,
		Resolver: terminal.NewResolver(d.Config.Profile.Express.IdentityMap),
	}
}

func (e *Express) Run(ctx context.Context) error {
	e.Logger.Infow("Express: collection started", "runId", e.RunID)

	builder := terminal.NewBuilder(e.Limiter, e.Resolver, e.Logger)
	dir, err := builder.BuildExpress(ctx, e.API.Express())
	if err != nil {
		return err
	}

	intercity, err := builder.List(ctx, e.API.Intercity())
	if err != nil {
		return fmt.Errorf("failed to list intercity terminals: %w", err)
	}
	e.Logger.Infow("Express: intercity terminals refreshed", "count", len(intercity))

	if err := e.saveTerminals(ctx, model.Express, dir.Full); err != nil {
		return err
	}
	if err := e.saveTerminals(ctx, model.Intercity, intercity); err != nil {
		return err
	}

	date := discovery.ServiceDate(e.now())
	e.Logger.Infow("Express: service date", "date", date)

	engine := discovery.NewEngine(e.Limiter, e.Logger)

	statsA, err := engine.DiscoverByDestinations(ctx, e.API.Express(), dir, discovery.Options{
		Date:            date,
		ScheduleClass:   ratelimit.ClassSchedules,
		CheckpointEvery: e.Config.Profile.Express.CheckpointEvery,
		Checkpoint:      e.checkpoint,
	})
	if err != nil {
		return fmt.Errorf("destination discovery: %w", err)
	}
	e.logStats("destinations", statsA, len(engine.Routes()))
	if err := e.checkpoint(ctx, engine.Routes()); err != nil {
		return err
	}

	majors := discovery.MajorSelector{
		IDs:          e.Config.Profile.Express.Majors.IDs,
		NamePatterns: e.Config.Profile.Express.Majors.NamePatterns,
	}.Select(dir.Full)
	e.Logger.Infow("Express: major terminals", "count", len(majors))

	statsB, err := engine.ProbePairs(ctx, e.API.Express(), majors, dir.Full, discovery.Options{
		Date:            date,
		ScheduleClass:   ratelimit.ClassProbe,
		CheckpointEvery: e.Config.Profile.Express.ProbeCheckpointEvery,
		Checkpoint:      e.checkpoint,
	})
	if err != nil {
		return fmt.Errorf("major terminal probe: %w", err)
	}

	routes := engine.Routes()
	e.logStats("probe", statsB, len(routes))
	stored, err := e.persist(ctx, routes)
	if err != nil {
		return err
	}

	e.checkYield(ctx, model.Express, len(routes))

	routeCount := len(stored)

	if _, err := e.Metadata.Update(ctx, model.MetadataUpdate{
		ExpressTerminalCount:   model.Count(len(dir.Full)),
		IntercityTerminalCount: model.Count(len(intercity)),
		ExpressRouteCount:      model.Count(routeCount),
		RunID:                  e.runID(),
	}); err != nil {
		return err
	}

	e.publish(ctx, notify.Event{Dataset: store.DatasetExpressRoutes, BusType: model.Express, Count: routeCount})
	e.Logger.Infow("Express: collection finished",
		"terminals", len(dir.Full),
		"routes", routeCount,
	)
	return nil
}

// checkpoint merges the routes found so far into the snapshot. Routes the
// run has not reached yet stay as they were.
func (e *Express) checkpoint(ctx context.Context, routes []model.Route) error {
	if _, err := e.Store.MergeRoutes(ctx, model.Express, routes); err != nil {
		return fmt.Errorf("failed to merge express routes: %w", err)
	}
	return nil
}

// persist writes the final route list and returns the stored snapshot. It
// merges unless wholesale replacement is configured.
func (e *Express) persist(ctx context.Context, routes []model.Route) ([]model.Route, error) {
	if !e.Config.ExpressReplace {
		stored, err := e.Store.MergeRoutes(ctx, model.Express, routes)
		if err != nil {
			return nil, fmt.Errorf("failed to merge express routes: %w", err)
		}
		return stored, nil
	}
	if err := e.Store.SaveRoutes(ctx, model.Express, routes); err != nil {
		return nil, fmt.Errorf("failed to save express routes: %w", err)
	}
	e.Logger.Infow("Express: route snapshot replaced", "routes", len(routes))
	return routes, nil
}

// saveTerminals keeps the previous snapshot when a list comes back empty
func (e *Express) saveTerminals(ctx context.Context, bus model.BusType, terminals []model.Terminal) error {
	if len(terminals) == 0 {
		e.Logger.Warnw("Express: empty terminal list, keeping previous snapshot", "busType", bus)
		return nil
	}
	if err := e.Store.SaveTerminals(ctx, bus, terminals); err != nil {
		return fmt.Errorf("failed to save %s terminals: %w", bus, err)
	}
	e.publish(ctx, notify.Event{Dataset: terminalsDataset(bus), BusType: bus, Count: len(terminals)})
	return nil
}

func (e *Express) logStats(strategy string, s discovery.Stats, total int) {
	e.Logger.Infow("Express: strategy finished",
		"strategy", strategy,
		"departures", s.Departures,
		"apiCalls", s.APICalls,
		"discovered", s.Discovered,
		"skippedSeen", s.SkippedSeen,
		"routes", total,
	)
}

func terminalsDataset(bus model.BusType) string {
	name, err := store.TerminalsDataset(bus)
	if err != nil {
		return string(bus)
	}
	return name
}
