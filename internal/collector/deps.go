package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/config"
	"github.com/leeks92/bus-mustarddata/internal/metadata"
	"github.com/leeks92/bus-mustarddata/internal/metrics"
	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/notify"
	"github.com/leeks92/bus-mustarddata/internal/ratelimit"
	"github.com/leeks92/bus-mustarddata/internal/store"
	"github.com/leeks92/bus-mustarddata/internal/tago"
)

// Deps is everything a collection run needs
type Deps struct {
	Config   *config.Config
	Store    *store.Store
	API      *tago.API
	Limiter  *ratelimit.Limiter
	Notifier notify.Notifier
	Metadata *metadata.Aggregator
	Yields   *metrics.YieldTracker
	Logger   *zap.SugaredLogger
	RunID    string
	Now      func() time.Time
}

// Bootstrap checks the service key and opens storage, the provider client
// and the notifier
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Deps, error) {
	if err := cfg.RequireServiceKey(); err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := tago.NewClient(httpClient, logger)
	api := tago.NewAPI(client, tago.Endpoints{
		ExpressInfoURL: cfg.ExpressInfoURL,
		ExpressArrURL:  cfg.ExpressArrURL,
		IntercityURL:   cfg.IntercityURL,
		AirportURL:     cfg.AirportURL,
		ServiceKey:     cfg.ServiceKey,
		ArrServiceKey:  cfg.ArrServiceKey,
	})

	d := &Deps{
		Config:   cfg,
		Store:    st,
		API:      api,
		Limiter:  NewLimiter(cfg.Profile.Delays),
		Notifier: notify.New(cfg.AMQPURL, cfg.AMQPQueue, logger),
		Metadata: metadata.NewAggregator(st),
		Yields:   metrics.NewYieldTracker(st),
		Logger:   logger,
		RunID:    uuid.New().String(),
		Now:      time.Now,
	}
	logger.Infow("Collector: initialized",
		"runId", d.RunID,
		"storage", cfg.StorageBackend,
		"cache", cfg.CacheBackend,
	)
	return d, nil
}

// NewLimiter builds the per-class pacing from profile delays
func NewLimiter(d config.Delays) *ratelimit.Limiter {
	return ratelimit.NewLimiter(config.Duration(d.TerminalListMS), map[ratelimit.Class]time.Duration{
		ratelimit.ClassTerminalList:   config.Duration(d.TerminalListMS),
		ratelimit.ClassDestinations:   config.Duration(d.DestinationsMS),
		ratelimit.ClassSchedules:      config.Duration(d.SchedulesMS),
		ratelimit.ClassProbe:          config.Duration(d.ProbeMS),
		ratelimit.ClassIntercityProbe: config.Duration(d.IntercityProbeMS),
		ratelimit.ClassAirport:        config.Duration(d.AirportMS),
	})
}

// Close releases the notifier and the store
func (d *Deps) Close() error {
	if err := d.Notifier.Close(); err != nil {
		d.Logger.Warnw("Collector: failed to close notifier", "error", err)
	}
	if err := d.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// publish sends a snapshot event. Delivery failures never fail a run.
func (d *Deps) publish(ctx context.Context, e notify.Event) {
	if d.Notifier == nil {
		return
	}
	e.RunID = d.RunID
	e.At = d.now().UTC()
	if err := d.Notifier.Publish(ctx, e); err != nil {
		d.Logger.Warnw("Collector: failed to publish event", "dataset", e.Dataset, "error", err)
	}
}

// checkYield compares a run's yield with past runs and warns on a sharp
// drop, which usually means a revoked key or an off-hours run
func (d *Deps) checkYield(ctx context.Context, bus model.BusType, count int) {
	if d.Yields == nil {
		return
	}
	obs, err := d.Yields.Observe(ctx, bus, count)
	if err != nil {
		d.Logger.Warnw("Collector: failed to update yield baseline", "busType", bus, "error", err)
		return
	}
	if obs.Anomalous {
		d.Logger.Warnw("Collector: yield far below usual",
			"busType", bus,
			"count", count,
			"mean", obs.Baseline.Mean,
			"zScore", obs.ZScore,
		)
	}
}

func (d *Deps) runID() *string {
	if d.RunID == "" {
		return nil
	}
	id := d.RunID
	return &id
}
