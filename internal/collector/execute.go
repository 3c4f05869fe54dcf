package collector

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/config"
	"github.com/leeks92/bus-mustarddata/internal/discovery"
	"github.com/leeks92/bus-mustarddata/internal/tago"
	"github.com/leeks92/bus-mustarddata/internal/terminal"
)

// RunFunc is one collection run
type RunFunc func(ctx context.Context) error

// Execute runs run and calls exit(1) once if it fails. Partial data saved by
// checkpoints before the failure is kept.
func Execute(ctx context.Context, run RunFunc, exit func(int), logger *zap.SugaredLogger) {
	err := run(ctx)
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, tago.ErrQuotaExceeded):
		logger.Errorw("Collector: API quota exceeded, aborting", "error", err)
	case errors.Is(err, terminal.ErrNoTerminals):
		logger.Errorw("Collector: no terminals returned, check the service key", "error", err)
	case errors.Is(err, config.ErrMissingServiceKey):
		logger.Errorw("Collector: service key missing, set BUS_API_KEY", "error", err)
	case errors.Is(err, discovery.ErrOutsideRunWindow):
		logger.Errorw("Collector: refusing to run outside the run window", "error", err)
	case errors.Is(err, context.Canceled):
		logger.Warnw("Collector: interrupted, data up to the last checkpoint is kept", "error", err)
	default:
		logger.Errorw("Collector: run failed", "error", err)
	}
	exit(1)
}

// Main is the shared body of the fetch commands: load config, bootstrap,
// run the collector built by newRun, and exit non-zero on failure
func Main(ctx context.Context, newRun func(*Deps) RunFunc, exit func(int), logger *zap.SugaredLogger) {
	run := func(ctx context.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		deps, err := Bootstrap(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := deps.Close(); err != nil {
				logger.Warnw("Collector: shutdown error", "error", err)
			}
		}()
		return newRun(deps)(ctx)
	}
	Execute(ctx, run, exit, logger)
}
