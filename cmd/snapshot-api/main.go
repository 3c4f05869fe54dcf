// snapshot-api serves terminal, route and airport bus lookups over the
// snapshots written by the fetch commands.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/api"
	"github.com/leeks92/bus-mustarddata/internal/config"
	"github.com/leeks92/bus-mustarddata/internal/logging"
	"github.com/leeks92/bus-mustarddata/internal/store"
)

const snapshotSyncInterval = 30 * time.Second

func main() {
	logger := logging.Get()
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("Failed to load configuration", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to open snapshot storage", "error", err)
	}
	defer st.Close()

	go syncSnapshots(ctx, st, logger)

	handler := api.NewHandler(st, cfg.StaleAfter, logger)
	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           api.NewRouter(handler, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infow("API server starting",
			"addr", cfg.APIAddr,
			"storage", cfg.StorageBackend,
			"cache", cfg.CacheBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Server failed to start", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("Graceful shutdown failed", "error", err)
	}
	logger.Info("Goodbye!")
}

// syncSnapshots drops cached datasets once a collector rewrites the snapshots
func syncSnapshots(ctx context.Context, st *store.Store, logger *zap.SugaredLogger) {
	ticker := time.NewTicker(snapshotSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := st.SyncCache(ctx); err != nil && !errors.Is(err, store.ErrNotFound) {
				logger.Warnw("Snapshot sync failed", "error", err)
			}
		}
	}
}
