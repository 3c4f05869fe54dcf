package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/cache"
	"github.com/leeks92/bus-mustarddata/internal/config"
)

// OpenBackend selects the backend named by cfg.StorageBackend
func OpenBackend(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (Backend, error) {
	switch cfg.StorageBackend {
	case "", "file":
		return NewFileBackend(cfg.DataDir)
	case "sqlite":
		return NewSQLiteBackend(ctx, cfg.SQLitePath, logger)
	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		return NewPostgresBackend(ctx, cfg.PostgresURL)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// OpenCache selects the cache named by cfg.CacheBackend. An unreachable
// Redis falls back to no caching.
func OpenCache(cfg *config.Config, logger *zap.SugaredLogger) cache.Cache {
	switch cfg.CacheBackend {
	case "redis":
		c, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			logger.Warnw("Store: redis cache unavailable, caching disabled", "error", err)
			return cache.NewNoOpCache()
		}
		return c
	case "none":
		return cache.NewNoOpCache()
	default:
		return cache.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL)
	}
}

// Open builds a Store from configuration
func Open(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Store, error) {
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return New(backend, OpenCache(cfg, logger), logger), nil
}
