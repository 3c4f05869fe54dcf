package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/cache"
	"github.com/leeks92/bus-mustarddata/internal/metrics"
	"github.com/leeks92/bus-mustarddata/internal/model"
)

// Store reads and writes typed snapshot datasets. Reads go through the
// cache; writes replace the backend document and refresh the cache entry.
type Store struct {
	backend Backend
	cache   cache.Cache
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	syncedAt time.Time
}

// New creates a store. A nil cache disables caching.
func New(backend Backend, c cache.Cache, logger *zap.SugaredLogger) *Store {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Store{backend: backend, cache: c, logger: logger}
}

// Close closes the cache and the backend
func (s *Store) Close() error {
	cacheErr := s.cache.Close()
	if err := s.backend.Close(); err != nil {
		return err
	}
	return cacheErr
}

// load decodes a dataset into v. found is false when it was never written.
func (s *Store) load(ctx context.Context, name string, v any) (found bool, err error) {
	data, ok := s.cache.Get(ctx, name)
	if !ok {
		data, err = s.backend.Read(ctx, name)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if err := s.cache.Set(ctx, name, data); err != nil {
			s.logger.Warnw("Store: failed to cache dataset", "dataset", name, "error", err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := s.backend.Write(ctx, name, data); err != nil {
		if delErr := s.cache.Delete(ctx, name); delErr != nil {
			s.logger.Warnw("Store: failed to invalidate cache", "dataset", name, "error", delErr)
		}
		return err
	}

	if err := s.cache.Set(ctx, name, data); err != nil {
		s.logger.Warnw("Store: failed to cache dataset", "dataset", name, "error", err)
	}
	return nil
}

// Terminals returns the terminal snapshot of a bus type, empty if missing
func (s *Store) Terminals(ctx context.Context, bus model.BusType) ([]model.Terminal, error) {
	name, err := TerminalsDataset(bus)
	if err != nil {
		return nil, err
	}
	terminals := []model.Terminal{}
	if _, err := s.load(ctx, name, &terminals); err != nil {
		return nil, err
	}
	return terminals, nil
}

// SaveTerminals replaces the terminal snapshot of a bus type
func (s *Store) SaveTerminals(ctx context.Context, bus model.BusType, terminals []model.Terminal) error {
	name, err := TerminalsDataset(bus)
	if err != nil {
		return err
	}
	if terminals == nil {
		terminals = []model.Terminal{}
	}
	return s.save(ctx, name, terminals)
}

// Routes returns the route snapshot of a bus type, empty if missing
func (s *Store) Routes(ctx context.Context, bus model.BusType) ([]model.Route, error) {
	name, err := RoutesDataset(bus)
	if err != nil {
		return nil, err
	}
	routes := []model.Route{}
	if _, err := s.load(ctx, name, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// SaveRoutes replaces the route snapshot of a bus type
func (s *Store) SaveRoutes(ctx context.Context, bus model.BusType, routes []model.Route) error {
	name, err := RoutesDataset(bus)
	if err != nil {
		return err
	}
	if routes == nil {
		routes = []model.Route{}
	}
	return s.save(ctx, name, routes)
}

// MergeRoutes merges fresh into the stored snapshot, saves and returns the
// result
func (s *Store) MergeRoutes(ctx context.Context, bus model.BusType, fresh []model.Route) ([]model.Route, error) {
	existing, err := s.Routes(ctx, bus)
	if err != nil {
		return nil, err
	}
	merged := Merge(existing, fresh)
	if err := s.SaveRoutes(ctx, bus, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Metadata returns the stored metadata, zero-valued if missing
func (s *Store) Metadata(ctx context.Context) (model.Metadata, error) {
	var m model.Metadata
	if _, err := s.load(ctx, DatasetMetadata, &m); err != nil {
		return model.Metadata{}, err
	}
	return m, nil
}

func (s *Store) SaveMetadata(ctx context.Context, m model.Metadata) error {
	return s.save(ctx, DatasetMetadata, m)
}

// AirportBuses returns the airport bus snapshot, empty if missing
func (s *Store) AirportBuses(ctx context.Context) ([]model.AirportBus, error) {
	buses := []model.AirportBus{}
	if _, err := s.load(ctx, DatasetAirportBuses, &buses); err != nil {
		return nil, err
	}
	return buses, nil
}

func (s *Store) SaveAirportBuses(ctx context.Context, buses []model.AirportBus) error {
	if buses == nil {
		buses = []model.AirportBus{}
	}
	return s.save(ctx, DatasetAirportBuses, buses)
}

// Baselines returns the learned per-collector route yields
func (s *Store) Baselines(ctx context.Context) (map[model.BusType]metrics.Baseline, error) {
	baselines := make(map[model.BusType]metrics.Baseline)
	if _, err := s.load(ctx, DatasetBaselines, &baselines); err != nil {
		return nil, err
	}
	return baselines, nil
}

func (s *Store) SaveBaselines(ctx context.Context, b map[model.BusType]metrics.Baseline) error {
	return s.save(ctx, DatasetBaselines, b)
}

// SyncCache drops every cached dataset when the metadata document was
// rewritten since the last sync, as a collector in another process does at
// the end of each run. It returns the metadata write time.
func (s *Store) SyncCache(ctx context.Context) (time.Time, error) {
	writtenAt, err := s.backend.UpdatedAt(ctx, DatasetMetadata)
	if err != nil {
		return time.Time{}, err
	}

	s.mu.Lock()
	changed := !writtenAt.Equal(s.syncedAt)
	s.syncedAt = writtenAt
	s.mu.Unlock()

	if changed {
		if err := s.cache.Reset(ctx); err != nil {
			return writtenAt, fmt.Errorf("failed to reset cache: %w", err)
		}
		s.logger.Debugw("Store: snapshot changed, cache reset", "writtenAt", writtenAt)
	}
	return writtenAt, nil
}
