package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

// Repository loads and saves the metadata document
type Repository interface {
	Metadata(ctx context.Context) (model.Metadata, error)
	SaveMetadata(ctx context.Context, m model.Metadata) error
}

// Aggregator applies partial metadata updates from independent collectors
type Aggregator struct {
	repo Repository
	now  func() time.Time
}

func NewAggregator(repo Repository) *Aggregator {
	return &Aggregator{repo: repo, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Update loads the stored metadata, overlays the passed fields, stamps
// lastUpdated and saves the result
func (a *Aggregator) Update(ctx context.Context, u model.MetadataUpdate) (model.Metadata, error) {
	existing, err := a.repo.Metadata(ctx)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("failed to load metadata: %w", err)
	}

	merged := existing.Apply(u)
	merged.LastUpdated = a.now().UTC().Format(time.RFC3339)

	if err := a.repo.SaveMetadata(ctx, merged); err != nil {
		return model.Metadata{}, fmt.Errorf("failed to save metadata: %w", err)
	}
	return merged, nil
}

// IsStale reports whether m is older than maxAge. Missing or unparsable
// timestamps count as stale.
func IsStale(m model.Metadata, maxAge time.Duration, now time.Time) bool {
	if m.LastUpdated == "" {
		return true
	}
	updatedAt, err := time.Parse(time.RFC3339, m.LastUpdated)
	if err != nil {
		return true
	}
	return now.Sub(updatedAt) > maxAge
}
