package metrics

import (
	"context"
	"fmt"
	"math"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

// MinSamples is the number of runs needed before yields are judged
const MinSamples = 3

// DefaultThreshold flags yields more than this many stddevs below the mean
const DefaultThreshold = 2.0

// Baseline is the learned route yield of one collector
type Baseline struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"stdDev"`
	SampleCount int     `json:"sampleCount"`
}

// BaselineStore persists baselines keyed by bus type
type BaselineStore interface {
	Baselines(ctx context.Context) (map[model.BusType]Baseline, error)
	SaveBaselines(ctx context.Context, b map[model.BusType]Baseline) error
}

// Observation is the verdict on one run's yield
type Observation struct {
	Count     int
	Baseline  Baseline // before this run
	ZScore    float64
	Anomalous bool
}

// YieldTracker learns how many routes a collector normally finds per run
type YieldTracker struct {
	store     BaselineStore
	threshold float64
}

func NewYieldTracker(store BaselineStore) *YieldTracker {
	return &YieldTracker{store: store, threshold: DefaultThreshold}
}

// Observe judges count against the baseline, then folds it in. A zero
// count is judged but not learned, so an outage does not drag the mean.
func (t *YieldTracker) Observe(ctx context.Context, bus model.BusType, count int) (Observation, error) {
	all, err := t.store.Baselines(ctx)
	if err != nil {
		return Observation{}, fmt.Errorf("failed to load baselines: %w", err)
	}
	if all == nil {
		all = make(map[model.BusType]Baseline)
	}

	existing := all[bus]
	obs := Observation{Count: count, Baseline: existing}
	if existing.SampleCount >= MinSamples {
		obs.ZScore = zScore(float64(count), existing)
		obs.Anomalous = obs.ZScore < -t.threshold
	}

	if count == 0 {
		return obs, nil
	}

	w := NewWelfordState(existing.Mean, existing.StdDev, existing.SampleCount)
	w.Update(float64(count))
	all[bus] = Baseline{Mean: w.Mean, StdDev: w.StdDev(), SampleCount: w.Count}

	if err := t.store.SaveBaselines(ctx, all); err != nil {
		return obs, fmt.Errorf("failed to save baselines: %w", err)
	}
	return obs, nil
}

// zScore treats a flat history as unit spread so any drop registers
func zScore(v float64, b Baseline) float64 {
	sd := b.StdDev
	if sd < 1 {
		sd = 1
	}
	z := (v - b.Mean) / sd
	if math.IsNaN(z) {
		return 0
	}
	return z
}
