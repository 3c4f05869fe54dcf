package store

import "github.com/leeks92/bus-mustarddata/internal/model"

// Merge overlays fresh routes onto existing ones by "dep-arr" key. Fresh
// routes replace existing ones in place, existing routes fresh does not
// mention are kept, and brand-new keys are appended in fresh order.
// Merge(x, nil) == x and Merge(Merge(x, y), y) == Merge(x, y).
func Merge(existing, fresh []model.Route) []model.Route {
	merged := make([]model.Route, 0, len(existing)+len(fresh))
	index := make(map[string]int, len(existing)+len(fresh))

	for _, r := range existing {
		key := r.Key()
		if i, ok := index[key]; ok {
			merged[i] = r
			continue
		}
		index[key] = len(merged)
		merged = append(merged, r)
	}

	for _, r := range fresh {
		key := r.Key()
		if i, ok := index[key]; ok {
			merged[i] = r
			continue
		}
		index[key] = len(merged)
		merged = append(merged, r)
	}

	return merged
}
