package metrics

import "math"

// WelfordState holds a running mean and variance using Welford's online
// algorithm, so history never has to be stored
type WelfordState struct {
	Count int
	Mean  float64
	M2    float64 // sum of squared differences from the mean
}

// NewWelfordState resumes from a saved mean, population stddev and count
func NewWelfordState(mean, stddev float64, count int) *WelfordState {
	if count == 0 {
		return &WelfordState{}
	}
	return &WelfordState{
		Count: count,
		Mean:  mean,
		M2:    stddev * stddev * float64(count),
	}
}

// Update adds one observation
func (w *WelfordState) Update(v float64) {
	w.Count++
	delta := v - w.Mean
	w.Mean += delta / float64(w.Count)
	w.M2 += delta * (v - w.Mean)
}

// StdDev is the population standard deviation, 0 below two observations
func (w *WelfordState) StdDev() float64 {
	if w.Count < 2 {
		return 0
	}
	return math.Sqrt(w.M2 / float64(w.Count))
}
