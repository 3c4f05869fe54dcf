package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Class groups provider calls that share one pacing budget
type Class string

const (
	ClassTerminalList   Class = "terminal-list"
	ClassDestinations   Class = "destinations"
	ClassSchedules      Class = "schedules"
	ClassProbe          Class = "probe"
	ClassIntercityProbe Class = "intercity-probe"
	ClassAirport        Class = "airport"
)

// Limiter spaces calls per class. A delay of d allows one call every d;
// the first call of a class never waits.
type Limiter struct {
	limiters map[Class]*rate.Limiter
	mu       sync.RWMutex
	defaults time.Duration
}

// NewLimiter creates a limiter with per-class delays. Classes not listed use
// defaultDelay.
func NewLimiter(defaultDelay time.Duration, delays map[Class]time.Duration) *Limiter {
	l := &Limiter{
		limiters: make(map[Class]*rate.Limiter),
		defaults: defaultDelay,
	}
	for class, d := range delays {
		l.limiters[class] = newRateLimiter(d)
	}
	return l
}

// Unlimited returns a limiter that never waits
func Unlimited() *Limiter {
	return NewLimiter(0, nil)
}

func newRateLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Get returns the rate limiter for a class, creating it on first use
func (l *Limiter) Get(class Class) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[class]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[class]; exists {
		return limiter
	}

	limiter = newRateLimiter(l.defaults)
	l.limiters[class] = limiter
	return limiter
}

// Wait blocks until the class may issue another call or ctx is done
func (l *Limiter) Wait(ctx context.Context, class Class) error {
	return l.Get(class).Wait(ctx)
}
