package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle serializes calls to the rate-limited case-law provider. One
// Throttle is shared by every analysis in a process, so the provider sees
// a single sequential request stream even when batch workers run multiple
// briefs at once.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle enforcing at least minInterval between
// consecutive calls. The first call passes immediately.
func NewThrottle(minInterval time.Duration) *Throttle {
	if minInterval <= 0 {
		minInterval = time.Second
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Wait blocks until the next provider call is allowed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Allow reports whether a call could proceed right now without waiting.
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}
