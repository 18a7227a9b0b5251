package ratelimit

import (
	"context"
	"math/rand"
	"time"
)

// Limiter spaces out sequential page fetches with a jittered delay between
// min and max. The pipeline is single-threaded, so there is nothing to
// synchronize; the limiter just remembers when the last fetch happened.
type Limiter struct {
	min        time.Duration
	max        time.Duration
	lastAction time.Time
}

func New(min, max time.Duration) *Limiter {
	if max < min {
		max = min
	}
	return &Limiter{min: min, max: max}
}

// Wait blocks until the jittered delay since the previous call has passed,
// or ctx is cancelled. The first call never blocks.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.lastAction.IsZero() {
		l.lastAction = time.Now()
		return nil
	}

	delay := l.min
	if l.max > l.min {
		delay += time.Duration(rand.Int63n(int64(l.max - l.min)))
	}

	if remaining := delay - time.Since(l.lastAction); remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}

	l.lastAction = time.Now()
	return nil
}
