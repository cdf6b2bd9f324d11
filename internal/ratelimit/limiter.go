package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging/debugging.
//
// Constructed with burst 1 it acts as a single-permit admission gate:
// consecutive Wait calls are spaced at least 1/requestsPerSecond apart
// gateway-wide, regardless of how many callers are blocked concurrently.
// No FIFO ordering is guaranteed among waiters.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// NewInterval creates a rate limiter with burst 1, so permits are handed out
// with a minimum spacing of 1/requestsPerSecond between them.
func NewInterval(name string, requestsPerSecond float64) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		name:    name,
	}
}

// Wait blocks until the rate limiter allows a request to proceed.
// Returns an error if the context is cancelled; a cancelled wait returns
// its reservation so subsequent callers are not blocked by it.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Allow reports whether a request can proceed without blocking.
// Use this for non-blocking checks; prefer Wait for most cases.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// SetRate changes the requests-per-second limit in place. Safe to call
// concurrently with Wait; supports live reconfiguration without rebuilding
// the limiter.
func (l *Limiter) SetRate(requestsPerSecond float64) {
	l.limiter.SetLimit(rate.Limit(requestsPerSecond))
}

// Rate returns the current requests-per-second limit.
func (l *Limiter) Rate() float64 {
	return float64(l.limiter.Limit())
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	return l.name
}
