package http

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter so a slow mirror does not hold back
// requests to other platforms.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a new HostLimiter with the specified requests per second limit.
// Each host gets its own limiter with a burst of 1 (no bursting allowed).
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
