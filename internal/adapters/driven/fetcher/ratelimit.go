package fetcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBackoff is used when a 429 response carries no Retry-After.
const DefaultBackoff = 60 * time.Second

// RateLimitConfig bounds outgoing page fetches.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// RateLimiter is a token bucket that also pauses after a 429 response.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter. Non-positive values fall back to
// one request per second with a burst of one.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request fits the rate limit and any 429 backoff
// has passed.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if d := r.backoff(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return r.limiter.Wait(ctx)
}

// Allow reports whether a request may be sent now, consuming a token if so.
func (r *RateLimiter) Allow() bool {
	return r.backoff() <= 0 && r.limiter.Allow()
}

// RecordRateLimitError holds back requests for retryAfter, or
// DefaultBackoff when the server gave no usable value.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = DefaultBackoff
	}
	r.mu.Lock()
	r.retryAt = time.Now().Add(retryAfter)
	r.mu.Unlock()
}

func (r *RateLimiter) backoff() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Until(r.retryAt)
}
