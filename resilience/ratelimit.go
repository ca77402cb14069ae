package resilience

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by every policy that talks to the same
// upstream. Attempts wait for a token instead of being rejected, so a burst
// of requests is smoothed out before the upstream answers with 429.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows rps attempts per second with the given burst. A
// non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}

	return &RateLimiter{limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Wait blocks until a token is available. It fails with a transient
// [ErrThrottled] when ctx would expire first.
func (rl *RateLimiter) Wait(ctx context.Context, hooks *Hooks) error {
	start := time.Now()

	if err := rl.limiter.Wait(ctx); err != nil {
		return Transient(fmt.Errorf("%w: %w", ErrThrottled, err))
	}

	if waited := time.Since(start); waited > time.Millisecond {
		hooks.emitThrottled(waited)
	}

	return nil
}

// Saturated reports whether the bucket is currently empty.
func (rl *RateLimiter) Saturated() bool {
	return rl.limiter.Tokens() < 1
}
