package resilience

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff strategy names accepted by [ParseBackoff] and the policy config.
const (
	BackoffFixed             = "fixed"
	BackoffExponential       = "exponential"
	BackoffExponentialJitter = "exponential_jitter"
)

// BackoffStrategy determines the delay between retry attempts.
type BackoffStrategy interface {
	// Delay returns the duration to wait before the given retry attempt
	// (0-indexed: attempt 0 is the delay before the first retry).
	Delay(attempt int) time.Duration
}

// BackoffFunc adapts an ordinary function into a [BackoffStrategy].
type BackoffFunc func(attempt int) time.Duration

// Delay calls the underlying function.
func (f BackoffFunc) Delay(attempt int) time.Duration { return f(attempt) }

// FixedBackoff waits d before every retry. It is the default for all
// orchestrator operations.
func FixedBackoff(d time.Duration) BackoffStrategy {
	return BackoffFunc(func(int) time.Duration { return d })
}

// ExponentialBackoff doubles the delay on each retry: base * 2^attempt.
func ExponentialBackoff(base time.Duration) BackoffStrategy {
	return BackoffFunc(func(attempt int) time.Duration {
		return time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	})
}

// WithJitter spreads the delays of inner uniformly over [0, inner.Delay].
func WithJitter(inner BackoffStrategy) BackoffStrategy {
	return BackoffFunc(func(attempt int) time.Duration {
		upper := int64(inner.Delay(attempt))
		if upper <= 0 {
			return 0
		}

		return time.Duration(rand.Int64N(upper + 1))
	})
}

// ParseBackoff maps a strategy name and base delay to a [BackoffStrategy].
// An empty name selects [BackoffFixed].
//
//nolint:ireturn // returns interface by design for strategy pattern
func ParseBackoff(name string, base time.Duration) (BackoffStrategy, error) {
	if base < 0 {
		return nil, fmt.Errorf("negative base delay %s", base)
	}

	switch name {
	case "", BackoffFixed:
		return FixedBackoff(base), nil
	case BackoffExponential:
		return ExponentialBackoff(base), nil
	case BackoffExponentialJitter:
		return WithJitter(ExponentialBackoff(base)), nil
	default:
		return nil, fmt.Errorf("unknown backoff strategy: %q", name)
	}
}
