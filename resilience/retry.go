package resilience

import (
	"context"
	"fmt"
	"time"
)

type (
	// retryConfig holds the optional configuration for retry behavior.
	retryConfig struct {
		maxDelay time.Duration    // 0 means no cap
		retryIf  func(error) bool // nil means use Transient/Permanent only
	}

	// RetryOption configures retry behavior.
	RetryOption func(*retryConfig)

	// RetryParams bundles the inputs of [DoRetry].
	RetryParams struct {
		Strategy    BackoffStrategy
		Clock       Clock
		Hooks       *Hooks
		Options     []RetryOption
		MaxAttempts int
	}
)

// MaxDelay caps the backoff delay.
func MaxDelay(d time.Duration) RetryOption {
	return func(cfg *retryConfig) {
		cfg.maxDelay = d
	}
}

// RetryIf adds a predicate that must also hold for an error to be retried.
func RetryIf(fn func(error) bool) RetryOption {
	return func(cfg *retryConfig) {
		cfg.retryIf = fn
	}
}

// DoRetry executes fn up to p.MaxAttempts times (the first call included),
// sleeping p.Strategy between attempts. A permanent error, or one rejected
// by RetryIf, is returned as-is after the attempt that produced it. When
// every attempt fails the last error is returned wrapped with
// [ErrRetriesExhausted].
//
//nolint:ireturn // generic type parameter T, not an interface
func DoRetry[T any](
	ctx context.Context,
	fn func(context.Context) (T, error),
	p RetryParams,
) (T, error) {
	var cfg retryConfig
	for _, opt := range p.Options {
		opt(&cfg)
	}

	maxAttempts := max(p.MaxAttempts, 1)

	clock := p.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	strategy := p.Strategy
	if strategy == nil {
		strategy = FixedBackoff(0)
	}

	var (
		zero    T
		lastErr error
	)

	for attempt := range maxAttempts {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if IsPermanent(err) {
			p.Hooks.emitTerminal(err)
			return zero, err
		}

		if cfg.retryIf != nil && !cfg.retryIf(err) {
			return zero, err
		}

		if attempt == maxAttempts-1 {
			break
		}

		delay := strategy.Delay(attempt)
		if cfg.maxDelay > 0 && delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}

		p.Hooks.emitRetry(attempt+1, delay, err)

		if sleepErr := sleep(ctx, clock, delay); sleepErr != nil {
			return zero, fmt.Errorf("%w: %w", sleepErr, lastErr)
		}
	}

	p.Hooks.emitExhausted(maxAttempts, lastErr)

	return zero, fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}
