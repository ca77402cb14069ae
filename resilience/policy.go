package resilience

import (
	"context"
	"time"
)

type (
	// Policy composes the resilience patterns configured for one named
	// operation behind a single [Policy.Do] method. Build it with
	// [NewPolicy] and functional options.
	Policy[T any] struct {
		hooks    *Hooks
		chain    Middleware[T]
		breaker  *CircuitBreaker
		limiter  *RateLimiter
		name     string
		patterns []string
	}

	// Option configures a [Policy].
	Option func(*policySetup)

	policySetup struct {
		clock          Clock
		hooks          *Hooks
		registry       *Registry
		retry          *retrySetup
		breakerOpts    []CircuitBreakerOption
		limiter        *RateLimiter
		attemptTimeout time.Duration
		breaker        bool
	}

	retrySetup struct {
		strategy    BackoffStrategy
		opts        []RetryOption
		maxAttempts int
	}
)

// WithClock sets the clock used for backoff sleeps and breaker recovery.
func WithClock(c Clock) Option {
	return func(s *policySetup) { s.clock = c }
}

// WithHooks sets the lifecycle hooks of the policy.
func WithHooks(h *Hooks) Option {
	return func(s *policySetup) { s.hooks = h }
}

// WithRegistry registers the policy for readiness reporting.
func WithRegistry(reg *Registry) Option {
	return func(s *policySetup) { s.registry = reg }
}

// WithRetry retries transient failures up to maxAttempts attempts in total.
func WithRetry(maxAttempts int, strategy BackoffStrategy, opts ...RetryOption) Option {
	return func(s *policySetup) {
		s.retry = &retrySetup{maxAttempts: maxAttempts, strategy: strategy, opts: opts}
	}
}

// WithAttemptTimeout bounds every single attempt by d.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *policySetup) { s.attemptTimeout = d }
}

// WithCircuitBreaker fast-fails the operation while the upstream is down.
func WithCircuitBreaker(opts ...CircuitBreakerOption) Option {
	return func(s *policySetup) {
		s.breaker = true
		s.breakerOpts = opts
	}
}

// WithRateLimiter makes every attempt wait for a token from rl.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *policySetup) { s.limiter = rl }
}

// NewPolicy creates a [Policy] named after the operation it guards.
func NewPolicy[T any](name string, opts ...Option) *Policy[T] {
	setup := policySetup{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&setup)
	}

	if setup.hooks == nil {
		setup.hooks = &Hooks{}
	}

	p := &Policy[T]{name: name, hooks: setup.hooks, limiter: setup.limiter}

	var patterns []pattern[T]

	if setup.breaker {
		p.breaker = NewCircuitBreaker(setup.clock, setup.hooks, setup.breakerOpts...)
		patterns = append(patterns, pattern[T]{
			name:     "circuit_breaker",
			priority: priorityCircuitBreaker,
			mw:       breakerMiddleware[T](p.breaker),
		})
	}

	if r := setup.retry; r != nil {
		params := RetryParams{
			MaxAttempts: r.maxAttempts,
			Strategy:    r.strategy,
			Clock:       setup.clock,
			Hooks:       setup.hooks,
			Options:     r.opts,
		}
		patterns = append(patterns, pattern[T]{
			name:     "retry",
			priority: priorityRetry,
			mw: func(next func(context.Context) (T, error)) func(context.Context) (T, error) {
				return func(ctx context.Context) (T, error) {
					return DoRetry(ctx, next, params)
				}
			},
		})
	}

	if rl := setup.limiter; rl != nil {
		hooks := setup.hooks
		patterns = append(patterns, pattern[T]{
			name:     "rate_limiter",
			priority: priorityRateLimiter,
			mw: func(next func(context.Context) (T, error)) func(context.Context) (T, error) {
				return func(ctx context.Context) (T, error) {
					if err := rl.Wait(ctx, hooks); err != nil {
						var zero T
						return zero, err
					}
					return next(ctx)
				}
			},
		})
	}

	if d := setup.attemptTimeout; d > 0 {
		hooks := setup.hooks
		patterns = append(patterns, pattern[T]{
			name:     "attempt_timeout",
			priority: priorityAttemptTimeout,
			mw: func(next func(context.Context) (T, error)) func(context.Context) (T, error) {
				return func(ctx context.Context) (T, error) {
					return DoTimeout(ctx, d, next, hooks)
				}
			},
		})
	}

	for _, pt := range patterns {
		p.patterns = append(p.patterns, pt.name)
	}

	p.chain = Chain(sortPatterns(patterns)...)

	if setup.registry != nil && name != "" {
		setup.registry.Register(p)
	}

	return p
}

func breakerMiddleware[T any](cb *CircuitBreaker) Middleware[T] {
	return func(next func(context.Context) (T, error)) func(context.Context) (T, error) {
		return func(ctx context.Context) (T, error) {
			if err := cb.Allow(); err != nil {
				var zero T
				return zero, err
			}

			val, err := next(ctx)
			cb.Record(err)

			return val, err
		}
	}
}

// Name returns the operation name the policy guards.
func (p *Policy[T]) Name() string { return p.name }

// Patterns lists the configured pattern names, outermost first.
func (p *Policy[T]) Patterns() []string { return p.patterns }

// Do executes fn through the composed chain. Failures are returned as-is;
// use [Execute] to absorb them into a fallback.
func (p *Policy[T]) Do(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	return p.chain(fn)(ctx)
}
