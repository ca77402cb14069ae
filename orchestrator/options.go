package orchestrator

import (
	"github.com/byte4ever/employeegw/logger"
	"github.com/byte4ever/employeegw/resilience"
)

type (
	// Option configures an [Orchestrator].
	Option func(*options)

	options struct {
		cfg      *resilience.Config
		registry *resilience.Registry
		clock    resilience.Clock
		limiter  *resilience.RateLimiter
		log      *logger.Logger
	}
)

// WithConfig sets the per-operation policy configuration. Operations
// missing from cfg, or all of them when cfg is nil, use
// [resilience.DefaultPolicyConfig]. The shared rate limit of cfg applies
// unless [WithRateLimiter] overrides it.
func WithConfig(cfg *resilience.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithRegistry registers every operation policy for readiness reporting.
func WithRegistry(reg *resilience.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithClock overrides the clock used for backoff and breaker recovery.
func WithClock(c resilience.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRateLimiter shares rl between all operation policies.
func WithRateLimiter(rl *resilience.RateLimiter) Option {
	return func(o *options) { o.limiter = rl }
}

// WithLogger sets the logger fed by the policy hooks.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}
