package resilience

import (
	"sync"
	"time"
)

type (
	// CircuitState is the state of a [CircuitBreaker].
	CircuitState int

	circuitBreakerConfig struct {
		failureThreshold    int
		recoveryTimeout     time.Duration
		halfOpenMaxAttempts int
	}

	// CircuitBreakerOption configures a circuit breaker.
	CircuitBreakerOption func(*circuitBreakerConfig)

	// CircuitBreaker fails fast once the upstream has produced
	// failureThreshold consecutive transient failures, and lets probe calls
	// through after recoveryTimeout. Permanent failures (not found) say
	// nothing about upstream health and are not counted.
	CircuitBreaker struct {
		clock Clock
		hooks *Hooks
		cfg   circuitBreakerConfig

		mu                sync.Mutex
		state             CircuitState
		failures          int
		halfOpenSuccesses int
		openedAt          time.Time
	}
)

// Circuit breaker states.
const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// String returns "closed", "open" or "half_open".
func (s CircuitState) String() string {
	switch s {
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// FailureThreshold sets the number of consecutive failures before opening.
func FailureThreshold(n int) CircuitBreakerOption {
	return func(cfg *circuitBreakerConfig) {
		cfg.failureThreshold = n
	}
}

// RecoveryTimeout sets how long the breaker stays open before probing.
func RecoveryTimeout(d time.Duration) CircuitBreakerOption {
	return func(cfg *circuitBreakerConfig) {
		cfg.recoveryTimeout = d
	}
}

// HalfOpenMaxAttempts sets the number of successful probes needed to close.
func HalfOpenMaxAttempts(n int) CircuitBreakerOption {
	return func(cfg *circuitBreakerConfig) {
		cfg.halfOpenMaxAttempts = n
	}
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(
	clock Clock,
	hooks *Hooks,
	opts ...CircuitBreakerOption,
) *CircuitBreaker {
	cfg := circuitBreakerConfig{
		failureThreshold:    5,
		recoveryTimeout:     30 * time.Second,
		halfOpenMaxAttempts: 1,
	}
	for _, o := range opts {
		o(&cfg)
	}

	if clock == nil {
		clock = SystemClock{}
	}

	return &CircuitBreaker{clock: clock, hooks: hooks, cfg: cfg}
}

// Allow returns [ErrCircuitOpen] while the breaker is open and the recovery
// timeout has not elapsed yet.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitOpen {
		return nil
	}

	if cb.clock.Now().Sub(cb.openedAt) < cb.cfg.recoveryTimeout {
		return ErrCircuitOpen
	}

	cb.state = CircuitHalfOpen
	cb.halfOpenSuccesses = 0
	cb.hooks.emitCircuitHalfOpen()

	return nil
}

// Record feeds the outcome of one guarded call into the breaker.
func (cb *CircuitBreaker) Record(err error) {
	if err != nil && IsPermanent(err) {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.recordSuccess()
		return
	}

	cb.recordFailure()
}

func (cb *CircuitBreaker) recordSuccess() {
	switch cb.state {
	case CircuitClosed:
		cb.failures = 0
	case CircuitHalfOpen:
		cb.halfOpenSuccesses++
		if cb.halfOpenSuccesses < cb.cfg.halfOpenMaxAttempts {
			return
		}

		cb.state = CircuitClosed
		cb.failures = 0
		cb.hooks.emitCircuitClose()
	case CircuitOpen:
	}
}

func (cb *CircuitBreaker) recordFailure() {
	switch cb.state {
	case CircuitClosed:
		cb.failures++
		if cb.failures < cb.cfg.failureThreshold {
			return
		}

		cb.trip()
	case CircuitHalfOpen:
		cb.trip()
	case CircuitOpen:
		cb.openedAt = cb.clock.Now()
	}
}

func (cb *CircuitBreaker) trip() {
	cb.state = CircuitOpen
	cb.openedAt = cb.clock.Now()
	cb.halfOpenSuccesses = 0
	cb.hooks.emitCircuitOpen()
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}
