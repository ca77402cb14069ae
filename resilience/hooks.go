package resilience

import "time"

// Hooks holds optional callbacks for policy lifecycle events. All fields are
// nil by default. A Hooks value must not be mutated once handed to a policy;
// emit methods read the fields without synchronisation.
type Hooks struct {
	// OnRetry fires before the backoff sleep that precedes attempt+1.
	OnRetry func(attempt int, delay time.Duration, err error)
	// OnExhausted fires once all attempts failed with transient errors.
	OnExhausted func(attempts int, err error)
	// OnTerminal fires when a permanent error stops retrying.
	OnTerminal func(err error)
	// OnFallbackUsed fires when Execute substitutes a fallback value.
	OnFallbackUsed func(err error)
	// OnTimeout fires when a single attempt exceeds its deadline.
	OnTimeout func()
	// OnThrottled fires when an attempt had to wait for a rate-limit token.
	OnThrottled func(wait time.Duration)

	OnCircuitOpen     func()
	OnCircuitClose    func()
	OnCircuitHalfOpen func()
}

func (h *Hooks) emitRetry(attempt int, delay time.Duration, err error) {
	if h != nil && h.OnRetry != nil {
		h.OnRetry(attempt, delay, err)
	}
}

func (h *Hooks) emitExhausted(attempts int, err error) {
	if h != nil && h.OnExhausted != nil {
		h.OnExhausted(attempts, err)
	}
}

func (h *Hooks) emitTerminal(err error) {
	if h != nil && h.OnTerminal != nil {
		h.OnTerminal(err)
	}
}

func (h *Hooks) emitFallbackUsed(err error) {
	if h != nil && h.OnFallbackUsed != nil {
		h.OnFallbackUsed(err)
	}
}

func (h *Hooks) emitTimeout() {
	if h != nil && h.OnTimeout != nil {
		h.OnTimeout()
	}
}

func (h *Hooks) emitThrottled(wait time.Duration) {
	if h != nil && h.OnThrottled != nil {
		h.OnThrottled(wait)
	}
}

func (h *Hooks) emitCircuitOpen() {
	if h != nil && h.OnCircuitOpen != nil {
		h.OnCircuitOpen()
	}
}

func (h *Hooks) emitCircuitClose() {
	if h != nil && h.OnCircuitClose != nil {
		h.OnCircuitClose()
	}
}

func (h *Hooks) emitCircuitHalfOpen() {
	if h != nil && h.OnCircuitHalfOpen != nil {
		h.OnCircuitHalfOpen()
	}
}
