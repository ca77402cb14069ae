package resilience

import (
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream unavailable")

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	clk := newFakeClock()
	opened := 0
	cb := NewCircuitBreaker(clk, &Hooks{OnCircuitOpen: func() { opened++ }}, FailureThreshold(3))

	for range 2 {
		cb.Record(errUpstream)
	}
	if cb.State() != CircuitClosed {
		t.Fatalf("State() = %v, want closed below threshold", cb.State())
	}

	cb.Record(errUpstream)
	if cb.State() != CircuitOpen {
		t.Fatalf("State() = %v, want open", cb.State())
	}
	if opened != 1 {
		t.Fatalf("OnCircuitOpen calls = %d, want 1", opened)
	}
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow() = %v, want ErrCircuitOpen", err)
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(newFakeClock(), nil, FailureThreshold(2))

	cb.Record(errUpstream)
	cb.Record(nil)
	cb.Record(errUpstream)

	if cb.State() != CircuitClosed {
		t.Fatalf("State() = %v, want closed", cb.State())
	}
}

func TestCircuitBreakerIgnoresPermanentFailures(t *testing.T) {
	cb := NewCircuitBreaker(newFakeClock(), nil, FailureThreshold(1))

	cb.Record(Permanent(errors.New("employee not found")))

	if cb.State() != CircuitClosed {
		t.Fatalf("State() = %v, want closed", cb.State())
	}
}

func TestCircuitBreakerHalfOpenProbeCloses(t *testing.T) {
	clk := newFakeClock()
	closed := 0
	cb := NewCircuitBreaker(
		clk,
		&Hooks{OnCircuitClose: func() { closed++ }},
		FailureThreshold(1),
		RecoveryTimeout(10*time.Second),
	)

	cb.Record(errUpstream)
	clk.advance(11 * time.Second)

	if err := cb.Allow(); err != nil {
		t.Fatalf("Allow() after recovery = %v, want nil", err)
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("State() = %v, want half_open", cb.State())
	}

	cb.Record(nil)
	if cb.State() != CircuitClosed {
		t.Fatalf("State() = %v, want closed", cb.State())
	}
	if closed != 1 {
		t.Fatalf("OnCircuitClose calls = %d, want 1", closed)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	clk := newFakeClock()
	cb := NewCircuitBreaker(clk, nil, FailureThreshold(1), RecoveryTimeout(time.Second))

	cb.Record(errUpstream)
	clk.advance(2 * time.Second)
	_ = cb.Allow()
	cb.Record(errUpstream)

	if cb.State() != CircuitOpen {
		t.Fatalf("State() = %v, want open", cb.State())
	}
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow() = %v, want ErrCircuitOpen", err)
	}
}

func TestCircuitStateString(t *testing.T) {
	cases := map[CircuitState]string{
		CircuitClosed:   "closed",
		CircuitOpen:     "open",
		CircuitHalfOpen: "half_open",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
