package resilience

import (
	"context"
	"time"
)

// Clock abstracts time so that backoff sleeps and breaker recovery can be
// driven deterministically from tests. Production code uses [SystemClock].
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// NewTimer creates a [Timer] that fires after d.
	NewTimer(d time.Duration) Timer
}

// Timer abstracts [time.Timer].
type Timer interface {
	// C returns the channel on which the firing time is delivered.
	C() <-chan time.Time
	// Stop prevents the timer from firing.
	Stop() bool
}

// SystemClock is the [Clock] backed by the time package. The zero value is
// ready to use.
type SystemClock struct{}

// Now returns [time.Now].
func (SystemClock) Now() time.Time { return time.Now() }

// NewTimer wraps [time.NewTimer].
func (SystemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{inner: time.NewTimer(d)}
}

type systemTimer struct {
	inner *time.Timer
}

func (t systemTimer) C() <-chan time.Time { return t.inner.C }
func (t systemTimer) Stop() bool          { return t.inner.Stop() }

// sleep blocks for d on clock or until ctx is done, whichever comes first.
// A non-positive d returns immediately.
func sleep(ctx context.Context, clock Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := clock.NewTimer(d)
	select {
	case <-timer.C():
		return nil
	case <-ctx.Done():
		timer.Stop()

		return ctx.Err() //nolint:wrapcheck // preserving context error identity
	}
}
