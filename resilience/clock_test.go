package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test helpers shared by the package tests
// ---------------------------------------------------------------------------

// fakeTimer is a controllable timer.
type fakeTimer struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{ch: make(chan time.Time, 1)}
}

func (t *fakeTimer) C() <-chan time.Time { return t.ch }

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	was := !t.stopped
	t.stopped = true

	return was
}

func (t *fakeTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stopped
}

// fakeClock fires every timer immediately, records requested durations and
// lets tests move Now forward by hand.
type fakeClock struct {
	mu        sync.Mutex
	now       time.Time
	durations []time.Duration
	hold      bool
	timers    []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.durations = append(c.durations, d)
	t := newFakeTimer()
	c.timers = append(c.timers, t)

	if !c.hold {
		t.ch <- c.now.Add(d)
	}

	return t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func (c *fakeClock) sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]time.Duration, len(c.durations))
	copy(out, c.durations)

	return out
}

func (c *fakeClock) timer(i int) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.timers[i]
}

// ---------------------------------------------------------------------------
// SystemClock
// ---------------------------------------------------------------------------

func TestSystemClockNewTimerFires(t *testing.T) {
	tmr := SystemClock{}.NewTimer(5 * time.Millisecond)

	select {
	case ts := <-tmr.C():
		if ts.IsZero() {
			t.Fatal("timer fired with zero time")
		}
	case <-time.After(time.Second):
		t.Fatal("timer did not fire within 1s")
	}
}

func TestSystemClockNewTimerStop(t *testing.T) {
	tmr := SystemClock{}.NewTimer(time.Hour)

	if !tmr.Stop() {
		t.Fatal("Stop() = false, want true for unfired timer")
	}
}

// ---------------------------------------------------------------------------
// sleep
// ---------------------------------------------------------------------------

func TestSleepNonPositiveReturnsImmediately(t *testing.T) {
	clk := newFakeClock()

	if err := sleep(context.Background(), clk, 0); err != nil {
		t.Fatalf("sleep(0) error = %v, want nil", err)
	}
	if n := len(clk.sleeps()); n != 0 {
		t.Fatalf("timers created = %d, want 0", n)
	}
}

func TestSleepStopsTimerOnCancel(t *testing.T) {
	clk := newFakeClock()
	clk.hold = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleep(ctx, clk, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("sleep() error = %v, want context.Canceled", err)
	}
	if !clk.timer(0).isStopped() {
		t.Fatal("timer not stopped after cancellation")
	}
}
