package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoTimeoutPassesThroughSuccess(t *testing.T) {
	got, err := DoTimeout[int](
		context.Background(),
		time.Second,
		func(ctx context.Context) (int, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatal("attempt context has no deadline")
			}
			return 7, nil
		},
		nil,
	)
	if err != nil || got != 7 {
		t.Fatalf("DoTimeout() = (%d, %v), want (7, nil)", got, err)
	}
}

func TestDoTimeoutClassifiesDeadlineAsTransientTimeout(t *testing.T) {
	fired := 0

	_, err := DoTimeout[int](
		context.Background(),
		5*time.Millisecond,
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
		&Hooks{OnTimeout: func() { fired++ }},
	)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("DoTimeout() error = %v, want ErrTimeout", err)
	}
	if !IsTransient(err) {
		t.Fatal("timeout must be transient")
	}
	if fired != 1 {
		t.Fatalf("OnTimeout calls = %d, want 1", fired)
	}
}

func TestDoTimeoutParentCancellationIsNotTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := DoTimeout[int](
		ctx,
		time.Hour,
		func(ctx context.Context) (int, error) {
			cancel()
			<-ctx.Done()
			return 0, ctx.Err()
		},
		nil,
	)
	if errors.Is(err, ErrTimeout) {
		t.Fatal("parent cancellation reported as timeout")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("DoTimeout() error = %v, want context.Canceled", err)
	}
}

func TestDoTimeoutAlreadyCancelledSkipsCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := DoTimeout[int](ctx, time.Second, func(context.Context) (int, error) {
		called = true
		return 0, nil
	}, nil)

	if called {
		t.Fatal("fn called with cancelled parent")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("DoTimeout() error = %v, want context.Canceled", err)
	}
}

func TestDoTimeoutZeroDisablesDeadline(t *testing.T) {
	_, _ = DoTimeout[int](context.Background(), 0, func(ctx context.Context) (int, error) {
		if _, ok := ctx.Deadline(); ok {
			t.Fatal("deadline set with zero timeout")
		}
		return 0, nil
	}, nil)
}
