package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DoTimeout runs fn with a context that expires after timeout. fn runs on
// the calling goroutine and must honour ctx; when the derived deadline is
// what ended the call the result is reported as a transient [ErrTimeout].
// Cancellation of the parent context is returned unchanged.
//
//nolint:ireturn // generic type parameter T, not an interface
func DoTimeout[T any](
	ctx context.Context,
	timeout time.Duration,
	fn func(context.Context) (T, error),
	hooks *Hooks,
) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err //nolint:wrapcheck // preserving context error identity
	}

	if timeout <= 0 {
		return fn(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := fn(attemptCtx)
	if err == nil {
		return result, nil
	}

	if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		hooks.emitTimeout()

		return zero, Transient(fmt.Errorf("%w: %w", ErrTimeout, err))
	}

	return zero, err
}
