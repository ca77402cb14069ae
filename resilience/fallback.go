package resilience

import "context"

// Fallback produces safe values for an operation with input I and result T.
// Producers never fail.
type Fallback[I, T any] struct {
	// Exhausted replaces the result once every attempt failed transiently.
	// Required.
	Exhausted func(in I, err error) T
	// Terminal replaces the result of a permanent failure (the resource does
	// not exist). When nil the permanent error is returned to the caller.
	Terminal func(in I, err error) T
}

// Execute runs fn(ctx, in) through p. Transient failures that survive the
// policy are absorbed: the caller receives fb.Exhausted(in, err) and a nil
// error. A permanent failure short-circuits after its single attempt to
// fb.Terminal, or is returned unchanged when no terminal producer is set.
//
//nolint:ireturn // generic type parameter T, not an interface
func Execute[I, T any](
	ctx context.Context,
	p *Policy[T],
	in I,
	fn func(context.Context, I) (T, error),
	fb Fallback[I, T],
) (T, error) {
	result, err := p.Do(ctx, func(ctx context.Context) (T, error) {
		return fn(ctx, in)
	})
	if err == nil {
		return result, nil
	}

	if IsPermanent(err) {
		if fb.Terminal == nil {
			var zero T
			return zero, err
		}

		p.hooks.emitFallbackUsed(err)

		return fb.Terminal(in, err), nil
	}

	p.hooks.emitFallbackUsed(err)

	if fb.Exhausted == nil {
		var zero T
		return zero, nil
	}

	return fb.Exhausted(in, err), nil
}
