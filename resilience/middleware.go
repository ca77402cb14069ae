package resilience

import (
	"cmp"
	"context"
	"slices"
)

// Middleware wraps a function call with additional behavior.
type Middleware[T any] func(next func(context.Context) (T, error)) func(context.Context) (T, error)

// Chain composes middlewares so that the first one is the outermost:
// Chain(a, b, c) produces a(b(c(next))).
func Chain[T any](middlewares ...Middleware[T]) Middleware[T] {
	return func(next func(context.Context) (T, error)) func(context.Context) (T, error) {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}

		return next
	}
}

// Pattern priorities: lower runs further out. The breaker sees one outcome
// per operation, while throttling and the deadline apply to every attempt.
const (
	priorityCircuitBreaker = iota
	priorityRetry
	priorityRateLimiter
	priorityAttemptTimeout
)

// pattern is a middleware tagged with its priority and a name for health
// reporting.
type pattern[T any] struct {
	mw       Middleware[T]
	name     string
	priority int
}

// sortPatterns orders patterns by priority, keeping declaration order for
// equal priorities.
func sortPatterns[T any](patterns []pattern[T]) []Middleware[T] {
	sorted := slices.Clone(patterns)
	slices.SortStableFunc(sorted, func(a, b pattern[T]) int {
		return cmp.Compare(a.priority, b.priority)
	})

	mws := make([]Middleware[T], 0, len(sorted))
	for _, p := range sorted {
		mws = append(mws, p.mw)
	}

	return mws
}
