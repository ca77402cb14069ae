// Package resilience wraps calls to the upstream employee API with the
// retry and fallback discipline used by every orchestrator operation.
//
// The central type is Policy[T], a priority-ordered chain of patterns
// (circuit breaker, retry with backoff, shared rate limiter, per-attempt
// timeout). [Execute] runs a function through a policy and turns the
// final failure into a fallback value, so callers only ever see an error
// for terminal failures that have no dedicated fallback.
package resilience
