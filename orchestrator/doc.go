// Package orchestrator implements the public employee operations on top
// of the upstream gateway. Every operation runs inside its own named
// resilience policy: transient upstream failures are retried and finally
// replaced by a safe fallback value, while a missing employee stops
// retrying at once.
//
// Aggregating operations (search, highest salary, top ten, delete)
// fetch the full list inside their own policy and aggregate that single
// snapshot, so retries are never nested.
package orchestrator
