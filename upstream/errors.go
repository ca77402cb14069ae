package upstream

import (
	"errors"

	"github.com/byte4ever/employeegw/employee"
	"github.com/byte4ever/employeegw/resilience"
)

var (
	// ErrNotFound reports that the upstream has no such employee. It is
	// the only permanent failure.
	ErrNotFound = employee.ErrNotFound
	// ErrRateLimited reports an HTTP 429 from the upstream.
	ErrRateLimited = errors.New("upstream rate limited")
	// ErrUnavailable covers transport, status, structural and decode
	// failures.
	ErrUnavailable = errors.New("upstream unavailable")
)

// Kind labels a failure for logs and metrics.
type Kind string

// Failure kinds reported by [KindOf].
const (
	KindNone        Kind = ""
	KindNotFound    Kind = "not_found"
	KindRateLimited Kind = "rate_limited"
	KindUnavailable Kind = "unavailable"
	KindTimeout     Kind = "timeout"
	KindThrottled   Kind = "throttled"
	KindCircuitOpen Kind = "circuit_open"
	KindOther       Kind = "other"
)

// KindOf classifies err. Errors produced by the resilience layer itself
// (attempt timeout, local throttle, open circuit) have their own kinds.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, resilience.ErrTimeout):
		return KindTimeout
	case errors.Is(err, resilience.ErrThrottled):
		return KindThrottled
	case errors.Is(err, resilience.ErrCircuitOpen):
		return KindCircuitOpen
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	default:
		return KindOther
	}
}
