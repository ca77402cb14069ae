// Package upstream talks to the remote employee API.
//
// Client wraps a standard http.Client with a status code classifier and
// an OpenTelemetry client span per request. Gateway maps the four
// upstream operations onto a fixed route table and translates every
// failure into the package's taxonomy: ErrNotFound is permanent,
// ErrRateLimited and ErrUnavailable are transient.
package upstream
