package resilience

import "time"

// Defaults applied to operations that have no configuration entry.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 200 * time.Millisecond
)

// DefaultPolicyConfig retries DefaultMaxAttempts times with a fixed
// DefaultBaseDelay backoff and no breaker.
func DefaultPolicyConfig() PolicyConfig {
	attempts := DefaultMaxAttempts
	backoff := BackoffFixed
	base := DefaultBaseDelay.String()

	return PolicyConfig{
		Retry: &RetryConfig{
			MaxAttempts: &attempts,
			Backoff:     &backoff,
			BaseDelay:   &base,
		},
	}
}
