package resilience

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type (
	// Config is the resilience configuration of the process: one
	// [PolicyConfig] per operation name and an optional shared upstream
	// rate limit. Operations without an entry use [DefaultPolicyConfig].
	Config struct {
		Policies  map[string]PolicyConfig `json:"policies"             yaml:"policies"`
		RateLimit *RateLimitConfig        `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
	}

	// PolicyConfig holds the settings of a single operation policy.
	PolicyConfig struct {
		// Retry configures the retry pattern.
		// Example: {"max_attempts": 3, "backoff": "fixed", "base_delay": "200ms"}.
		Retry *RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
		// CircuitBreaker enables the circuit breaker when present.
		// Example: {"failure_threshold": 5, "recovery_timeout": "30s"}.
		CircuitBreaker *CircuitBreakerConfig `json:"circuit_breaker,omitempty" yaml:"circuit_breaker,omitempty"`
		// AttemptTimeout bounds every single attempt.
		// Parsed via time.ParseDuration. Example: "3s".
		AttemptTimeout *string `json:"attempt_timeout,omitempty" yaml:"attempt_timeout,omitempty"`
	}

	// RetryConfig holds retry configuration values.
	RetryConfig struct {
		// MaxAttempts counts the first attempt. Required.
		MaxAttempts *int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
		// Backoff is one of "fixed", "exponential", "exponential_jitter".
		// Optional, defaults to "fixed".
		Backoff *string `json:"backoff,omitempty" yaml:"backoff,omitempty"`
		// BaseDelay is the base delay of the strategy. Optional. Example: "200ms".
		BaseDelay *string `json:"base_delay,omitempty" yaml:"base_delay,omitempty"`
		// MaxDelay caps the delay. Optional. Example: "2s".
		MaxDelay *string `json:"max_delay,omitempty" yaml:"max_delay,omitempty"`
	}

	// CircuitBreakerConfig holds circuit breaker configuration values.
	CircuitBreakerConfig struct {
		RecoveryTimeout     *string `json:"recovery_timeout,omitempty"       yaml:"recovery_timeout,omitempty"`
		FailureThreshold    *int    `json:"failure_threshold,omitempty"      yaml:"failure_threshold,omitempty"`
		HalfOpenMaxAttempts *int    `json:"half_open_max_attempts,omitempty" yaml:"half_open_max_attempts,omitempty"`
	}

	// RateLimitConfig configures the token bucket shared by all policies.
	RateLimitConfig struct {
		RPS   float64 `json:"rps"   yaml:"rps"`
		Burst int     `json:"burst" yaml:"burst"`
	}
)

// ErrMaxAttemptsRequired is returned when a retry section omits max_attempts.
var ErrMaxAttemptsRequired = errors.New("retry.max_attempts is required")

// LoadConfig reads a configuration file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON. Every policy is validated eagerly
// so errors surface at startup.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resilience: read config: %w", err)
	}

	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("resilience: parse config: %w", err)
	}

	for name, pc := range cfg.Policies {
		if _, buildErr := BuildOptions(&pc); buildErr != nil {
			return nil, fmt.Errorf("resilience: policy %q: %w", name, buildErr)
		}
	}

	return &cfg, nil
}

// PolicyFor returns the configuration of the named operation, falling back
// to [DefaultPolicyConfig] for a nil config or an unknown name.
func (c *Config) PolicyFor(name string) PolicyConfig {
	if c != nil {
		if pc, ok := c.Policies[name]; ok {
			return pc
		}
	}

	return DefaultPolicyConfig()
}

// SharedRateLimiter builds the upstream token bucket, or returns nil when no
// rate limit is configured.
func (c *Config) SharedRateLimiter() *RateLimiter {
	if c == nil || c.RateLimit == nil {
		return nil
	}

	return NewRateLimiter(c.RateLimit.RPS, c.RateLimit.Burst)
}

// BuildOptions converts a [PolicyConfig] into options for [NewPolicy].
func BuildOptions(pc *PolicyConfig) ([]Option, error) {
	var opts []Option

	if pc.AttemptTimeout != nil {
		d, err := time.ParseDuration(*pc.AttemptTimeout)
		if err != nil {
			return nil, fmt.Errorf("attempt_timeout: %w", err)
		}

		opts = append(opts, WithAttemptTimeout(d))
	}

	if pc.Retry != nil {
		retryOpt, err := buildRetry(pc.Retry)
		if err != nil {
			return nil, fmt.Errorf("retry: %w", err)
		}

		opts = append(opts, retryOpt)
	}

	if pc.CircuitBreaker != nil {
		cbOpt, err := buildCircuitBreaker(pc.CircuitBreaker)
		if err != nil {
			return nil, fmt.Errorf("circuit_breaker: %w", err)
		}

		opts = append(opts, cbOpt)
	}

	return opts, nil
}

func buildRetry(rc *RetryConfig) (Option, error) {
	if rc.MaxAttempts == nil {
		return nil, ErrMaxAttemptsRequired
	}

	if *rc.MaxAttempts < 1 {
		return nil, fmt.Errorf("max_attempts must be >= 1, got %d", *rc.MaxAttempts)
	}

	base := DefaultBaseDelay
	if rc.BaseDelay != nil {
		d, err := time.ParseDuration(*rc.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("base_delay: %w", err)
		}

		base = d
	}

	var name string
	if rc.Backoff != nil {
		name = *rc.Backoff
	}

	strategy, err := ParseBackoff(name, base)
	if err != nil {
		return nil, err
	}

	var retryOpts []RetryOption

	if rc.MaxDelay != nil {
		d, parseErr := time.ParseDuration(*rc.MaxDelay)
		if parseErr != nil {
			return nil, fmt.Errorf("max_delay: %w", parseErr)
		}

		retryOpts = append(retryOpts, MaxDelay(d))
	}

	return WithRetry(*rc.MaxAttempts, strategy, retryOpts...), nil
}

func buildCircuitBreaker(cc *CircuitBreakerConfig) (Option, error) {
	var cbOpts []CircuitBreakerOption

	if cc.FailureThreshold != nil {
		cbOpts = append(cbOpts, FailureThreshold(*cc.FailureThreshold))
	}

	if cc.RecoveryTimeout != nil {
		d, err := time.ParseDuration(*cc.RecoveryTimeout)
		if err != nil {
			return nil, fmt.Errorf("recovery_timeout: %w", err)
		}

		cbOpts = append(cbOpts, RecoveryTimeout(d))
	}

	if cc.HalfOpenMaxAttempts != nil {
		cbOpts = append(cbOpts, HalfOpenMaxAttempts(*cc.HalfOpenMaxAttempts))
	}

	return WithCircuitBreaker(cbOpts...), nil
}
