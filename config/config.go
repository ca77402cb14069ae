// Package config loads process settings from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for unset variables.
const (
	DefaultHTTPAddr        = ":8080"
	DefaultUpstreamBaseURL = "https://dummy.restapiexample.com/api/v1"
	DefaultUpstreamTimeout = 5 * time.Second
	DefaultLogMode         = "development"
	DefaultServiceName     = "employeegw"
	DefaultSamplerRatio    = 0.1
	DefaultShutdownTimeout = 10 * time.Second
)

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid configuration")

type (
	// Config is the process configuration.
	Config struct {
		HTTPAddr string
		// ResilienceConfig is the optional path of the policy file.
		ResilienceConfig string
		LogMode          string
		GinMode          string
		Upstream         UpstreamConfig
		Otel             OtelConfig
		ShutdownTimeout  time.Duration
	}

	// UpstreamConfig locates the remote employee API.
	UpstreamConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	// OtelConfig drives the tracing bootstrap.
	OtelConfig struct {
		ServiceName  string
		Endpoint     string
		SamplerRatio float64
		Enabled      bool
	}
)

// Load reads the configuration. The given files (".env" when none) are
// merged into the environment first without overriding variables that
// are already set; a missing file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", DefaultHTTPAddr),
		ResilienceConfig: getEnv("RESILIENCE_CONFIG", ""),
		LogMode:          getEnv("LOG_MODE", DefaultLogMode),
		GinMode:          getEnv("GIN_MODE", ""),
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", DefaultUpstreamBaseURL), "/"),
		},
		Otel: OtelConfig{
			ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}

	var err error

	if err = validateBaseURL(cfg.Upstream.BaseURL); err != nil {
		return nil, err
	}

	if cfg.Upstream.Timeout, err = durationEnv("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout); err != nil {
		return nil, err
	}

	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return nil, err
	}

	if cfg.Otel.Enabled, err = boolEnv("OTEL_ENABLED"); err != nil {
		return nil, err
	}

	if cfg.Otel.SamplerRatio, err = ratioEnv("OTEL_SAMPLER_RATIO", DefaultSamplerRatio); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: UPSTREAM_BASE_URL: %w", ErrInvalid, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: UPSTREAM_BASE_URL %q: want an absolute http(s) URL", ErrInvalid, raw)
	}

	return nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, key, raw)
	}

	return d, nil
}

func boolEnv(key string) (bool, error) {
	switch strings.ToLower(getEnv(key, "")) {
	case "":
		return false, nil
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s %q is not a boolean", ErrInvalid, key, os.Getenv(key))
	}
}

func ratioEnv(key string, def float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
	}

	if f < 0 || f > 1 {
		return 0, fmt.Errorf("%w: %s must be within [0,1], got %s", ErrInvalid, key, raw)
	}

	return f, nil
}
