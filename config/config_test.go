package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/employeegw/config"
)

var envKeys = []string{
	"HTTP_ADDR", "UPSTREAM_BASE_URL", "UPSTREAM_TIMEOUT", "RESILIENCE_CONFIG",
	"LOG_MODE", "GIN_MODE", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_SAMPLER_RATIO", "SERVICE_NAME", "SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func missingFile(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, config.DefaultUpstreamBaseURL, cfg.Upstream.BaseURL)
	assert.Equal(t, config.DefaultUpstreamTimeout, cfg.Upstream.Timeout)
	assert.Equal(t, config.DefaultLogMode, cfg.LogMode)
	assert.Equal(t, config.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, config.DefaultServiceName, cfg.Otel.ServiceName)
	assert.InDelta(t, config.DefaultSamplerRatio, cfg.Otel.SamplerRatio, 1e-9)
	assert.False(t, cfg.Otel.Enabled)
	assert.Empty(t, cfg.ResilienceConfig)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("UPSTREAM_BASE_URL", "http://localhost:3000/api/v1/")
	t.Setenv("UPSTREAM_TIMEOUT", "750ms")
	t.Setenv("RESILIENCE_CONFIG", "policies.yaml")
	t.Setenv("LOG_MODE", "production")
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_SAMPLER_RATIO", "1")

	cfg, err := config.Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:3000/api/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Upstream.Timeout)
	assert.Equal(t, "policies.yaml", cfg.ResilienceConfig)
	assert.Equal(t, "production", cfg.LogMode)
	assert.True(t, cfg.Otel.Enabled)
	assert.InDelta(t, 1.0, cfg.Otel.SamplerRatio, 1e-9)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)

	// godotenv only fills variables that are unset.
	for _, k := range []string{"HTTP_ADDR", "SERVICE_NAME"} {
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:7070\nSERVICE_NAME=gw-test\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "gw-test", cfg.Otel.ServiceName)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string][2]string{
		"relative url":     {"UPSTREAM_BASE_URL", "/api/v1"},
		"ftp url":          {"UPSTREAM_BASE_URL", "ftp://example.com"},
		"bad timeout":      {"UPSTREAM_TIMEOUT", "soon"},
		"negative timeout": {"UPSTREAM_TIMEOUT", "-1s"},
		"bad shutdown":     {"SHUTDOWN_TIMEOUT", "0s"},
		"bad bool":         {"OTEL_ENABLED", "maybe"},
		"bad ratio":        {"OTEL_SAMPLER_RATIO", "x"},
		"ratio too large":  {"OTEL_SAMPLER_RATIO", "1.5"},
	}

	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := config.Load(missingFile(t))
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}
