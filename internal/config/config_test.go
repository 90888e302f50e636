package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-io/ckan-client/internal/config"
	"github.com/opendata-io/ckan-client/internal/constants"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ckan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	assert.Equal(t, constants.DefaultEndpoint, cfg.BaseURL)
	assert.Equal(t, constants.DefaultHTTPTimeout, cfg.Timeout)
	assert.Equal(t, constants.DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, constants.DefaultRetryMax, cfg.MaxRetries)
	assert.Equal(t, constants.DefaultPageSize, cfg.PageSize)
	assert.True(t, cfg.Color)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
connection:
  base_url: https://demo.ckan.org
  timeout_seconds: 10
  max_retries: 2
  rate_limit_ms: 250
defaults:
  page_size: 50
  export_format: csv
presentation:
  color: false
`)

	cfg := config.Load(path, nil)

	assert.Equal(t, "https://demo.ckan.org", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimit)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "csv", cfg.ExportFormat)
	assert.False(t, cfg.Color)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
connection:
  timeout_seconds: -3
  max_retries: 0
  rate_limit_ms: -100
defaults:
  page_size: -1
`)

	cfg := config.Load(path, nil)

	assert.Equal(t, constants.DefaultHTTPTimeout, cfg.Timeout)
	assert.Equal(t, constants.DefaultRetryMax, cfg.MaxRetries)
	assert.Equal(t, constants.DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, constants.DefaultPageSize, cfg.PageSize)
}

func TestLoad_UnparseableFileFallsBack(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "connection: [not: valid: yaml")

	cfg := config.Load(path, nil)

	assert.Equal(t, constants.DefaultEndpoint, cfg.BaseURL)
	assert.Equal(t, constants.DefaultPageSize, cfg.PageSize)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CKAN_CONNECTION_BASE_URL", "https://env.example.org")

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	assert.Equal(t, "https://env.example.org", cfg.BaseURL)
}
