package constants

import "time"

// Connection defaults.
const (
	// DefaultEndpoint is the CKAN action API used when no endpoint is configured.
	DefaultEndpoint = "https://catalog.data.gov/api/3/action"

	// ActionPathSuffix is the path component of a CKAN action API root.
	ActionPathSuffix = "/api/3/action"

	// DefaultHTTPTimeout is the default timeout for a single HTTP attempt.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRateLimit is the minimum delay between consecutive requests.
	DefaultRateLimit = 1 * time.Second
)

// Retry policy defaults.
const (
	// DefaultRetryMax is the total number of attempts before giving up.
	DefaultRetryMax = 5

	// DefaultBackoffBase is the unit multiplied by 2^attempt between retries.
	DefaultBackoffBase = 1 * time.Second

	// DefaultBackoffMax caps the wait between retries.
	DefaultBackoffMax = 60 * time.Second
)

// Pagination limits.
const (
	// DefaultPageSize is the number of rows requested per page.
	DefaultPageSize = 100

	// MaxPageSize is the row ceiling imposed by the upstream API.
	MaxPageSize = 1000

	// DefaultMaxPages bounds a single aggregated fetch. A conforming
	// backend terminates much earlier via its reported count or a short
	// page; the ceiling only guards against a backend that does neither.
	DefaultMaxPages = 10000
)

// Output formats.
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Cache defaults.
const (
	// DefaultCacheSize is the entry ceiling for bounded memory caches.
	// Zero means unbounded, which is the client default.
	DefaultCacheSize = 0

	// DefaultNATSBucket is the KV bucket used by the NATS cache backend.
	DefaultNATSBucket = "ckan-catalog-cache"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
