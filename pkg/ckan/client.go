package ckan

import (
	"context"
	"time"
)

// Client provides access to the catalog's resource clients. One Client is
// one session: it owns its cache and its rate-limit bookkeeping, so multiple
// independent sessions can coexist in a process.
type Client interface {
	Packages() PackagesClient
	Organizations() OrganizationsClient
	Groups() GroupsClient
	Tags() TagsClient
}

// PackagesClient provides access to dataset (package) operations.
type PackagesClient interface {
	// List fetches the full catalog listing of dataset names (package_list).
	List(ctx context.Context, opts *FetchOptions) (*Table, error)

	// Search runs a paginated package_search and aggregates every page into
	// one table of normalized package records.
	Search(ctx context.Context, query *SearchQuery, opts *FetchOptions) (*Table, error)

	// Get fetches the detail of a single dataset (package_show) as a
	// one-row normalized table. A dataset that does not exist yields an
	// empty table, not an error. Detail lookups are never cached.
	Get(ctx context.Context, id string) (*Table, error)

	// Metadata fetches a dataset's raw metadata flattened into a
	// field/value table for display. Never cached.
	Metadata(ctx context.Context, id string) (*Table, error)
}

// OrganizationsClient provides access to organization operations.
type OrganizationsClient interface {
	List(ctx context.Context, opts *FetchOptions) (*Table, error)
}

// GroupsClient provides access to group operations.
type GroupsClient interface {
	List(ctx context.Context, opts *FetchOptions) (*Table, error)
}

// TagsClient provides access to tag operations.
type TagsClient interface {
	List(ctx context.Context, opts *FetchOptions) (*Table, error)
}

// ProgressFunc receives pagination progress. total is -1 until the backend
// reports a count.
type ProgressFunc func(fetched, total int)

// FetchOptions tunes a single fetch operation.
type FetchOptions struct {
	// ForceRefresh bypasses the cache and overwrites the entry on success.
	ForceRefresh bool

	// Progress, when set, is invoked after every fetched page.
	Progress ProgressFunc
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a ckan.Client.
//
// The catalog API is public and unauthenticated; there are no credential
// fields. All numeric fields must be positive once resolved; ckanclient.New
// fills zero values with defaults and clamps PageSize to the API's row
// ceiling (1000). A Config is never mutated after the client is built and is
// shared by reference across every request the client issues.
type Config struct {
	// BaseURL is the catalog endpoint. ckanclient.New normalizes it by
	// trimming a trailing slash, adding "https://" when no scheme is
	// present, and appending the action API path when it is missing.
	BaseURL string

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// RateLimit is the minimum delay between consecutive requests issued
	// by this client, applied across retries.
	RateLimit time.Duration

	// MaxRetries is the total number of attempts per request before the
	// error surfaces as a TransportError.
	MaxRetries int

	// PageSize is the number of rows requested per page.
	PageSize int

	// BackoffBase is the unit multiplied by 2^attempt between retries.
	// Defaults to one second; tests shrink it.
	BackoffBase time.Duration

	// BackoffMax caps the wait between retries.
	BackoffMax time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool

	// Logger is an optional structured logger used by the transport.
	Logger Logger

	// Cache selects the cache backend. Nil means the default in-memory
	// backend.
	Cache *CacheConfig

	// ExportFormat is the default file format for exports ("csv", "json",
	// "yaml", "parquet"). Consumed by the presentation layer.
	ExportFormat string

	// Color enables colored terminal output. Consumed by the presentation
	// layer.
	Color bool
}
