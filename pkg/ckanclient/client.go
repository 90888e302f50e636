// Package ckanclient provides the entry point for creating CKAN catalog
// clients.
//
// Example usage:
//
//	client, err := ckanclient.New(&ckan.Config{
//		BaseURL: "https://catalog.data.gov",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	table, err := client.Packages().Search(ctx,
//		ckan.NewSearchQuery().WithKeyword("climate"), nil)
package ckanclient

import (
	"fmt"
	"strings"

	internalclient "github.com/opendata-io/ckan-client/internal/client"
	"github.com/opendata-io/ckan-client/internal/constants"
	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// New creates a new CKAN catalog client from the given configuration. The
// endpoint is normalized, zero-valued settings are filled with defaults, and
// the page size is clamped to the API's row ceiling. The passed Config is not
// mutated.
func New(config *ckan.Config) (ckan.Client, error) {
	if config == nil {
		return nil, ckan.ErrConfigRequired
	}

	resolved, err := resolveConfig(config)
	if err != nil {
		return nil, err
	}

	client, err := internalclient.New(resolved)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// NewWithEndpoint creates a client for the given endpoint with default
// settings.
func NewWithEndpoint(endpoint string) (ckan.Client, error) {
	return New(&ckan.Config{BaseURL: endpoint})
}

func resolveConfig(config *ckan.Config) (*ckan.Config, error) {
	resolved := *config

	if resolved.BaseURL == "" {
		resolved.BaseURL = constants.DefaultEndpoint
	}

	endpoint, err := NormalizeEndpoint(resolved.BaseURL)
	if err != nil {
		return nil, err
	}

	resolved.BaseURL = endpoint

	if resolved.Timeout <= 0 {
		resolved.Timeout = constants.DefaultHTTPTimeout
	}

	if resolved.RateLimit <= 0 {
		resolved.RateLimit = constants.DefaultRateLimit
	}

	if resolved.MaxRetries <= 0 {
		resolved.MaxRetries = constants.DefaultRetryMax
	}

	if resolved.BackoffBase <= 0 {
		resolved.BackoffBase = constants.DefaultBackoffBase
	}

	if resolved.BackoffMax <= 0 {
		resolved.BackoffMax = constants.DefaultBackoffMax
	}

	if resolved.PageSize <= 0 {
		resolved.PageSize = constants.DefaultPageSize
	}

	if resolved.PageSize > constants.MaxPageSize {
		resolved.PageSize = constants.MaxPageSize
	}

	if resolved.Cache == nil {
		resolved.Cache = ckan.DefaultCacheConfig()
	}

	return &resolved, nil
}

// NormalizeEndpoint canonicalizes a catalog endpoint: trailing slashes are
// trimmed, a missing scheme becomes https, and the action API path is
// appended when absent, so both "catalog.data.gov" and the full action URL
// resolve to the same endpoint.
func NormalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	endpoint = strings.TrimRight(endpoint, "/")

	if endpoint == "" {
		return "", ckan.ErrEndpointRequired
	}

	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	rest := endpoint[strings.Index(endpoint, "://")+len("://"):]
	if rest == "" || strings.HasPrefix(rest, "/") {
		return "", ckan.ErrNoHostInURL
	}

	if !strings.HasSuffix(endpoint, constants.ActionPathSuffix) {
		endpoint += constants.ActionPathSuffix
	}

	return endpoint, nil
}
