// Package client implements the ckan.Client interface: one client session
// owning its settings, cache, and rate-limited transport.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/opendata-io/ckan-client/internal/http"
	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// Fixed cache keys for the metadata-listing operations. Search results are
// cached under their query signature instead.
const (
	cacheKeyPackages      = "packages"
	cacheKeyOrganizations = "organizations"
	cacheKeyGroups        = "groups"
	cacheKeyTags          = "tags"

	searchCacheKeyPrefix = "search:"
)

// Client implements the ckan.Client interface.
type Client struct {
	httpClient *http.Client
	cache      ckan.Cache
	config     *ckan.Config
	logger     ckan.Logger

	// Resource clients
	packages      ckan.PackagesClient
	organizations ckan.OrganizationsClient
	groups        ckan.GroupsClient
	tags          ckan.TagsClient
}

// New creates a new catalog client session.
func New(config *ckan.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ckan.ErrEndpointRequired
	}

	cache, err := ckan.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("building cache: %w", err)
	}

	httpClient := http.NewClient(config.BaseURL, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		cache:      cache,
		config:     config,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *ckan.Config) []http.Option {
	opts := []http.Option{
		http.WithRetryConfig(config.MaxRetries, config.BackoffBase, config.BackoffMax),
		http.WithRateLimit(config.RateLimit),
		http.WithTimeout(config.Timeout),
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	return opts
}

func (c *Client) initializeResourceClients() {
	c.packages = NewPackagesClient(c)
	c.organizations = NewOrganizationsClient(c)
	c.groups = NewGroupsClient(c)
	c.tags = NewTagsClient(c)
}

// Packages implements ckan.Client.Packages.
func (c *Client) Packages() ckan.PackagesClient {
	return c.packages
}

// Organizations implements ckan.Client.Organizations.
func (c *Client) Organizations() ckan.OrganizationsClient {
	return c.organizations
}

// Groups implements ckan.Client.Groups.
func (c *Client) Groups() ckan.GroupsClient {
	return c.groups
}

// Tags implements ckan.Client.Tags.
func (c *Client) Tags() ckan.TagsClient {
	return c.tags
}

// LastRequestAt exposes the session's rate-limit timestamp.
func (c *Client) LastRequestAt() time.Time {
	return c.httpClient.LastRequestAt()
}

// ResetCache drops every cached listing for this session.
func (c *Client) ResetCache(ctx context.Context) error {
	err := c.cache.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	return nil
}

// FetchPage implements ckan.PageClient: one transport call decoded into the
// response envelope.
func (c *Client) FetchPage(ctx context.Context, path string, params url.Values) (*ckan.Envelope, error) {
	resp, err := c.httpClient.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var envelope ckan.Envelope

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s envelope: %w", path, err)
	}

	return &envelope, nil
}

// cachedTable returns the table stored under key, or nil on miss or decode
// failure. Cache trouble is never fatal; the caller just refetches.
func (c *Client) cachedTable(ctx context.Context, key string) *ckan.Table {
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	table, err := ckan.DecodeTable(entry.Data)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("dropping undecodable cache entry", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}

		_ = c.cache.Delete(ctx, key)

		return nil
	}

	return table
}

// storeTable overwrites the cache entry under key. Empty tables are not
// pinned; a failed or empty fetch should be retried on the next call.
// Failures are logged, not surfaced: caching is an optimization, not a
// contract.
func (c *Client) storeTable(ctx context.Context, key string, table *ckan.Table) {
	if table.Empty() {
		return
	}

	data, err := json.Marshal(table)
	if err != nil {
		return
	}

	err = c.cache.Set(ctx, key, &ckan.CacheEntry{Data: data, StoredAt: time.Now()})
	if err != nil && c.logger != nil {
		c.logger.Warn("caching fetch result failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (c *Client) pageSize() int {
	return c.config.PageSize
}

// loggerAdapter adapts ckan.Logger to the transport's logger interface.
type loggerAdapter struct {
	logger ckan.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
