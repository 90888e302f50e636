package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// PackagesClient implements the ckan.PackagesClient interface.
type PackagesClient struct {
	client *Client
}

// NewPackagesClient creates a new packages client.
func NewPackagesClient(client *Client) *PackagesClient {
	return &PackagesClient{client: client}
}

// List fetches the catalog's full dataset-name listing. package_list returns
// a bare list of names in one response, so no pagination happens here.
func (c *PackagesClient) List(ctx context.Context, opts *ckan.FetchOptions) (*ckan.Table, error) {
	if opts == nil {
		opts = &ckan.FetchOptions{}
	}

	if !opts.ForceRefresh {
		if table := c.client.cachedTable(ctx, cacheKeyPackages); table != nil {
			return table, nil
		}
	}

	envelope, err := c.client.FetchPage(ctx, "/package_list", url.Values{})
	if err != nil {
		return nil, err
	}

	page := envelope.Page()
	if !envelope.Success {
		page.Records = nil
	}

	table := ckan.NormalizeRecords(ckan.KindName, page.Records)

	c.client.storeTable(ctx, cacheKeyPackages, table)

	return table, nil
}

// Search runs a paginated package_search and returns every matching dataset
// as one normalized table. Results are cached under the query signature, so
// repeating the identical search hits the cache while a different keyword or
// filter does not.
func (c *PackagesClient) Search(ctx context.Context, query *ckan.SearchQuery, opts *ckan.FetchOptions) (*ckan.Table, error) {
	if query == nil {
		query = ckan.NewSearchQuery()
	}

	if opts == nil {
		opts = &ckan.FetchOptions{}
	}

	base := query.ToValues()
	cacheKey := searchCacheKeyPrefix + base.Encode()

	if !opts.ForceRefresh {
		if table := c.client.cachedTable(ctx, cacheKey); table != nil {
			return table, nil
		}
	}

	pageSize := query.Rows
	if pageSize <= 0 {
		pageSize = c.client.pageSize()
	}

	records, err := ckan.FetchAllPages(ctx, c.client, "/package_search", base, &ckan.PaginationOptions{
		PageSize: pageSize,
		Progress: opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	table := ckan.NormalizeRecords(ckan.KindPackage, records)

	c.client.storeTable(ctx, cacheKey, table)

	return table, nil
}

// Get fetches one dataset's detail via package_show. A missing dataset comes
// back as success=false and yields an empty table rather than an error.
// Detail lookups bypass the cache entirely.
func (c *PackagesClient) Get(ctx context.Context, id string) (*ckan.Table, error) {
	envelope, err := c.showPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	if !envelope.Success {
		return ckan.NewTable(ckan.ColumnsFor(ckan.KindPackage)), nil
	}

	return ckan.NormalizeRecords(ckan.KindPackage, []json.RawMessage{envelope.Result}), nil
}

// Metadata fetches one dataset's raw metadata flattened into a field/value
// table, fields sorted alphabetically. Compound values are rendered as JSON.
func (c *PackagesClient) Metadata(ctx context.Context, id string) (*ckan.Table, error) {
	columns := []ckan.Column{
		{Name: "field", Kind: ckan.ColumnString},
		{Name: "value", Kind: ckan.ColumnString},
	}

	envelope, err := c.showPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	table := ckan.NewTable(columns)
	if !envelope.Success {
		return table, nil
	}

	var raw map[string]json.RawMessage

	err = json.Unmarshal(envelope.Result, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing package metadata: %w", err)
	}

	fields := make([]string, 0, len(raw))
	for field := range raw {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	for _, field := range fields {
		table.Append(ckan.Row{
			"field": field,
			"value": metadataValue(raw[field]),
		})
	}

	return table, nil
}

func (c *PackagesClient) showPackage(ctx context.Context, id string) (*ckan.Envelope, error) {
	params := url.Values{}
	params.Set("id", id)

	return c.client.FetchPage(ctx, "/package_show", params)
}

// metadataValue renders one raw JSON field for the field/value view: scalar
// strings lose their quotes, everything else stays JSON.
func metadataValue(raw json.RawMessage) string {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	}

	return string(raw)
}
