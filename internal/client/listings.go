package client

import (
	"context"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// fetchListing implements the shared shape of the organization_list,
// group_list, and tag_list operations: one request with all_fields=true,
// normalized into a table and cached under a fixed key.
func (c *Client) fetchListing(ctx context.Context, path, cacheKey string, kind ckan.RecordKind, opts *ckan.FetchOptions) (*ckan.Table, error) {
	if opts == nil {
		opts = &ckan.FetchOptions{}
	}

	if !opts.ForceRefresh {
		if table := c.cachedTable(ctx, cacheKey); table != nil {
			return table, nil
		}
	}

	params := ckan.ListParams{AllFields: true}

	envelope, err := c.FetchPage(ctx, path, params.ToValues())
	if err != nil {
		return nil, err
	}

	page := envelope.Page()
	if !envelope.Success {
		page.Records = nil
	}

	table := ckan.NormalizeRecords(kind, page.Records)

	if opts.Progress != nil {
		opts.Progress(table.Len(), table.Len())
	}

	c.storeTable(ctx, cacheKey, table)

	return table, nil
}
