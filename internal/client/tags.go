package client

import (
	"context"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// TagsClient implements the ckan.TagsClient interface.
type TagsClient struct {
	client *Client
}

// NewTagsClient creates a new tags client.
func NewTagsClient(client *Client) *TagsClient {
	return &TagsClient{client: client}
}

// List fetches all tags. With all_fields=true the API returns tag objects;
// normalization also accepts the bare-name form some catalogs return.
func (c *TagsClient) List(ctx context.Context, opts *ckan.FetchOptions) (*ckan.Table, error) {
	return c.client.fetchListing(ctx, "/tag_list", cacheKeyTags, ckan.KindTag, opts)
}
