package client

import (
	"context"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// GroupsClient implements the ckan.GroupsClient interface.
type GroupsClient struct {
	client *Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(client *Client) *GroupsClient {
	return &GroupsClient{client: client}
}

// List fetches all groups with their full fields.
func (c *GroupsClient) List(ctx context.Context, opts *ckan.FetchOptions) (*ckan.Table, error) {
	return c.client.fetchListing(ctx, "/group_list", cacheKeyGroups, ckan.KindGroup, opts)
}
