package client

import (
	"context"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// OrganizationsClient implements the ckan.OrganizationsClient interface.
type OrganizationsClient struct {
	client *Client
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(client *Client) *OrganizationsClient {
	return &OrganizationsClient{client: client}
}

// List fetches all organizations with their full fields.
func (c *OrganizationsClient) List(ctx context.Context, opts *ckan.FetchOptions) (*ckan.Table, error) {
	return c.client.fetchListing(ctx, "/organization_list", cacheKeyOrganizations, ckan.KindOrganization, opts)
}
