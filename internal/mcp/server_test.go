package mcp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opendata-io/ckan-client/internal/mcp"
	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// stubClient satisfies ckan.Client with canned tables.
type stubClient struct{}

func (stubClient) Packages() ckan.PackagesClient           { return stubPackages{} }
func (stubClient) Organizations() ckan.OrganizationsClient { return stubListing{} }
func (stubClient) Groups() ckan.GroupsClient               { return stubListing{} }
func (stubClient) Tags() ckan.TagsClient                   { return stubListing{} }

type stubPackages struct{}

func (stubPackages) List(ctx context.Context, opts *ckan.FetchOptions) (*ckan.Table, error) {
	return ckan.NewTable(ckan.ColumnsFor(ckan.KindName)), nil
}

func (stubPackages) Search(ctx context.Context, query *ckan.SearchQuery, opts *ckan.FetchOptions) (*ckan.Table, error) {
	return ckan.NewTable(ckan.ColumnsFor(ckan.KindPackage)), nil
}

func (stubPackages) Get(ctx context.Context, id string) (*ckan.Table, error) {
	return ckan.NewTable(ckan.ColumnsFor(ckan.KindPackage)), nil
}

func (stubPackages) Metadata(ctx context.Context, id string) (*ckan.Table, error) {
	return ckan.NewTable(nil), nil
}

type stubListing struct{}

func (stubListing) List(ctx context.Context, opts *ckan.FetchOptions) (*ckan.Table, error) {
	return ckan.NewTable(ckan.ColumnsFor(ckan.KindOrganization)), nil
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	server := mcp.NewServer(stubClient{})
	assert.NotNil(t, server)
}
