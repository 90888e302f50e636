// Package mcp provides the Model Context Protocol (MCP) server implementation,
// exposing the catalog client's operations as tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// NewServer initializes and configures the catalog MCP server without
// starting it. This is exposed for unit testing.
func NewServer(client ckan.Client) *server.MCPServer {
	s := server.NewMCPServer(
		"CKAN Catalog Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{client: client}

	s.AddTool(mcp.NewTool("search_datasets",
		mcp.WithDescription("Search the catalog for datasets matching a keyword and optional organization/tag filters. Returns normalized dataset records."),
		mcp.WithString("keyword", mcp.Description("Free-text search keyword.")),
		mcp.WithString("organization", mcp.Description("Restrict results to one organization (by name).")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags; all must match.")),
		mcp.WithNumber("rows", mcp.Description("Page size requested per API call.")),
	), h.handleSearchDatasets)

	s.AddTool(mcp.NewTool("get_dataset",
		mcp.WithDescription("Fetch one dataset's detail record by name or id. A missing dataset returns an empty result, not an error."),
		mcp.WithString("id", mcp.Description("Dataset name or id."), mcp.Required()),
	), h.handleGetDataset)

	s.AddTool(mcp.NewTool("list_organizations",
		mcp.WithDescription("List all organizations in the catalog with their full fields."),
	), h.handleListOrganizations)

	s.AddTool(mcp.NewTool("list_groups",
		mcp.WithDescription("List all groups in the catalog with their full fields."),
	), h.handleListGroups)

	s.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags in the catalog."),
	), h.handleListTags)

	return s
}

// Serve starts the catalog MCP server on stdio.
func Serve(_ context.Context, client ckan.Client) error {
	return server.ServeStdio(NewServer(client))
}
