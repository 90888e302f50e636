package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	client ckan.Client
}

func (h *toolHandler) handleSearchDatasets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := ckan.NewSearchQuery()

	if kw := request.GetString("keyword", ""); kw != "" {
		query.WithKeyword(kw)
	}

	if org := request.GetString("organization", ""); org != "" {
		query.WithOrganization(org)
	}

	if tags := request.GetString("tags", ""); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				query.WithTags(tag)
			}
		}
	}

	if rows := request.GetInt("rows", 0); rows > 0 {
		query.WithRows(rows)
	}

	table, err := h.client.Packages().Search(ctx, query, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return tableResult(table)
}

func (h *toolHandler) handleGetDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	table, err := h.client.Packages().Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	return tableResult(table)
}

func (h *toolHandler) handleListOrganizations(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := h.client.Organizations().List(ctx, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing organizations failed: %v", err)), nil
	}

	return tableResult(table)
}

func (h *toolHandler) handleListGroups(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := h.client.Groups().List(ctx, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing groups failed: %v", err)), nil
	}

	return tableResult(table)
}

func (h *toolHandler) handleListTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := h.client.Tags().List(ctx, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing tags failed: %v", err)), nil
	}

	return tableResult(table)
}

func tableResult(table *ckan.Table) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(table.Rows, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
