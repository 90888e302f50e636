package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-io/ckan-client/internal/mcp"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server",
		Long: `Run a Model Context Protocol server over stdio, exposing catalog
search and listing operations as tools for MCP-capable agents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = mcp.Serve(context.Background(), client)
			if err != nil {
				return fmt.Errorf("mcp server failed: %w", err)
			}

			return nil
		},
	}
}
