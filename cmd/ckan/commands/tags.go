package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Browse catalog tags",
		Long:    "List the tags of a CKAN catalog",
	}

	cmd.AddCommand(newTagsListCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	var (
		forceRefresh bool
		exportPath   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Long:  "List all tags with their full fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagsListCommand(forceRefresh, exportPath)
		},
	}

	cmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&exportPath, "export", "", "export results to a file (.csv, .json, .yaml, .parquet)")

	return cmd
}

func runTagsListCommand(forceRefresh bool, exportPath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	table, err := client.Tags().List(context.Background(), &ckan.FetchOptions{ForceRefresh: forceRefresh})
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	return OutputTable(table, "No tags found", exportPath)
}
