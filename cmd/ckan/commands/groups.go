package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Browse catalog groups",
		Long:    "List the thematic groups of a CKAN catalog",
	}

	cmd.AddCommand(newGroupsListCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var (
		forceRefresh bool
		exportPath   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long:  "List all groups with their full fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroupsListCommand(forceRefresh, exportPath)
		},
	}

	cmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&exportPath, "export", "", "export results to a file (.csv, .json, .yaml, .parquet)")

	return cmd
}

func runGroupsListCommand(forceRefresh bool, exportPath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	table, err := client.Groups().List(context.Background(), &ckan.FetchOptions{ForceRefresh: forceRefresh})
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	return OutputTable(table, "No groups found", exportPath)
}
