package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// NewOrgsCommand creates the organizations command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations", "org"},
		Short:   "Browse catalog organizations",
		Long:    "List the publishing organizations of a CKAN catalog",
	}

	cmd.AddCommand(newOrgsListCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	var (
		forceRefresh bool
		exportPath   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Long:  "List all organizations with their full fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrgsListCommand(forceRefresh, exportPath)
		},
	}

	cmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&exportPath, "export", "", "export results to a file (.csv, .json, .yaml, .parquet)")

	return cmd
}

func runOrgsListCommand(forceRefresh bool, exportPath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	table, err := client.Organizations().List(context.Background(), &ckan.FetchOptions{ForceRefresh: forceRefresh})
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	return OutputTable(table, "No organizations found", exportPath)
}
