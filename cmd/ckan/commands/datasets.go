package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// NewDatasetsCommand creates the datasets command group.
func NewDatasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"dataset", "packages"},
		Short:   "Browse catalog datasets",
		Long:    "Search, list, and inspect the datasets of a CKAN catalog",
	}

	cmd.AddCommand(newDatasetsSearchCommand())
	cmd.AddCommand(newDatasetsListCommand())
	cmd.AddCommand(newDatasetsShowCommand())
	cmd.AddCommand(newDatasetsMetaCommand())

	return cmd
}

func newDatasetsSearchCommand() *cobra.Command {
	var (
		organization string
		tags         []string
		filterQuery  string
		rows         int
		forceRefresh bool
		exportPath   string
	)

	cmd := &cobra.Command{
		Use:   "search [KEYWORD]",
		Short: "Search datasets",
		Long: `Search the catalog for datasets matching a keyword and optional
organization and tag filters. All pages of the result are fetched and
aggregated into one listing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) > 0 {
				keyword = args[0]
			}

			return runDatasetsSearchCommand(keyword, organization, tags, filterQuery, rows, forceRefresh, exportPath)
		},
	}

	cmd.Flags().StringVar(&organization, "org", "", "filter by organization name")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "filter by tag (repeatable, all must match)")
	cmd.Flags().StringVar(&filterQuery, "fq", "", "raw filter query passed through to the API")
	cmd.Flags().IntVar(&rows, "rows", 0, "page size requested per API call")
	cmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&exportPath, "export", "", "export results to a file (.csv, .json, .yaml, .parquet)")

	return cmd
}

func runDatasetsSearchCommand(keyword, organization string, tags []string, filterQuery string, rows int, forceRefresh bool, exportPath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	query := ckan.NewSearchQuery().
		WithKeyword(keyword).
		WithFilterQuery(filterQuery).
		WithOrganization(organization).
		WithTags(tags...).
		WithRows(rows)

	table, err := client.Packages().Search(context.Background(), query, &ckan.FetchOptions{
		ForceRefresh: forceRefresh,
		Progress:     progressReporter(),
	})
	if err != nil {
		return fmt.Errorf("failed to search datasets: %w", err)
	}

	return OutputTable(table, "No datasets found", exportPath)
}

func newDatasetsListCommand() *cobra.Command {
	var (
		forceRefresh bool
		exportPath   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dataset names",
		Long:  "List the names of every dataset in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsListCommand(forceRefresh, exportPath)
		},
	}

	cmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&exportPath, "export", "", "export results to a file (.csv, .json, .yaml, .parquet)")

	return cmd
}

func runDatasetsListCommand(forceRefresh bool, exportPath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	table, err := client.Packages().List(context.Background(), &ckan.FetchOptions{ForceRefresh: forceRefresh})
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	return OutputTable(table, "No datasets found", exportPath)
}

func newDatasetsShowCommand() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "show DATASET_NAME_OR_ID",
		Short: "Show dataset details",
		Long:  "Display the normalized record of a single dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsShowCommand(args[0], exportPath)
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "export the record to a file (.csv, .json, .yaml, .parquet)")

	return cmd
}

func runDatasetsShowCommand(id, exportPath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	table, err := client.Packages().Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch dataset: %w", err)
	}

	return OutputTable(table, fmt.Sprintf("Dataset '%s' not found", id), exportPath)
}

func newDatasetsMetaCommand() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "meta DATASET_NAME_OR_ID",
		Short: "Show raw dataset metadata",
		Long:  "Display every metadata field of a dataset as a field/value listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsMetaCommand(args[0], exportPath)
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "export the metadata to a file (.csv, .json, .yaml, .parquet)")

	return cmd
}

func runDatasetsMetaCommand(id, exportPath string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	table, err := client.Packages().Metadata(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch dataset metadata: %w", err)
	}

	return OutputTable(table, fmt.Sprintf("Dataset '%s' not found", id), exportPath)
}
