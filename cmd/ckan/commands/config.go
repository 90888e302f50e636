package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opendata-io/ckan-client/internal/config"
	"github.com/opendata-io/ckan-client/internal/constants"
)

var errConfigFileExists = errors.New("config file already exists")

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Inspect the effective CLI configuration or write a starter config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Display the configuration after merging defaults, config file, environment, and flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShowCommand()
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long:  "Write a commented starter config file to $HOME/.ckan/" + config.FileName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInitCommand(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runConfigInitCommand(force bool) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}

	dir := filepath.Join(home, ".ckan")
	path := filepath.Join(dir, config.FileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigFileExists, path)
		}
	}

	err = os.MkdirAll(dir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	err = os.WriteFile(path, []byte(starterConfig()), constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)

	return nil
}

func starterConfig() string {
	return fmt.Sprintf(`connection:
  base_url: %s
  timeout_seconds: %d
  max_retries: %d
  rate_limit_ms: %d

defaults:
  page_size: %d
  export_format: %s

presentation:
  color: true
`,
		constants.DefaultEndpoint,
		int(constants.DefaultHTTPTimeout/time.Second),
		constants.DefaultRetryMax,
		int(constants.DefaultRateLimit/time.Millisecond),
		constants.DefaultPageSize,
		constants.FormatCSV,
	)
}

func runConfigShowCommand() error {
	cfg := LoadConfig()

	type configView struct {
		Endpoint     string `json:"endpoint"       yaml:"endpoint"`
		Timeout      string `json:"timeout"        yaml:"timeout"`
		RateLimit    string `json:"rate_limit"     yaml:"rate_limit"`
		MaxRetries   int    `json:"max_retries"    yaml:"max_retries"`
		PageSize     int    `json:"page_size"      yaml:"page_size"`
		ExportFormat string `json:"export_format"  yaml:"export_format"`
		Color        bool   `json:"color"          yaml:"color"`
	}

	view := configView{
		Endpoint:     cfg.BaseURL,
		Timeout:      cfg.Timeout.Round(time.Millisecond).String(),
		RateLimit:    cfg.RateLimit.Round(time.Millisecond).String(),
		MaxRetries:   cfg.MaxRetries,
		PageSize:     cfg.PageSize,
		ExportFormat: cfg.ExportFormat,
		Color:        cfg.Color,
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(view)
	case OutputFormatYAML:
		return StandardYAMLRenderer(view)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Setting", "Value")
		_ = table.Append("Endpoint", view.Endpoint)
		_ = table.Append("Timeout", view.Timeout)
		_ = table.Append("Rate limit", view.RateLimit)
		_ = table.Append("Max retries", fmt.Sprintf("%d", view.MaxRetries))
		_ = table.Append("Page size", fmt.Sprintf("%d", view.PageSize))
		_ = table.Append("Export format", view.ExportFormat)
		_ = table.Append("Color", fmt.Sprintf("%t", view.Color))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}
