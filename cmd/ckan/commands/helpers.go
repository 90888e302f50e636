package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/opendata-io/ckan-client/internal/config"
	"github.com/opendata-io/ckan-client/internal/export"
	"github.com/opendata-io/ckan-client/pkg/ckan"
	"github.com/opendata-io/ckan-client/pkg/ckanclient"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// maxCellWidth bounds free-text cells in table output; notes fields can run
// to whole paragraphs.
const maxCellWidth = 60

// CreateClient builds a catalog client from config file, environment, and
// flags. The endpoint flag wins over the config file.
func CreateClient() (ckan.Client, error) {
	cfg := LoadConfig()

	client, err := ckanclient.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// LoadConfig resolves the effective client configuration without building a
// client.
func LoadConfig() *ckan.Config {
	logger := NewLogger()

	cfg := config.Load(viper.GetString("config"), logger)

	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		cfg.BaseURL = endpoint
	}

	if viper.GetBool("no-color") {
		cfg.Color = false
	}

	cfg.Logger = logger
	cfg.Debug = viper.GetBool("verbose")

	return cfg
}

// NewLogger builds the structured logger backing the client's transport
// logging. Verbose mode lowers the level to debug.
func NewLogger() ckan.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	return &logrusLogger{log: log}
}

type logrusLogger struct {
	log *logrus.Logger
}

func (l *logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}

// OutputTable renders a result table in the selected output format, and
// optionally exports it to a file.
func OutputTable(table *ckan.Table, emptyMessage, exportPath string) error {
	if exportPath != "" {
		err := export.Write(table, exportPath)
		if err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", table.Len(), exportPath)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(table.Rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(table.Rows)
	default:
		return renderResultTable(table, emptyMessage)
	}
}

// StandardJSONRenderer writes indented JSON to stdout.
func StandardJSONRenderer(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes YAML to stdout.
func StandardYAMLRenderer(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() { _ = encoder.Close() }()

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

func renderResultTable(table *ckan.Table, emptyMessage string) error {
	if table.Empty() {
		_, _ = os.Stdout.WriteString(emptyMessage + "\n")

		return nil
	}

	writer := tablewriter.NewWriter(os.Stdout)
	writer.Header(toAnySlice(table.ColumnNames())...)

	for _, row := range table.StringRows() {
		_ = writer.Append(toAnySlice(truncateCells(row))...)
	}

	err := writer.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	printSummary(table.Len())

	return nil
}

func printSummary(count int) {
	summary := fmt.Sprintf("%d record(s)", count)

	if colorEnabled() {
		summary = color.New(color.FgGreen).Sprint(summary)
	}

	_, _ = fmt.Fprintln(os.Stdout, summary)
}

func colorEnabled() bool {
	if viper.GetBool("no-color") {
		return false
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}

func truncateCells(row []string) []string {
	out := make([]string, len(row))

	for i, cell := range row {
		if len(cell) > maxCellWidth {
			cell = cell[:maxCellWidth-3] + "..."
		}

		out[i] = cell
	}

	return out
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

// progressReporter prints pagination progress to stderr in verbose mode.
func progressReporter() ckan.ProgressFunc {
	if !viper.GetBool("verbose") {
		return nil
	}

	return func(fetched, total int) {
		if total >= 0 {
			fmt.Fprintf(os.Stderr, "fetched %d of %d records\n", fetched, total)
		} else {
			fmt.Fprintf(os.Stderr, "fetched %d records\n", fetched)
		}
	}
}
