// Package export writes result tables to files, picking the format from the
// destination's extension.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/opendata-io/ckan-client/internal/constants"
	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// Write exports a table to the given path. The format is chosen by file
// extension: .csv, .json, .yaml/.yml, or .parquet.
func Write(table *ckan.Table, path string) error {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case constants.FormatCSV:
		return writeCSV(table, path)
	case constants.FormatJSON:
		return writeJSON(table, path)
	case constants.FormatYAML, "yml":
		return writeYAML(table, path)
	case constants.FormatParquet:
		return writeParquet(table, path)
	default:
		return fmt.Errorf("%w: %s", ckan.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func writeCSV(table *ckan.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	err = writer.Write(table.ColumnNames())
	if err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range table.StringRows() {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	return nil
}

func writeJSON(table *ckan.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	err = encoder.Encode(table.Rows)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

func writeYAML(table *ckan.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	defer func() { _ = encoder.Close() }()

	err = encoder.Encode(table.Rows)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return nil
}

// writeParquet builds the file schema from the table's column set at runtime,
// since the column set depends on the record kind.
func writeParquet(table *ckan.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	schema := parquet.NewSchema("records", parquetGroup(table.Columns))

	writer := parquet.NewGenericWriter[map[string]any](file, schema)

	rows := make([]map[string]any, 0, table.Len())
	for _, row := range table.Rows {
		rows = append(rows, parquetRow(table.Columns, row))
	}

	if len(rows) > 0 {
		_, err = writer.Write(rows)
		if err != nil {
			return fmt.Errorf("writing parquet rows: %w", err)
		}
	}

	err = writer.Close()
	if err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}

	return nil
}

func parquetGroup(columns []ckan.Column) parquet.Group {
	group := parquet.Group{}

	for _, col := range columns {
		switch col.Kind {
		case ckan.ColumnInt:
			group[col.Name] = parquet.Int(64)
		case ckan.ColumnString:
			group[col.Name] = parquet.String()
		}
	}

	return group
}

// parquetRow coerces a table row into the schema's value types: strings stay
// strings, counts become int64.
func parquetRow(columns []ckan.Column, row ckan.Row) map[string]any {
	out := make(map[string]any, len(columns))

	for _, col := range columns {
		switch col.Kind {
		case ckan.ColumnInt:
			out[col.Name] = int64Cell(row[col.Name])
		case ckan.ColumnString:
			out[col.Name] = stringCell(row[col.Name])
		}
	}

	return out
}

func int64Cell(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func stringCell(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	return ""
}
