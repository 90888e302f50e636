package ckan

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is one normalized record: a flat mapping from column name to scalar
// value. Absent upstream fields hold the column's zero value ("" or 0),
// never a missing marker.
type Row map[string]any

// Table is an ordered sequence of normalized records with a fixed column
// set. Row order is page arrival order, then within-page record order.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given column set.
func NewTable(columns []Column) *Table {
	return &Table{
		Columns: columns,
		Rows:    make([]Row, 0),
	}
}

// Append adds a record to the end of the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no records.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}

	return names
}

// StringRows renders every cell as a string in column order, for CSV and
// terminal output.
func (t *Table) StringRows() [][]string {
	rows := make([][]string, len(t.Rows))

	for i, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = formatCell(row[col.Name])
		}

		rows[i] = cells
	}

	return rows
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// DecodeTable rebuilds a table from its JSON encoding, restoring int-typed
// cells that json.Unmarshal decodes as float64. Used by the cache layer.
func DecodeTable(data []byte) (*Table, error) {
	var table Table

	err := json.Unmarshal(data, &table)
	if err != nil {
		return nil, fmt.Errorf("decoding table: %w", err)
	}

	for _, col := range table.Columns {
		if col.Kind != ColumnInt {
			continue
		}

		for _, row := range table.Rows {
			if f, ok := row[col.Name].(float64); ok {
				row[col.Name] = int(f)
			}
		}
	}

	return &table, nil
}
