package ckan

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// NormalizeRecords flattens a batch of raw catalog records into a table with
// the fixed column set of the record kind. It never fails: records that do
// not decode contribute a default-filled row, and absent fields become ""
// or 0 depending on the column kind. This is the one place schema drift from
// the upstream API is absorbed.
func NormalizeRecords(kind RecordKind, records []json.RawMessage) *Table {
	switch kind {
	case KindTag:
		return normalizeTags(records)
	case KindName:
		return normalizeNames(records)
	case KindPackage, KindOrganization, KindGroup:
		table := NewTable(ColumnsFor(kind))
		for _, raw := range records {
			table.Append(normalizeObject(kind, raw))
		}

		return table
	default:
		return NewTable(nil)
	}
}

// NormalizePackage flattens a single raw package record, as returned by
// package_show, into a normalized row.
func NormalizePackage(raw json.RawMessage) Row {
	return normalizeObject(KindPackage, raw)
}

func normalizeObject(kind RecordKind, raw json.RawMessage) Row {
	var fields map[string]any

	_ = json.Unmarshal(raw, &fields)

	row := Row{}

	for _, col := range ColumnsFor(kind) {
		switch col.Kind {
		case ColumnInt:
			row[col.Name] = intField(fields, col.Name)
		case ColumnString:
			row[col.Name] = stringField(fields, col.Name)
		}
	}

	if kind == KindPackage {
		row["organization"] = organizationTitle(fields)
	}

	return row
}

// normalizeTags handles tag_list's two representations. The shape is
// detected from the first element of the batch: a JSON string means the
// whole batch is bare names, an object means full tag records.
func normalizeTags(records []json.RawMessage) *Table {
	if len(records) == 0 {
		return NewTable(nameColumns)
	}

	first := bytes.TrimSpace(records[0])
	if len(first) > 0 && first[0] == '"' {
		return normalizeNames(records)
	}

	table := NewTable(tagObjectColumns)
	for _, raw := range records {
		table.Append(normalizeObject(KindTag, raw))
	}

	return table
}

func normalizeNames(records []json.RawMessage) *Table {
	table := NewTable(nameColumns)

	for _, raw := range records {
		var name string

		_ = json.Unmarshal(raw, &name)
		table.Append(Row{"name": name})
	}

	return table
}

// organizationTitle flattens the nested organization object of a package
// record: title, falling back to name, falling back to empty.
func organizationTitle(fields map[string]any) string {
	org, ok := fields["organization"].(map[string]any)
	if !ok {
		return ""
	}

	if title := stringField(org, "title"); title != "" {
		return title
	}

	return stringField(org, "name")
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}

	return ""
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)

		return n
	default:
		return 0
	}
}
