package ckan

import (
	"bytes"
	"encoding/json"
)

// Envelope is the outer success/result wrapper of every CKAN action
// response.
type Envelope struct {
	Help    string          `json:"help,omitempty"`
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
}

// Page is one request's worth of records extracted from an envelope. The
// upstream API is inconsistent about wrapping: result is either
// {"count": N, "results": [...]} or a bare list, depending on endpoint.
type Page struct {
	Count    int
	HasCount bool
	Records  []json.RawMessage
}

// Page extracts the records of the envelope's result, accepting both the
// wrapped and the bare-list shape. It never fails; a result that matches
// neither shape yields an empty page.
func (e *Envelope) Page() *Page {
	page := &Page{}

	result := bytes.TrimSpace(e.Result)
	if len(result) == 0 {
		return page
	}

	if result[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(result, &records); err == nil {
			page.Records = records
		}

		return page
	}

	var wrapped struct {
		Count   *int              `json:"count"`
		Results []json.RawMessage `json:"results"`
	}

	if err := json.Unmarshal(result, &wrapped); err != nil {
		return page
	}

	if wrapped.Count != nil {
		page.Count = *wrapped.Count
		page.HasCount = true
	}

	page.Records = wrapped.Results

	return page
}

// RecordKind identifies the upstream record type and determines the column
// set of a normalized table.
type RecordKind string

const (
	// KindPackage is a dataset record from package_search or package_show.
	KindPackage RecordKind = "package"

	// KindOrganization is an organization_list record (all_fields=true).
	KindOrganization RecordKind = "organization"

	// KindGroup is a group_list record (all_fields=true).
	KindGroup RecordKind = "group"

	// KindTag is a tag_list record; the upstream representation may be a
	// bare string or an object.
	KindTag RecordKind = "tag"

	// KindName is a bare-string listing such as package_list.
	KindName RecordKind = "name"
)

// ColumnKind is the scalar type of a table column.
type ColumnKind int

const (
	// ColumnString holds text; absent upstream values become "".
	ColumnString ColumnKind = iota

	// ColumnInt holds counts; absent upstream values become 0.
	ColumnInt
)

// Column describes one column of a result table.
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

var packageColumns = []Column{
	{Name: "name"},
	{Name: "title"},
	{Name: "id"},
	{Name: "notes"},
	{Name: "author"},
	{Name: "maintainer"},
	{Name: "license_title"},
	{Name: "metadata_created"},
	{Name: "metadata_modified"},
	{Name: "num_resources", Kind: ColumnInt},
	{Name: "num_tags", Kind: ColumnInt},
	{Name: "organization"},
	{Name: "owner_org"},
	{Name: "state"},
	{Name: "type"},
}

var organizationColumns = []Column{
	{Name: "name"},
	{Name: "title"},
	{Name: "id"},
	{Name: "description"},
	{Name: "package_count", Kind: ColumnInt},
	{Name: "created"},
	{Name: "state"},
	{Name: "type"},
	{Name: "approval_status"},
}

var groupColumns = []Column{
	{Name: "name"},
	{Name: "title"},
	{Name: "id"},
	{Name: "description"},
	{Name: "package_count", Kind: ColumnInt},
	{Name: "created"},
	{Name: "state"},
	{Name: "type"},
}

var tagObjectColumns = []Column{
	{Name: "name"},
	{Name: "id"},
	{Name: "vocabulary_id"},
	{Name: "display_name"},
}

var nameColumns = []Column{
	{Name: "name"},
}

// ColumnsFor returns the fixed column set of a record kind. Tag tables are
// representation-dependent; this returns the object form.
func ColumnsFor(kind RecordKind) []Column {
	switch kind {
	case KindPackage:
		return packageColumns
	case KindOrganization:
		return organizationColumns
	case KindGroup:
		return groupColumns
	case KindTag:
		return tagObjectColumns
	case KindName:
		return nameColumns
	default:
		return nil
	}
}
