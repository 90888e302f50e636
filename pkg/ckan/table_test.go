package ckan_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

func TestTable_StringRows(t *testing.T) {
	t.Parallel()

	table := ckan.NewTable([]ckan.Column{
		{Name: "name"},
		{Name: "count", Kind: ckan.ColumnInt},
		{Name: "missing"},
	})

	table.Append(ckan.Row{"name": "noaa-gov", "count": 31876})
	table.Append(ckan.Row{"name": "epa-gov", "count": float64(12)})

	rows := table.StringRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"noaa-gov", "31876", ""}, rows[0])
	assert.Equal(t, []string{"epa-gov", "12", ""}, rows[1])
}

func TestDecodeTable(t *testing.T) {
	t.Parallel()
	t.Run("roundtrip restores int cells", func(t *testing.T) {
		t.Parallel()

		original := ckan.NewTable([]ckan.Column{
			{Name: "name"},
			{Name: "package_count", Kind: ckan.ColumnInt},
		})
		original.Append(ckan.Row{"name": "noaa-gov", "package_count": 31876})

		data, err := json.Marshal(original)
		require.NoError(t, err)

		decoded, err := ckan.DecodeTable(data)
		require.NoError(t, err)
		require.Equal(t, 1, decoded.Len())
		assert.Equal(t, "noaa-gov", decoded.Rows[0]["name"])
		assert.Equal(t, 31876, decoded.Rows[0]["package_count"])
	})

	t.Run("malformed data fails", func(t *testing.T) {
		t.Parallel()

		_, err := ckan.DecodeTable([]byte(`{broken`))
		require.Error(t, err)
	})
}

func TestColumnsFor(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, ckan.ColumnsFor(ckan.KindPackage))
	assert.NotEmpty(t, ckan.ColumnsFor(ckan.KindOrganization))
	assert.NotEmpty(t, ckan.ColumnsFor(ckan.KindGroup))
	assert.NotEmpty(t, ckan.ColumnsFor(ckan.KindTag))
	assert.Equal(t, []ckan.Column{{Name: "name"}}, ckan.ColumnsFor(ckan.KindName))
	assert.Nil(t, ckan.ColumnsFor(ckan.RecordKind("bogus")))
}
