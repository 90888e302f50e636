package export_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/opendata-io/ckan-client/internal/export"
	"github.com/opendata-io/ckan-client/pkg/ckan"
)

func sampleTable() *ckan.Table {
	table := ckan.NewTable([]ckan.Column{
		{Name: "name"},
		{Name: "title"},
		{Name: "num_resources", Kind: ckan.ColumnInt},
	})

	table.Append(ckan.Row{"name": "sea-levels", "title": "Sea Levels", "num_resources": 4})
	table.Append(ckan.Row{"name": "air-quality", "title": "Air Quality", "num_resources": 0})

	return table
}

func TestWrite_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, export.Write(sampleTable(), path))

	file, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "title", "num_resources"}, records[0])
	assert.Equal(t, []string{"sea-levels", "Sea Levels", "4"}, records[1])
	assert.Equal(t, []string{"air-quality", "Air Quality", "0"}, records[2])
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, export.Write(sampleTable(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]any

	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "sea-levels", rows[0]["name"])
	assert.InDelta(t, 4, rows[0]["num_resources"], 0)
}

func TestWrite_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, export.Write(sampleTable(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]any

	require.NoError(t, yaml.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "air-quality", rows[1]["name"])
}

func TestWrite_Parquet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.parquet")
	require.NoError(t, export.Write(sampleTable(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWrite_EmptyTable(t *testing.T) {
	t.Parallel()

	empty := ckan.NewTable(ckan.ColumnsFor(ckan.KindPackage))

	for _, name := range []string{"out.csv", "out.json", "out.yaml", "out.parquet"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, export.Write(empty, path), name)
	}
}

func TestWrite_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	err := export.Write(sampleTable(), filepath.Join(t.TempDir(), "out.xlsx"))
	require.ErrorIs(t, err, ckan.ErrUnsupportedFormat)
}
