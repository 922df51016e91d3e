package ingest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vgrid/internal/grid"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParse_JSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fields []string
		rows   int
	}{
		{"Array", `[{"b": 1, "a": "x"}, {"a": "y", "c": true}]`, []string{"b", "a", "c"}, 2},
		{"SingleObject", `{"z": 1, "y": 2}`, []string{"z", "y"}, 1},
		{"Stream", "{\"k\": 1}\n{\"k\": 2}\n\n{\"j\": 3}\n", []string{"k", "j"}, 3},
		{"EmptyArray", `[]`, []string{}, 0},
		{"Empty", ``, []string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.input), FormatJSON, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.fields, ds.Fields)
			assert.Len(t, ds.Rows, tt.rows)
		})
	}

	t.Run("NumbersAndNesting", func(t *testing.T) {
		ds, err := Parse([]byte(`[{"n": 12.50, "tags": ["a", "b"], "obj": {"x": 1}}]`), FormatJSON, Options{})
		require.NoError(t, err)
		row := ds.Rows[0]
		assert.Equal(t, json.Number("12.50"), row["n"])
		assert.Equal(t, `["a","b"]`, row["tags"])
		assert.Equal(t, `{"x":1}`, row["obj"])
	})

	t.Run("NotTabular", func(t *testing.T) {
		_, err := Parse([]byte(`[1, 2]`), FormatJSON, Options{})
		require.ErrorIs(t, err, ErrNotTabular)
		_, err = Parse([]byte(`"text"`), FormatJSON, Options{})
		require.ErrorIs(t, err, ErrNotTabular)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Parse([]byte(`[{"a": }]`), FormatJSON, Options{})
		require.Error(t, err)
	})
}

func TestParse_YAML(t *testing.T) {
	input := `
- name: Ann
  age: 30
- name: Bob
  city: Oslo
  meta: {team: red}
---
name: Cid
`
	ds, err := Parse([]byte(input), FormatYAML, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "city", "meta"}, ds.Fields)
	require.Len(t, ds.Rows, 3)
	assert.Equal(t, 30, ds.Rows[0]["age"])
	assert.Equal(t, `{"team":"red"}`, ds.Rows[1]["meta"])
	assert.Equal(t, "Cid", ds.Rows[2]["name"])

	_, err = Parse([]byte("- 1\n- 2\n"), FormatYAML, Options{})
	require.ErrorIs(t, err, ErrNotTabular)
}

func TestParse_Delimited(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		sep    rune
		fields []string
		first  grid.Row
	}{
		{
			name:   "Comma",
			input:  "name,city\nAnn,\"New York, NY\"\nBob,Oslo\n",
			format: FormatCSV,
			fields: []string{"name", "city"},
			first:  grid.Row{"name": "Ann", "city": "New York, NY"},
		},
		{
			name:   "SemicolonDetected",
			input:  "name;price\r\nTea;1,50\r\n",
			format: FormatCSV,
			fields: []string{"name", "price"},
			first:  grid.Row{"name": "Tea", "price": "1,50"},
		},
		{
			name:   "SepHeader",
			input:  "sep=|\na|b\n1|2\n",
			format: FormatCSV,
			fields: []string{"a", "b"},
			first:  grid.Row{"a": "1", "b": "2"},
		},
		{
			name:   "TSV",
			input:  "a\tb\n1\t2\n",
			format: FormatTSV,
			fields: []string{"a", "b"},
			first:  grid.Row{"a": "1", "b": "2"},
		},
		{
			name:   "ForcedSeparator",
			input:  "a:b,c\n1:2,3\n",
			format: FormatCSV,
			sep:    ':',
			fields: []string{"a", "b,c"},
			first:  grid.Row{"a": "1", "b,c": "2,3"},
		},
		{
			name:   "ShortRecordAndHeaderNames",
			input:  "x,,x\n1\n",
			format: FormatCSV,
			fields: []string{"x", "column_2", "x_2"},
			first:  grid.Row{"x": "1"},
		},
		{
			name:   "BOM",
			input:  "\ufeffid,v\n7,w\n",
			format: FormatCSV,
			fields: []string{"id", "v"},
			first:  grid.Row{"id": "7", "v": "w"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.input), tt.format, Options{Separator: tt.sep})
			require.NoError(t, err)
			assert.Equal(t, tt.fields, ds.Fields)
			require.NotEmpty(t, ds.Rows)
			assert.Equal(t, tt.first, ds.Rows[0])
		})
	}

	t.Run("HeaderOnly", func(t *testing.T) {
		ds, err := Parse([]byte("a,b\n"), FormatCSV, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ds.Fields)
		assert.Empty(t, ds.Rows)
	})
}

func TestParse_Sniff(t *testing.T) {
	ds, err := Parse([]byte("  \n[{\"a\":1}]"), FormatAuto, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ds.Fields)

	ds, err = Parse([]byte("a,b\n1,2\n"), FormatAuto, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Fields)
}

func TestDetectAndParseFormat(t *testing.T) {
	for path, want := range map[string]Format{
		"x.json": FormatJSON, "x.JSONL": FormatNDJSON, "x.ndjson": FormatNDJSON,
		"x.yml": FormatYAML, "x.csv": FormatCSV, "x.tsv": FormatTSV,
	} {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := DetectFormat("x.parquet")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "name,age\nAnn,30\n")
	b := writeFile(t, dir, "b.json", `[{"name":"Bob","city":"Oslo","_id":"b1"}]`)
	c := writeFile(t, dir, "c.yaml", "- name: Cid\n")

	t.Run("MergesInOrder", func(t *testing.T) {
		ds, err := LoadFiles(context.Background(), []string{a, b, c}, Options{IDField: grid.DefaultIDField})
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "age", "city", "_id"}, ds.Fields)
		require.Len(t, ds.Rows, 3)
		assert.Equal(t, "Ann", ds.Rows[0]["name"])
		assert.Equal(t, "Bob", ds.Rows[1]["name"])
		assert.Equal(t, "Cid", ds.Rows[2]["name"])

		assert.Equal(t, "b1", ds.Rows[1].ID(""))
		id, ok := ds.Rows[0].ID("").(string)
		require.True(t, ok)
		assert.Len(t, id, 26)
		assert.NotEqual(t, id, ds.Rows[2].ID(""))
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadFiles(context.Background(), []string{a, filepath.Join(dir, "nope.csv")}, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.csv")
	})

	t.Run("NoInput", func(t *testing.T) {
		_, err := LoadFiles(context.Background(), nil, Options{})
		require.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("Stdin", func(t *testing.T) {
		ds, err := LoadFiles(context.Background(), []string{StdinPath}, Options{
			Format: FormatNDJSON,
			Stdin:  strings.NewReader("{\"q\":1}\n{\"q\":2}\n"),
		})
		require.NoError(t, err)
		assert.Len(t, ds.Rows, 2)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := LoadFiles(ctx, []string{a}, Options{})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestAssignIDs(t *testing.T) {
	rows := []grid.Row{{"id": "keep"}, {"id": ""}, {}, nil}
	assert.Equal(t, 2, AssignIDs(rows, "id"))
	assert.Equal(t, "keep", rows[0]["id"])
	assert.NotEmpty(t, rows[1]["id"])
	assert.NotEmpty(t, rows[2]["id"])
}

func TestLoadFiles_GeneratedIdentityNotSearchable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cities.csv", "city\nParis\nBerlin\nRome\n")

	ds, err := LoadFiles(context.Background(), []string{path}, Options{IDField: "_id"})
	require.NoError(t, err)
	require.Len(t, ds.Rows, 3)
	for _, row := range ds.Rows {
		require.NotEmpty(t, row["_id"], "every row gets an identity")
	}

	src := grid.NewDataSource(context.Background(),
		grid.WithColumns(ds.Columns()),
		grid.WithFilterable(true),
		grid.WithIDField("_id"),
	)
	src.Load(ds.Rows)

	for _, query := range []string{"01", "0"} {
		require.True(t, src.ApplyFilter(query))
		assert.Equal(t, 0, src.Len(), "query %q", query)
	}
	require.True(t, src.ApplyFilter("ber"))
	assert.Equal(t, 1, src.Len())
}
