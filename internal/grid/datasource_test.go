package grid

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func people() []Row {
	return []Row{
		{"name": "Ann", "age": 30},
		{"name": "Bob", "age": 25},
		{"name": "Cid", "age": 25},
	}
}

func names(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Text("name"))
	}
	return out
}

func all(ds *DataSource) []Row {
	return ds.WindowSlice(VisibleRange{Start: 0, End: ds.Len()})
}

func TestDataSource_ApplySort(t *testing.T) {
	ds := NewDataSource(context.Background())
	ds.Load(people())

	t.Run("StableAscending", func(t *testing.T) {
		require.True(t, ds.ApplySort("age", SortAsc))
		assert.Equal(t, []string{"Bob", "Cid", "Ann"}, names(all(ds)))
		field, dir := ds.Sort()
		assert.Equal(t, "age", field)
		assert.Equal(t, SortAsc, dir)
	})

	t.Run("StableDescending", func(t *testing.T) {
		require.True(t, ds.ApplySort("age", SortDesc))
		assert.Equal(t, []string{"Ann", "Bob", "Cid"}, names(all(ds)))
	})

	t.Run("NoneRestoresLoadOrder", func(t *testing.T) {
		require.True(t, ds.ApplySort("age", SortNone))
		assert.Equal(t, []string{"Ann", "Bob", "Cid"}, names(all(ds)))
		field, dir := ds.Sort()
		assert.Empty(t, field)
		assert.Equal(t, SortNone, dir)
	})

	t.Run("UnknownFieldIsNoop", func(t *testing.T) {
		require.True(t, ds.ApplySort("name", SortDesc))
		assert.False(t, ds.ApplySort("missing", SortAsc))
		assert.Equal(t, []string{"Cid", "Bob", "Ann"}, names(all(ds)))
		field, _ := ds.Sort()
		assert.Equal(t, "name", field)
	})

	t.Run("MarksColumn", func(t *testing.T) {
		require.True(t, ds.ApplySort("age", SortAsc))
		for _, c := range ds.Columns() {
			if c.Field == "age" {
				assert.Equal(t, SortAsc, c.Sort)
			} else {
				assert.Equal(t, SortNone, c.Sort)
			}
		}
	})
}

func TestDataSource_SortStabilityLarge(t *testing.T) {
	rows := make([]Row, 500)
	for i := range rows {
		rows[i] = Row{"seq": i, "bucket": i % 7}
	}
	ds := NewDataSource(context.Background())
	ds.Load(rows)
	require.True(t, ds.ApplySort("bucket", SortAsc))

	got := all(ds)
	for i := 1; i < len(got); i++ {
		pb, cb := got[i-1]["bucket"].(int), got[i]["bucket"].(int)
		require.LessOrEqual(t, pb, cb)
		if pb == cb {
			assert.Less(t, got[i-1]["seq"].(int), got[i]["seq"].(int), "ties keep load order")
		}
	}
}

func TestDataSource_Load(t *testing.T) {
	t.Run("NilIsIgnored", func(t *testing.T) {
		ds := NewDataSource(context.Background())
		ds.Load(people())
		ds.Load(nil)
		assert.Equal(t, 3, ds.Len())
	})

	t.Run("EmptyGivesEmptyWindow", func(t *testing.T) {
		ds := NewDataSource(context.Background())
		ds.Load([]Row{})
		assert.Equal(t, 0, ds.Len())
		assert.Empty(t, ds.WindowSlice(VisibleRange{Start: 0, End: 10}))
		assert.Empty(t, ds.Columns(), "inference waits for rows")

		ds.Load(people())
		assert.Len(t, ds.Columns(), 2)
	})

	t.Run("InfersColumnsFromFirstRow", func(t *testing.T) {
		ds := NewDataSource(context.Background())
		ds.Load(people())
		assert.Equal(t, []ColumnDef{{Field: "age", Title: "age"}, {Field: "name", Title: "name"}}, ds.Columns())
	})

	t.Run("DiscardsSortAndFilter", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithFilterable(true))
		ds.Load(people())
		ds.ApplySort("name", SortDesc)
		ds.ApplyFilter("b")

		ds.Load(people())
		assert.Equal(t, []string{"Ann", "Bob", "Cid"}, names(all(ds)))
		assert.Empty(t, ds.Query())
		field, _ := ds.Sort()
		assert.Empty(t, field)
	})
}

func TestDataSource_ApplyFilter(t *testing.T) {
	t.Run("PreservesSort", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithFilterable(true))
		ds.Load([]Row{
			{"name": "Alice", "team": "red"},
			{"name": "Bert", "team": "blue"},
			{"name": "Alma", "team": "blue"},
			{"name": "Abe", "team": "red"},
		})
		require.True(t, ds.ApplySort("name", SortDesc))
		require.True(t, ds.ApplyFilter("a"))
		assert.Equal(t, []string{"Alma", "Alice", "Abe"}, names(all(ds)))

		require.True(t, ds.ApplySort("name", SortAsc))
		assert.Equal(t, []string{"Abe", "Alice", "Alma"}, names(all(ds)), "sort keeps the filter")
	})

	t.Run("RepeatedQueryIsNoop", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithFilterable(true))
		ds.Load(people())
		assert.True(t, ds.ApplyFilter("ann"))
		assert.False(t, ds.ApplyFilter("ann"))
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("DisabledIsNoop", func(t *testing.T) {
		ds := NewDataSource(context.Background())
		ds.Load(people())
		assert.False(t, ds.FilterEnabled())
		assert.False(t, ds.ApplyFilter("ann"))
		assert.Equal(t, 3, ds.Len())
	})

	t.Run("PerColumnEnablesAndRestricts", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithColumns([]ColumnDef{
			{Field: "name", Filterable: true},
			{Field: "city"},
		}))
		ds.Load([]Row{{"name": "Ann", "city": "Paris"}, {"name": "Paris", "city": "Rome"}})
		require.True(t, ds.FilterEnabled())
		require.True(t, ds.ApplyFilter("paris"))
		assert.Equal(t, []string{"Paris"}, names(all(ds)))
	})

	t.Run("EmptyQueryRestores", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithFilterable(true))
		ds.Load(people())
		ds.ApplyFilter("bob")
		require.True(t, ds.ApplyFilter(""))
		assert.Equal(t, 3, ds.Len())
		assert.Equal(t, 3, ds.TotalLen())
	})
}

func TestDataSource_WindowSlice(t *testing.T) {
	rows := make([]Row, 100)
	for i := range rows {
		rows[i] = Row{"name": fmt.Sprintf("r%03d", i)}
	}
	ds := NewDataSource(context.Background())
	ds.Load(rows)

	tests := []struct {
		name  string
		rng   VisibleRange
		first string
		n     int
	}{
		{"Middle", VisibleRange{Start: 10, End: 20}, "r010", 10},
		{"PastEnd", VisibleRange{Start: 95, End: 130}, "r095", 5},
		{"Negative", VisibleRange{Start: -5, End: 3}, "r000", 3},
		{"Inverted", VisibleRange{Start: 50, End: 40}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.WindowSlice(tt.rng)
			require.Len(t, got, tt.n)
			if tt.n > 0 {
				assert.Equal(t, tt.first, got[0].Text("name"))
			}
		})
	}

	row, ok := ds.Row(42)
	require.True(t, ok)
	assert.Equal(t, "r042", row.Text("name"))
	_, ok = ds.Row(100)
	assert.False(t, ok)
}

func TestDataSource_Columns(t *testing.T) {
	t.Run("DropsInvalid", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithColumns([]ColumnDef{
			{Field: "a"}, {Field: ""}, {Field: "a", Title: "dup"}, {Field: "b"},
		}))
		assert.Equal(t, []ColumnDef{{Field: "a"}, {Field: "b"}}, ds.Columns())
	})

	t.Run("ReconfigureRebuilds", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithFilterable(true))
		ds.Load(people())
		ds.ApplyFilter("ann")
		ds.Reconfigure([]ColumnDef{{Field: "name", Title: "Name"}})
		assert.Equal(t, 3, ds.Len())
		assert.Equal(t, "Name", ds.Columns()[0].Header())
	})

	t.Run("SetColumnsKeepsState", func(t *testing.T) {
		ds := NewDataSource(context.Background(), WithFilterable(true))
		ds.Load(people())
		ds.ApplyFilter("ann")
		cols := append([]ColumnDef(nil), ds.Columns()...)
		cols[0].Width = "80px"
		require.True(t, ds.SetColumns(cols))
		assert.Equal(t, "80px", ds.Columns()[0].Width)
		assert.Equal(t, 1, ds.Len())
		assert.False(t, ds.SetColumns(cols[:1]))
	})
}
