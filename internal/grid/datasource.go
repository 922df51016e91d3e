package grid

import (
	"context"
	"sort"

	"github.com/rshade/vgrid/internal/logging"
)

// DataSource is the single source of truth for what the visible window contains.
//
// It keeps the loaded rows untouched and works on position lists: order holds every
// load position in the active sort order, active holds the positions that pass the
// active filter, in that same order. Windowed reads index active directly.
type DataSource struct {
	ctx        context.Context
	rows       []Row
	columns    []ColumnDef
	filterable bool
	idField    string
	index      *FilterIndex

	order  []int
	active []int

	sortField string
	sortDir   SortDirection
	query     string
	pending   bool
}

// DataSourceOption configures a DataSource.
type DataSourceOption func(*DataSource)

// WithColumns sets the initial column schema.
func WithColumns(cols []ColumnDef) DataSourceOption {
	return func(d *DataSource) {
		d.columns = cols
	}
}

// WithFilterable enables filtering for every column when no column opts in individually.
func WithFilterable(enabled bool) DataSourceOption {
	return func(d *DataSource) {
		d.filterable = enabled
	}
}

// WithIDField names the row identity field. It is bookkeeping only and never
// contributes to the search text of a global filter.
func WithIDField(field string) DataSourceOption {
	return func(d *DataSource) {
		d.idField = field
	}
}

// NewDataSource creates an empty data source. ctx carries the logger used for
// index builds and is checked for cancellation while indexing.
func NewDataSource(ctx context.Context, opts ...DataSourceOption) *DataSource {
	if ctx == nil {
		ctx = context.Background()
	}
	d := &DataSource{ctx: ctx}
	for _, opt := range opts {
		opt(d)
	}
	d.columns = d.validColumns(d.columns)
	d.index = BuildFilterIndex(ctx, nil, d.columns)
	return d
}

// Load replaces the dataset. Any previous sort and filter are discarded and the
// filter index is rebuilt. A nil slice is ignored; an empty one leaves an empty,
// valid dataset. Columns are inferred from the first row when no schema is set.
func (d *DataSource) Load(rows []Row) {
	if rows == nil {
		return
	}
	d.rows = rows
	if len(d.columns) == 0 {
		d.columns = InferColumns(rows)
	}
	d.rebuild()
}

// Reconfigure replaces the column schema and invalidates derived state.
func (d *DataSource) Reconfigure(cols []ColumnDef) {
	d.columns = d.validColumns(cols)
	if len(d.columns) == 0 {
		d.columns = InferColumns(d.rows)
	}
	d.rebuild()
}

func (d *DataSource) validColumns(cols []ColumnDef) []ColumnDef {
	valid, dropped := ValidateColumns(cols)
	if len(dropped) > 0 {
		logging.FromContext(d.ctx).Warn().
			Str("component", "grid").
			Strs("dropped", dropped).
			Msg("ignoring columns with empty or duplicate field")
	}
	return valid
}

func (d *DataSource) rebuild() {
	d.sortField = ""
	d.sortDir = SortNone
	d.query = ""
	for i := range d.columns {
		d.columns[i].Sort = SortNone
	}

	d.order = make([]int, len(d.rows))
	for i := range d.order {
		d.order[i] = i
	}
	d.active = d.order

	if d.FilterEnabled() {
		d.index = BuildFilterIndex(d.ctx, d.rows, d.columns, WithIdentityField(d.idField))
	} else {
		d.index = BuildFilterIndex(d.ctx, nil, d.columns)
	}

	logging.FromContext(d.ctx).Debug().
		Str("component", "grid").
		Int("rows", len(d.rows)).
		Int("columns", len(d.columns)).
		Bool("filter_enabled", d.FilterEnabled()).
		Msg("dataset loaded")
}

// FilterEnabled reports whether filtering is on globally or for some column.
func (d *DataSource) FilterEnabled() bool {
	if d.filterable {
		return true
	}
	for _, c := range d.columns {
		if c.Filterable {
			return true
		}
	}
	return false
}

// ApplySort orders the whole dataset by field with a stable sort, starting from load
// order, and re-applies the active filter on top. SortNone restores load order.
// An unknown field leaves the current order untouched and returns false.
func (d *DataSource) ApplySort(field string, dir SortDirection) bool {
	col := ColumnIndex(d.columns, field)
	if col < 0 {
		logging.FromContext(d.ctx).Debug().
			Str("component", "grid").
			Str("field", field).
			Msg("ignoring sort on unknown field")
		return false
	}

	order := make([]int, len(d.rows))
	for i := range order {
		order[i] = i
	}
	if dir != SortNone {
		sort.SliceStable(order, func(i, j int) bool {
			c := CompareValues(d.rows[order[i]][field], d.rows[order[j]][field])
			if dir == SortDesc {
				return c > 0
			}
			return c < 0
		})
	}

	for i := range d.columns {
		d.columns[i].Sort = SortNone
	}
	d.columns[col].Sort = dir
	d.sortField = field
	d.sortDir = dir
	if dir == SortNone {
		d.sortField = ""
	}
	d.order = order
	d.active = d.index.Query(d.query, d.order)
	return true
}

// ApplyFilter replaces the active dataset with the rows matching query, keeping the
// current sort order. It returns false when filtering is disabled or query equals the
// active query.
func (d *DataSource) ApplyFilter(query string) bool {
	if !d.FilterEnabled() || query == d.query {
		return false
	}
	d.query = query
	d.active = d.index.Query(query, d.order)

	logging.FromContext(d.ctx).Debug().
		Str("component", "grid").
		Str("query", query).
		Int("matches", len(d.active)).
		Msg("filter applied")
	return true
}

// WindowSlice returns the active rows in [r.Start, r.End), clamped to the active length.
func (d *DataSource) WindowSlice(r VisibleRange) []Row {
	r = r.Clamp(len(d.active))
	out := make([]Row, 0, r.Len())
	for _, pos := range d.active[r.Start:r.End] {
		out = append(out, d.rows[pos])
	}
	return out
}

// Row returns the active row at index i.
func (d *DataSource) Row(i int) (Row, bool) {
	if i < 0 || i >= len(d.active) {
		return nil, false
	}
	return d.rows[d.active[i]], true
}

// Len returns the active (sorted and filtered) row count.
func (d *DataSource) Len() int {
	return len(d.active)
}

// TotalLen returns the number of loaded rows.
func (d *DataSource) TotalLen() int {
	return len(d.rows)
}

// Columns returns the current column schema. The slice is shared with the source.
func (d *DataSource) Columns() []ColumnDef {
	return d.columns
}

// SetColumns replaces column presentation (titles, widths) without invalidating the
// dataset. Fields must match the current schema one to one; otherwise it returns false.
func (d *DataSource) SetColumns(cols []ColumnDef) bool {
	if len(cols) != len(d.columns) {
		return false
	}
	for i := range cols {
		if cols[i].Field != d.columns[i].Field {
			return false
		}
	}
	copy(d.columns, cols)
	return true
}

// Sort returns the active sort field and direction.
//
//nolint:nonamedreturns // Named returns document the pair.
func (d *DataSource) Sort() (field string, dir SortDirection) {
	return d.sortField, d.sortDir
}

// Query returns the active filter query.
func (d *DataSource) Query() string {
	return d.query
}

// Pending reports whether a sort or filter is scheduled but not yet applied.
func (d *DataSource) Pending() bool {
	return d.pending
}

// SetPending is set by the scheduler around a settle delay.
func (d *DataSource) SetPending(pending bool) {
	d.pending = pending
}
