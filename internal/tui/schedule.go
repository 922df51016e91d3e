package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/vgrid/internal/grid"
)

// measureDelay lets one frame render before widths are measured.
const measureDelay = 16 * time.Millisecond

// queueFilter restarts the debounce window. Earlier ticks become stale.
func (m *GridModel) queueFilter() tea.Cmd {
	m.filterGen++
	gen := m.filterGen
	return tea.Tick(m.opts.FilterDebounce, func(time.Time) tea.Msg {
		return filterDebounceMsg{gen: gen}
	})
}

// onFilterDebounce turns the latest quiet filter value into pending work.
// A value equal to the active or already pending query is dropped.
func (m *GridModel) onFilterDebounce(msg filterDebounceMsg) tea.Cmd {
	if msg.gen != m.filterGen {
		return nil
	}
	q := m.filter.Value()
	if m.pending.hasQuery && q == m.pending.query {
		return nil
	}
	if !m.pending.hasQuery && q == m.ds.Query() {
		return nil
	}
	m.pending.query = q
	m.pending.hasQuery = true
	return m.beginSettle()
}

// requestSort queues a sort for the settle delay.
func (m *GridModel) requestSort(field string, dir grid.SortDirection) tea.Cmd {
	m.pending.sortField = field
	m.pending.sortDir = dir
	m.pending.hasSort = true
	return m.beginSettle()
}

// effectiveSort is the sort the user last asked for, applied or not.
//
//nolint:nonamedreturns // Named returns document the pair.
func (m *GridModel) effectiveSort() (field string, dir grid.SortDirection) {
	if m.pending.hasSort {
		return m.pending.sortField, m.pending.sortDir
	}
	return m.ds.Sort()
}

// cycleSortColumn moves the sort to the next column, keeping the direction.
func (m *GridModel) cycleSortColumn() tea.Cmd {
	cols := m.ds.Columns()
	if len(cols) == 0 {
		return nil
	}
	field, dir := m.effectiveSort()
	next := (grid.ColumnIndex(cols, field) + 1) % len(cols)
	if dir == grid.SortNone {
		dir = grid.SortAsc
	}
	return m.requestSort(cols[next].Field, dir)
}

// cycleSortDirection steps the current sort column through asc, desc and none.
func (m *GridModel) cycleSortDirection() tea.Cmd {
	cols := m.ds.Columns()
	if len(cols) == 0 {
		return nil
	}
	field, dir := m.effectiveSort()
	if field == "" {
		field = cols[0].Field
	}
	return m.requestSort(field, dir.Next())
}

// sortByHeader is the header click: a new column sorts ascending, the sorted
// column steps to its next direction.
func (m *GridModel) sortByHeader(col int) tea.Cmd {
	cols := m.ds.Columns()
	if col < 0 || col >= len(cols) {
		return nil
	}
	field, dir := m.effectiveSort()
	if field == cols[col].Field {
		return m.requestSort(field, dir.Next())
	}
	return m.requestSort(cols[col].Field, grid.SortAsc)
}

// beginSettle marks the source pending and (re)starts the settle delay. The
// spinner starts with the first pending request only.
func (m *GridModel) beginSettle() tea.Cmd {
	m.settleGen++
	gen := m.settleGen
	settle := tea.Tick(m.opts.SettleDelay, func(time.Time) tea.Msg {
		return settleMsg{gen: gen}
	})
	if m.ds.Pending() {
		return settle
	}
	m.ds.SetPending(true)
	return tea.Batch(settle, m.spinner.Tick)
}

// onSettle applies the pending sort, then the pending filter.
func (m *GridModel) onSettle(msg settleMsg) tea.Cmd {
	if msg.gen != m.settleGen {
		return nil
	}
	work := m.pending
	m.pending = pendingWork{}
	m.ds.SetPending(false)

	changed := false
	if work.hasSort && m.ds.ApplySort(work.sortField, work.sortDir) {
		field, dir := m.ds.Sort()
		m.events.SortChanged(field, dir)
		changed = true
	}
	if work.hasQuery && m.ds.ApplyFilter(work.query) {
		m.selected = 0
		m.vp.ScrollToOffset(0)
		changed = true
	}
	if !changed {
		return nil
	}

	m.vp.SetDataLength(m.ds.Len())
	m.clampSelection()
	return m.scheduleMeasure(false)
}

// scheduleMeasure asks for a width estimate after the next render. A forced
// request stays forced until it runs.
func (m *GridModel) scheduleMeasure(forced bool) tea.Cmd {
	if !m.opts.AutoSize {
		return nil
	}
	m.measureGen++
	m.measureForced = m.measureForced || forced
	gen := m.measureGen
	return tea.Tick(measureDelay, func(time.Time) tea.Msg {
		return measureMsg{gen: gen}
	})
}

// onMeasure estimates widths from the rendered window.
func (m *GridModel) onMeasure(msg measureMsg) {
	if msg.gen != m.measureGen || m.width <= 0 {
		return
	}
	forced := m.measureForced
	m.measureForced = false

	window := m.ds.WindowSlice(m.vp.Range())
	cols, widths := m.sizer.Estimate(m.ds.Columns(), window, float64(m.width), forced)
	m.ds.SetColumns(cols)

	m.log().Debug().
		Bool("forced", forced).
		Int("window_rows", len(window)).
		Float64("total_width", widths.Sum()).
		Msg("column widths estimated")
}
