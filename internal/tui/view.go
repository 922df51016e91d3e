package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/vgrid/internal/grid"
)

const statusSeparator = " │ "

// View renders the current screen.
func (m *GridModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetail()
	default:
		return m.renderGrid()
	}
}

func (m *GridModel) renderGrid() string {
	cols := m.ds.Columns()
	widths := CellWidths(cols, m.opts.FallbackWidth)

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader(cols, widths))
	lines = append(lines, m.renderBody(cols, widths)...)
	lines = append(lines, m.renderFilterLine(), m.renderStatus(), m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// renderHeader draws titles with sort indicators. The gap of each column is its
// resize handle and lights up while armed or dragged.
func (m *GridModel) renderHeader(cols []grid.ColumnDef, widths []int) string {
	active := m.resizer.DragColumn()
	if active < 0 {
		active = m.resizer.ArmedColumn()
	}

	cells := make([]string, len(cols))
	for i, c := range cols {
		gap := MutedStyle.Render(handleGlyph)
		if i == active {
			gap = HandleStyle.Render(handleGlyph)
		}
		if widths[i] <= cellGap {
			cells[i] = gap
			continue
		}
		title := HeaderStyle.Render(fitText(HeaderTitle(c), widths[i]-cellGap, m.opts.RTL))
		if m.opts.RTL {
			cells[i] = gap + title
		} else {
			cells[i] = title + gap
		}
	}
	return JoinCells(cells, m.opts.RTL)
}

// renderBody draws the rows inside the viewport from the rendered window.
func (m *GridModel) renderBody(cols []grid.ColumnDef, widths []int) []string {
	rows := m.bodyRows()
	lines := make([]string, 0, rows)

	rng := m.vp.Range()
	window := m.ds.WindowSlice(rng)
	first := m.vp.FirstVisible()

	for line := range rows {
		i := first + line
		if i >= m.ds.Len() {
			lines = append(lines, "")
			continue
		}
		var row grid.Row
		if rng.Contains(i) && i-rng.Start < len(window) {
			row = window[i-rng.Start]
		} else {
			row, _ = m.ds.Row(i)
		}
		text := RenderRow(cols, widths, row, m.opts.RTL)
		if i == m.selected {
			text = SelectedStyle.Render(text)
		}
		lines = append(lines, text)
	}
	return lines
}

func (m *GridModel) renderFilterLine() string {
	if m.filtering || m.filter.Value() != "" {
		return m.filter.View()
	}
	return ""
}

// renderStatus shows counts, the active sort and filter, pending work and the
// last grid event.
func (m *GridModel) renderStatus() string {
	parts := []string{m.printer.Sprintf("%d of %d rows", m.ds.Len(), m.ds.TotalLen())}
	if m.ds.Len() > 0 {
		parts = append(parts, m.printer.Sprintf("row %d", m.selected+1))
	}
	if field, dir := m.ds.Sort(); field != "" {
		parts = append(parts, "sort "+field+" "+dir.String())
	}
	if q := m.ds.Query(); q != "" {
		parts = append(parts, "filter \""+q+"\"")
	}
	if m.ds.Pending() {
		parts = append(parts, m.spinner.View()+" applying")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return MutedStyle.Render(strings.Join(parts, statusSeparator))
}

// renderDetail shows the selected row as a field list.
func (m *GridModel) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	title := TitleStyle.Render(m.printer.Sprintf("Row %d of %d", m.selected+1, m.ds.Len()))
	hint := MutedStyle.Render("[↑↓/jk] Navigate  [Esc] Back  [q] Quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.detail.View(), hint)
}
