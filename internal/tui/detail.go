package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/vgrid/internal/grid"
	listview "github.com/rshade/vgrid/internal/tui/list"
)

const (
	// detailChrome is the title and hint line around the field list.
	detailChrome   = 2
	maxDetailLabel = 24
)

// detailField is one line of the row detail view.
type detailField struct {
	Name  string
	Value string
	label int
}

// detailFields lists the schema columns first, then any other keys of the row.
func detailFields(cols []grid.ColumnDef, row grid.Row) []detailField {
	fields := make([]detailField, 0, len(row))
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c.Field] = true
		fields = append(fields, detailField{Name: c.Header(), Value: c.Cell(row)})
	}
	for _, k := range row.SortedKeys() {
		if !seen[k] {
			fields = append(fields, detailField{Name: k, Value: grid.FormatValue(row[k])})
		}
	}

	label := 0
	for _, f := range fields {
		label = max(label, len([]rune(f.Name)))
	}
	label = min(label, maxDetailLabel)
	for i := range fields {
		fields[i].label = label
	}
	return fields
}

func renderDetailField(f detailField, selected bool) string {
	line := fitText(f.Name, f.label, false) + "  " + singleLine(f.Value)
	if selected {
		return SelectedStyle.Render(line)
	}
	return line
}

func (m *GridModel) detailHeight() int {
	return max(m.height-detailChrome, 1)
}

// openDetail switches to the field list of the selected row.
func (m *GridModel) openDetail() {
	row, ok := m.ds.Row(m.selected)
	if !ok {
		return
	}
	m.detail = listview.NewVirtualListModel(
		detailFields(m.ds.Columns(), row),
		m.detailHeight(),
		m.width,
		renderDetailField,
	)
	m.state = ViewStateDetail
}

func (m *GridModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.state = ViewStateQuitting
		return m, tea.Quit
	case "esc", "backspace":
		m.state = ViewStateList
		m.detail = nil
		return m, nil
	}
	if m.detail != nil {
		m.detail.Update(msg)
	}
	return m, nil
}
