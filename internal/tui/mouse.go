package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/vgrid/internal/grid"
)

// headerY is the screen row of the column header.
const headerY = 0

// handleMouse routes pointer events. While a drag holds the pointer capture,
// motion and release go to the resize controller wherever they happen.
func (m *GridModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.state != ViewStateList {
		return nil
	}

	if m.capture.active {
		switch msg.Action {
		case tea.MouseActionMotion:
			m.dragTo(msg.X)
		case tea.MouseActionRelease:
			m.endDrag()
		}
		return nil
	}

	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.vp.ScrollBy(-wheelRows * m.vp.ItemSize())
		case tea.MouseButtonWheelDown:
			m.vp.ScrollBy(wheelRows * m.vp.ItemSize())
		}
		return nil
	}

	if msg.Y != headerY {
		m.resizer.Leave()
		m.pointer = grid.CursorPointer
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.clickBody(msg.Y)
		}
		return nil
	}

	return m.handleHeaderMouse(msg)
}

func (m *GridModel) handleHeaderMouse(msg tea.MouseMsg) tea.Cmd {
	widths := m.cellWidths()
	col, local, ok := columnAt(widths, msg.X, m.opts.RTL)
	if !ok {
		m.resizer.Leave()
		m.pointer = grid.CursorPointer
		return nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.pointer = m.resizer.Hover(col, local, float64(widths[col]))
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.pointer = m.resizer.Hover(col, local, float64(widths[col]))
		if m.pointer == grid.CursorColResize {
			if m.resizer.Press(col, float64(msg.X), toFloats(widths)) {
				m.log().Debug().Int("column", col).Int("x", msg.X).Msg("resize started")
			}
			return nil
		}
		return m.sortByHeader(col)
	}
	return nil
}

// dragTo applies a drag move to the column pair.
func (m *GridModel) dragTo(x int) {
	upd, ok := m.resizer.Move(float64(x))
	if !ok {
		return
	}
	cols := make([]grid.ColumnDef, len(m.ds.Columns()))
	copy(cols, m.ds.Columns())
	upd.Apply(cols)
	m.ds.SetColumns(cols)
}

func (m *GridModel) endDrag() {
	col := m.resizer.DragColumn()
	if m.resizer.Release() {
		m.log().Debug().Int("column", col).Msg("resize finished")
	}
	m.pointer = grid.CursorPointer
}

// clickBody selects the row under screen row y.
func (m *GridModel) clickBody(y int) {
	line := y - headerLines
	if line < 0 || line >= m.bodyRows() {
		return
	}
	i := m.vp.FirstVisible() + line
	if i < m.ds.Len() {
		m.moveTo(i)
	}
}

// cellWidths returns the current column widths in cells.
func (m *GridModel) cellWidths() []int {
	return CellWidths(m.ds.Columns(), m.opts.FallbackWidth)
}

// Pointer returns the cursor affordance for the last pointer position.
func (m *GridModel) Pointer() grid.Cursor {
	return m.pointer
}
