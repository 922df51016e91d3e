package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/vgrid/internal/grid"
)

// rowSize is the height of one list item in terminal cells.
const rowSize = 1

// defaultBufferRows is the number of rows kept rendered beyond each edge.
const defaultBufferRows = 5

// RenderFunc is a function that renders an item at a given index.
// The selected parameter indicates whether this item is currently selected.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a cursor list that renders only its visible rows.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	selected   int
	width      int
	vp         *grid.Viewport
}

// NewVirtualListModel creates a new virtual list model.
// items: the complete list of items to display.
// height: viewport height in rows.
// width: viewport width in columns.
// renderFunc: function to render each item.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	buffer := float64(2 * defaultBufferRows * rowSize) //nolint:mnd // Both sides.
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		width:      width,
		vp:         grid.NewViewport(rowSize, buffer, 2*buffer), //nolint:mnd // Recompute renders twice the minimum.
	}
	m.vp.SetHeaderSize(0)
	m.vp.Attach(float64(max(height, 0)), len(items))
	return m
}

// Init initializes the model (required for tea.Model interface).
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and resize messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleKeyMsg moves the cursor.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	page := max(m.Height(), 1)
	switch msg.String() {
	case "up", "k":
		m.SetSelected(m.selected - 1)
	case "down", "j":
		m.SetSelected(m.selected + 1)
	case "pgup":
		m.SetSelected(m.selected - page)
	case "pgdown":
		m.SetSelected(m.selected + page)
	case "home", "g":
		m.SetSelected(0)
	case "end", "G":
		m.SetSelected(len(m.items) - 1)
	}
}

// SetSize resizes the viewport, keeping the cursor visible.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.vp.SetViewportSize(float64(max(height, 0)))
	m.vp.ScrollToIndex(m.selected)
}

// View renders the rows inside the viewport.
func (m *VirtualListModel[T]) View() string {
	r := m.vp.Geometric()
	if r.Len() == 0 {
		return ""
	}

	lines := make([]string, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds, and scrolls
// just enough to show it.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(index, 0), len(m.items)-1)
	m.vp.ScrollToIndex(m.selected)
}

// VisibleFrom returns the first visible item index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.vp.Geometric().Start
}

// VisibleTo returns the last visible item index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.vp.Geometric().End
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.vp.ViewportRowCount()
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the currently selected item.
// Returns nil if list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
