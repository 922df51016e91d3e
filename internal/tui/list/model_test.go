package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func renderInt(item int, selected bool) string {
	if selected {
		return fmt.Sprintf("> %d", item)
	}
	return fmt.Sprintf("  %d", item)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestVirtualList_RendersOnlyVisibleRows(t *testing.T) {
	m := NewVirtualListModel(numbered(10000), 5, 40, renderInt)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "> 0", lines[0])
	assert.Equal(t, "  4", lines[4])
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 5, m.VisibleTo())
}

func TestVirtualList_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		selected int
		from     int
	}{
		{"down stays on screen", []string{"down", "down"}, 2, 0},
		{"down scrolls minimally", []string{"down", "down", "down", "down", "down"}, 5, 1},
		{"vim keys", []string{"j", "j", "k"}, 1, 0},
		{"up at top", []string{"up"}, 0, 0},
		{"page down", []string{"pgdown"}, 5, 1},
		{"page down then up", []string{"pgdown", "pgdown", "pgup"}, 5, 5},
		{"end", []string{"end"}, 99, 95},
		{"end then home", []string{"end", "home"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewVirtualListModel(numbered(100), 5, 40, renderInt)
			for _, k := range tt.keys {
				m.Update(key(k))
			}
			assert.Equal(t, tt.selected, m.Selected())
			assert.Equal(t, tt.from, m.VisibleFrom())
			assert.Contains(t, m.View(), fmt.Sprintf("> %d", tt.selected))
		})
	}
}

func TestVirtualList_WindowResize(t *testing.T) {
	m := NewVirtualListModel(numbered(100), 5, 40, renderInt)
	m.SetSelected(50)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	assert.Equal(t, 80, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.LessOrEqual(t, m.VisibleFrom(), 50)
	assert.Greater(t, m.VisibleTo(), 50)
}

func TestVirtualList_Empty(t *testing.T) {
	m := NewVirtualListModel([]int{}, 5, 40, renderInt)
	m.Update(key("down"))

	assert.Empty(t, m.View())
	assert.Nil(t, m.GetSelectedItem())
	assert.Equal(t, 0, m.ItemCount())
}

func TestVirtualList_SetSelectedClamps(t *testing.T) {
	m := NewVirtualListModel(numbered(3), 5, 40, renderInt)

	m.SetSelected(10)
	require.NotNil(t, m.GetSelectedItem())
	assert.Equal(t, 2, *m.GetSelectedItem())

	m.SetSelected(-4)
	assert.Equal(t, 0, m.Selected())
}
