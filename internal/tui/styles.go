package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorAccent    = lipgloss.Color("57")
	ColorHighlight = lipgloss.Color("229")
	ColorMuted     = lipgloss.Color("240")
	ColorHeader    = lipgloss.Color("99")
	ColorWarning   = lipgloss.Color("214")
)

// Sort indicators shown after a header title.
const (
	IconArrowUp   = "▲"
	IconArrowDown = "▼"
)

//nolint:gochecknoglobals // Shared read-only styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Background(ColorAccent)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	HandleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorHighlight).Background(ColorAccent).Padding(0, 1)
)
