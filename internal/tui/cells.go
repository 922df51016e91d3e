package tui

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/vgrid/internal/grid"
)

const (
	// cellGap is the separator cell at the trailing edge of every column. It is
	// part of the column width and doubles as the resize handle in the header.
	cellGap = 1

	// DefaultFallbackWidth is the width of a column that has none and cannot be measured.
	DefaultFallbackWidth = 12

	ellipsis     = "…"
	handleGlyph  = "│"
	blankGlyph   = " "
	controlBlank = " "
)

// NewCellMeasurer returns a grid.Measurer counting terminal cells: the display
// width of the text, capped at maxCells when positive, plus the column gap.
// Invalid UTF-8 cannot be measured.
func NewCellMeasurer(maxCells int) grid.Measurer {
	return grid.MeasurerFunc(func(text string) (float64, error) {
		if !utf8.ValidString(text) {
			return 0, grid.ErrUnmeasurable
		}
		w := lipgloss.Width(singleLine(text))
		if maxCells > 0 && w > maxCells {
			w = maxCells
		}
		return float64(w + cellGap), nil
	})
}

// singleLine flattens control whitespace so a value never breaks the row.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	return strings.NewReplacer("\r\n", controlBlank, "\n", controlBlank, "\r", controlBlank, "\t", controlBlank).Replace(s)
}

// FitCell renders text into exactly width cells: truncated with an ellipsis or
// padded, followed by the gap. In right-to-left layout the gap leads.
func FitCell(text string, width int, rtl bool) string {
	return fitCell(text, width, rtl, blankGlyph)
}

func fitCell(text string, width int, rtl bool, gap string) string {
	if width <= 0 {
		return ""
	}
	inner := width - cellGap
	if inner <= 0 {
		return gap
	}
	if rtl {
		return gap + fitText(text, inner, true)
	}
	return fitText(text, inner, false) + gap
}

// fitText truncates or pads text to exactly width cells, aligned to the leading edge.
func fitText(text string, width int, rtl bool) string {
	text = runewidth.Truncate(singleLine(text), width, ellipsis)
	if rtl {
		return runewidth.FillLeft(text, width)
	}
	return runewidth.FillRight(text, width)
}

// CellWidths converts column widths to whole cells. Columns without a usable
// width get fallback.
func CellWidths(cols []grid.ColumnDef, fallback int) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		w, ok := c.PixelWidth()
		if !ok {
			widths[i] = max(fallback, 1)
			continue
		}
		widths[i] = max(int(math.Round(w)), 1)
	}
	return widths
}

// JoinCells lays rendered cells out left to right, or right to left.
func JoinCells(cells []string, rtl bool) string {
	if !rtl {
		return strings.Join(cells, "")
	}
	var b strings.Builder
	for i := len(cells) - 1; i >= 0; i-- {
		b.WriteString(cells[i])
	}
	return b.String()
}

// RenderRow renders one data row.
func RenderRow(cols []grid.ColumnDef, widths []int, row grid.Row, rtl bool) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = FitCell(c.Cell(row), widths[i], rtl)
	}
	return JoinCells(cells, rtl)
}

// HeaderTitle returns the column title with its sort indicator.
func HeaderTitle(c grid.ColumnDef) string {
	switch c.Sort {
	case grid.SortAsc:
		return c.Header() + " " + IconArrowUp
	case grid.SortDesc:
		return c.Header() + " " + IconArrowDown
	default:
		return c.Header()
	}
}

// columnAt hit-tests x against the laid out columns and returns the column index
// and x relative to that column's left edge.
//
//nolint:nonamedreturns // Named returns document the hit-test result.
func columnAt(widths []int, x int, rtl bool) (col int, local float64, ok bool) {
	total := 0
	for _, w := range widths {
		total += w
	}
	if x < 0 || x >= total {
		return -1, 0, false
	}

	pos := 0
	for i, w := range widths {
		left := pos
		if rtl {
			left = total - pos - w
		}
		if x >= left && x < left+w {
			return i, float64(x - left), true
		}
		pos += w
	}
	return -1, 0, false
}

// toFloats converts cell widths for the resize controller.
func toFloats(widths []int) []float64 {
	out := make([]float64, len(widths))
	for i, w := range widths {
		out[i] = float64(w)
	}
	return out
}
