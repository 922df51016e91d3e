package grid

import (
	"math"
	"strconv"
	"strings"
)

// pixelSuffix is appended to widths written back onto column definitions.
const pixelSuffix = "px"

// SortDirection is the direction of the single active sort key.
type SortDirection string

// Supported sort directions. SortNone restores load order.
const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection parses "asc", "desc" or "none"/"" (case-insensitive).
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAsc, true
	case "desc", "descending":
		return SortDesc, true
	case "", "none":
		return SortNone, true
	default:
		return SortNone, false
	}
}

// Next cycles asc → desc → none → asc, the order a sortable header toggles through.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortAsc:
		return SortDesc
	case SortDesc:
		return SortNone
	default:
		return SortAsc
	}
}

// String returns "none" for SortNone so logs stay readable.
func (d SortDirection) String() string {
	if d == SortNone {
		return "none"
	}
	return string(d)
}

// CellFormatter renders a column value for display and measurement.
type CellFormatter func(value any) string

// ColumnDef declares one column. Declaration order is display order.
type ColumnDef struct {
	Field      string        `yaml:"field"                json:"field"`
	Title      string        `yaml:"title,omitempty"      json:"title,omitempty"`
	Width      string        `yaml:"width,omitempty"      json:"width,omitempty"`
	Filterable bool          `yaml:"filterable,omitempty" json:"filterable,omitempty"`
	FormatName string        `yaml:"format,omitempty"     json:"format,omitempty"`
	Sort       SortDirection `yaml:"-"                    json:"-"`
	Format     CellFormatter `yaml:"-"                    json:"-"`
}

// Cell returns the display text of the column's value in row. Format wins over
// FormatName; an unregistered name renders the plain value.
func (c ColumnDef) Cell(row Row) string {
	v := row[c.Field]
	if c.Format != nil {
		return c.Format(v)
	}
	if c.FormatName != "" {
		if f, ok := namedFormatters[c.FormatName]; ok {
			return f(v)
		}
	}
	return FormatValue(v)
}

// Header returns the title, falling back to the field name.
func (c ColumnDef) Header() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Field
}

// PixelWidth parses Width. ok is false when no usable width is set.
func (c ColumnDef) PixelWidth() (float64, bool) {
	return ParsePixels(c.Width)
}

// ColumnsFromFields builds untitled column definitions (title = field) in the given order.
func ColumnsFromFields(fields []string) []ColumnDef {
	cols := make([]ColumnDef, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, ColumnDef{Field: f, Title: f})
	}
	return cols
}

// InferColumns derives columns from the first row's keys.
// Map keys carry no order, so they are sorted; callers that know the source order
// (CSV header, document key order) should use ColumnsFromFields instead.
// Returns nil for an empty dataset: inference is deferred until rows arrive.
func InferColumns(rows []Row) []ColumnDef {
	if len(rows) == 0 {
		return nil
	}
	return ColumnsFromFields(rows[0].SortedKeys())
}

// ValidateColumns drops columns with an empty or repeated field and returns the
// dropped field names. The first declaration of a field wins.
//
//nolint:nonamedreturns // Named returns document the two result slices.
func ValidateColumns(cols []ColumnDef) (valid []ColumnDef, dropped []string) {
	seen := make(map[string]bool, len(cols))
	valid = make([]ColumnDef, 0, len(cols))
	for _, c := range cols {
		if c.Field == "" || seen[c.Field] {
			dropped = append(dropped, c.Field)
			continue
		}
		seen[c.Field] = true
		valid = append(valid, c)
	}
	return valid, dropped
}

// ColumnIndex returns the position of field in cols, or -1.
func ColumnIndex(cols []ColumnDef, field string) int {
	for i, c := range cols {
		if c.Field == field {
			return i
		}
	}
	return -1
}

// FormatPixels renders a width as a pixel string ("123px"), rounded to 1/100 px.
func FormatPixels(w float64) string {
	rounded := math.Round(w*100) / 100 //nolint:mnd // Two decimal places.
	return strconv.FormatFloat(rounded, 'f', -1, 64) + pixelSuffix
}

// ParsePixels reads "123px", "123.5px" or a bare number.
func ParsePixels(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), pixelSuffix))
	if s == "" {
		return 0, false
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, false
	}
	return w, true
}
