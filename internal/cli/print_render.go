package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vgrid/internal/cli/pagination"
	"github.com/rshade/vgrid/internal/config"
	"github.com/rshade/vgrid/internal/grid"
	"github.com/rshade/vgrid/internal/tui"
)

// Output formats of the print command.
const (
	formatTable  = "table"
	formatJSON   = "json"
	formatNDJSON = "ndjson"
)

// printJSON is the JSON document of one printed page.
type printJSON struct {
	Columns    []string                  `json:"columns"`
	Rows       []map[string]any          `json:"rows"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// ndjsonSummary is the first NDJSON line.
type ndjsonSummary struct {
	Type       string                    `json:"type"`
	Columns    []string                  `json:"columns"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// projectRow keeps only the fields of the visible columns.
func projectRow(cols []grid.ColumnDef, row grid.Row) map[string]any {
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		if v, ok := row[c.Field]; ok {
			out[c.Field] = v
		}
	}
	return out
}

func columnFields(cols []grid.ColumnDef) []string {
	fields := make([]string, len(cols))
	for i, c := range cols {
		fields[i] = c.Field
	}
	return fields
}

func renderJSON(w io.Writer, cols []grid.ColumnDef, rows []grid.Row, meta pagination.PaginationMeta) error {
	output := printJSON{
		Columns:    columnFields(cols),
		Rows:       make([]map[string]any, 0, len(rows)),
		Pagination: meta,
	}
	for _, row := range rows {
		output.Rows = append(output.Rows, projectRow(cols, row))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderNDJSON writes a summary line followed by one line per row.
func renderNDJSON(w io.Writer, cols []grid.ColumnDef, rows []grid.Row, meta pagination.PaginationMeta) error {
	encoder := json.NewEncoder(w)
	summary := ndjsonSummary{Type: "summary", Columns: columnFields(cols), Pagination: meta}
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("encoding NDJSON summary: %w", err)
	}
	for _, row := range rows {
		if err := encoder.Encode(projectRow(cols, row)); err != nil {
			return fmt.Errorf("encoding NDJSON row: %w", err)
		}
	}
	return nil
}

type tableInput struct {
	cfg     *config.Config
	columns []grid.ColumnDef
	rows    []grid.Row
	rng     grid.VisibleRange
	total   int
	loaded  int
	meta    pagination.PaginationMeta
	width   int
	log     *zerolog.Logger
}

// renderTable writes the page as fixed-width text. Widths come from the column
// definitions, estimated from the printed rows when auto-size is on.
func renderTable(w io.Writer, in tableInput) error {
	cols := in.columns
	if in.cfg.Grid.AutoSize {
		sizer := grid.NewWidthEstimator(
			tui.NewCellMeasurer(in.cfg.Output.MaxCellWidth),
			grid.WithFallback(tui.DefaultFallbackWidth),
			grid.WithLogger(in.log),
		)
		cols, _ = sizer.Estimate(cols, in.rows, float64(in.width), false)
	}
	widths := tui.CellWidths(cols, tui.DefaultFallbackWidth)
	rtl := in.cfg.Grid.RTL

	var sb strings.Builder
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = tui.FitCell(tui.HeaderTitle(c), widths[i], rtl)
	}
	sb.WriteString(strings.TrimRight(tui.JoinCells(headers, rtl), " "))
	sb.WriteByte('\n')

	for _, row := range in.rows {
		sb.WriteString(strings.TrimRight(tui.RenderRow(cols, widths, row, rtl), " "))
		sb.WriteByte('\n')
	}

	p := message.NewPrinter(language.English)
	sb.WriteByte('\n')
	switch {
	case in.total == 0:
		sb.WriteString(p.Sprintf("No rows match (%d loaded)", in.loaded))
	case in.rng.Len() == 0:
		sb.WriteString(p.Sprintf("No rows in range (%d matching)", in.total))
	default:
		sb.WriteString(p.Sprintf("Rows %d-%d of %d", in.rng.Start+1, in.rng.End, in.total))
		if in.total != in.loaded {
			sb.WriteString(p.Sprintf(" (%d loaded)", in.loaded))
		}
		sb.WriteString(p.Sprintf(" · page %d of %d", in.meta.CurrentPage, in.meta.TotalPages))
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
