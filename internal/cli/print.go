package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vgrid/internal/cli/pagination"
	"github.com/rshade/vgrid/internal/config"
	"github.com/rshade/vgrid/internal/grid"
	"github.com/rshade/vgrid/internal/logging"
)

// fallbackTermWidth is the table width when stdout is not a terminal.
const fallbackTermWidth = 80

// printParams holds the flags of the print command.
type printParams struct {
	grid   gridFlags
	sort   string
	filter string
	page   int
	offset int
	limit  int
	output string
}

// NewPrintCmd creates the print command: load, sort, filter and page rows, then
// write one page as a table, JSON or NDJSON.
func NewPrintCmd() *cobra.Command {
	var p printParams

	cmd := &cobra.Command{
		Use:   "print [files...]",
		Short: "Print a page of rows without the interactive grid",
		Long: `Loads one or more files (or stdin), applies the sort and filter, and prints
the selected page. Sorting is stable; equal values keep load order. The filter
matches whole-word prefixes first and broadens to plain substrings when fewer
than 50 rows match.`,
		Example: `  # First page as a table
  vgrid print people.csv

  # Third page of 25 rows sorted by age, oldest first
  vgrid print people.csv --sort age:desc --page 3 --page-size 25

  # Rows 100-149 as NDJSON
  vgrid print events.ndjson --offset 100 --limit 50 --output ndjson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, args, &p)
		},
	}

	p.grid.register(cmd)
	cmd.Flags().StringVar(&p.sort, "sort", "", "sort as field or field:asc|desc|none")
	cmd.Flags().StringVar(&p.filter, "filter", "", "keep rows whose text matches the query")
	cmd.Flags().IntVar(&p.page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&p.offset, "offset", 0, "rows to skip (offset mode, excludes --page)")
	cmd.Flags().IntVar(&p.limit, "limit", 0, "rows to print in offset mode (0 = all)")
	cmd.Flags().StringVar(&p.output, "output", "", "output format: table, json, ndjson (default from config)")

	return cmd
}

func runPrint(cmd *cobra.Command, args []string, p *printParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg, err := p.grid.effectiveConfig(cmd)
	if err != nil {
		return err
	}

	params, err := p.paginationParams(cmd, cfg)
	if err != nil {
		return err
	}
	format := cfg.Output.DefaultFormat
	if cmd.Flags().Changed("output") {
		format = strings.ToLower(p.output)
	}
	if format != formatTable && format != formatJSON && format != formatNDJSON {
		return fmt.Errorf("%w: got %q", config.ErrInvalidFormat, format)
	}

	ds, err := loadDataSource(cmd, args, cfg)
	if err != nil {
		return err
	}

	if params.SortField != "" {
		if grid.ColumnIndex(ds.Columns(), params.SortField) < 0 {
			return fmt.Errorf("unknown sort column %q", params.SortField)
		}
		if ds.ApplySort(params.SortField, params.SortDir) {
			field, dir := ds.Sort()
			log.Debug().Str("field", field).Stringer("direction", dir).Msg("sort changed")
		}
	}
	if p.filter != "" {
		if !ds.FilterEnabled() {
			return errors.New("filtering is disabled; pass --filterable or mark a column filterable")
		}
		ds.ApplyFilter(p.filter)
	}

	rng := params.Window(ds.Len())
	rows := ds.WindowSlice(rng)
	meta := pagination.NewPaginationMeta(params, ds.Len())

	log.Debug().
		Str("format", format).
		Int("start", rng.Start).
		Int("end", rng.End).
		Int("matched", ds.Len()).
		Msg("printing rows")

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return renderJSON(out, ds.Columns(), rows, meta)
	case formatNDJSON:
		return renderNDJSON(out, ds.Columns(), rows, meta)
	default:
		return renderTable(out, tableInput{
			cfg:     cfg,
			columns: ds.Columns(),
			rows:    rows,
			rng:     rng,
			total:   ds.Len(),
			loaded:  ds.TotalLen(),
			meta:    meta,
			width:   terminalWidth(out),
			log:     log,
		})
	}
}

// paginationParams builds and validates the paging flags. --offset without an
// explicit --page switches to offset mode.
func (p *printParams) paginationParams(cmd *cobra.Command, cfg *config.Config) (pagination.PaginationParams, error) {
	params := *pagination.NewPaginationParams()
	params.PageSize = cfg.Grid.PageSize
	params.Page = p.page
	params.Offset = p.offset
	params.Limit = p.limit
	if cmd.Flags().Changed("offset") && !cmd.Flags().Changed("page") {
		params.Page = 0
	}

	field, dir, err := pagination.ParseSort(p.sort)
	if err != nil {
		return params, err
	}
	params.SortField = field
	params.SortDir = dir

	if err = params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w any) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return fallbackTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}
