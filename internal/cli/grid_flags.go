package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/vgrid/internal/config"
	"github.com/rshade/vgrid/internal/grid"
	"github.com/rshade/vgrid/internal/ingest"
	"github.com/rshade/vgrid/internal/logging"
)

// gridFlags are the grid and ingest flags shared by view and print.
type gridFlags struct {
	columns    string
	itemSize   float64
	headerSize float64
	pageSize   int
	minBuffer  float64
	maxBuffer  float64
	filterable bool
	resizable  bool
	autoSize   bool
	rtl        bool
	idField    string
	format     string
	separator  string
}

func (f *gridFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fl := cmd.Flags()
	fl.StringVar(&f.columns, "columns", "", "columns to show as field[:Title[:format]], comma separated; formats: lower, number, title, upper (default: every field)")
	fl.Float64Var(&f.itemSize, "item-size", d.Grid.ItemSize, "row height in cells")
	fl.Float64Var(&f.headerSize, "header-size", d.Grid.HeaderSize, "space above the first row added to page offsets")
	fl.IntVar(&f.pageSize, "page-size", d.Grid.PageSize, "rows per page")
	fl.Float64Var(&f.minBuffer, "min-buffer", d.Grid.MinBuffer, "rendered rows that must remain around the viewport")
	fl.Float64Var(&f.maxBuffer, "max-buffer", d.Grid.MaxBuffer, "rows rendered around the viewport on a recompute")
	fl.BoolVar(&f.filterable, "filterable", d.Grid.Filterable, "enable filtering on every field")
	fl.BoolVar(&f.resizable, "resizable", d.Grid.Resizable, "allow dragging column edges")
	fl.BoolVar(&f.autoSize, "auto-size", d.Grid.AutoSize, "estimate column widths from the rendered rows")
	fl.BoolVar(&f.rtl, "rtl", d.Grid.RTL, "right-to-left layout")
	fl.StringVar(&f.idField, "id-field", d.Grid.IDField, "identity field; rows without one get a generated ULID (empty disables)")
	fl.StringVar(&f.format, "format", "", "input format: auto, json, ndjson, yaml, csv, tsv")
	fl.StringVar(&f.separator, "separator", "", "field separator of delimited input (default: detected)")
}

// apply copies the flags the user set onto cfg. Unset flags keep the value from
// the configuration.
func (f *gridFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	g := &cfg.Grid
	if fl.Changed("columns") {
		g.Columns = config.ParseColumns(f.columns)
	}
	if fl.Changed("item-size") {
		g.ItemSize = f.itemSize
	}
	if fl.Changed("header-size") {
		g.HeaderSize = f.headerSize
	}
	if fl.Changed("page-size") {
		g.PageSize = f.pageSize
	}
	if fl.Changed("min-buffer") {
		g.MinBuffer = f.minBuffer
	}
	if fl.Changed("max-buffer") {
		g.MaxBuffer = f.maxBuffer
	}
	if fl.Changed("filterable") {
		g.Filterable = f.filterable
	}
	if fl.Changed("resizable") {
		g.Resizable = f.resizable
	}
	if fl.Changed("auto-size") {
		g.AutoSize = f.autoSize
	}
	if fl.Changed("rtl") {
		g.RTL = f.rtl
	}
	if fl.Changed("id-field") {
		g.IDField = f.idField
	}
	if fl.Changed("format") {
		cfg.Ingest.Format = f.format
	}
	if fl.Changed("separator") {
		cfg.Ingest.Separator = f.separator
	}
}

// effectiveConfig returns a copy of the global config with the flags applied.
func (f *gridFlags) effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := *config.GetGlobalConfig()
	cfg.Grid.Columns = append([]grid.ColumnDef(nil), cfg.Grid.Columns...)
	f.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &cfg, nil
}

// inputPaths returns the files to read. With no arguments, piped stdin is read.
func inputPaths(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if isTerminal(cmd.InOrStdin()) {
		return nil, errors.New("no input files: pass one or more paths, or pipe data to stdin")
	}
	return []string{ingest.StdinPath}, nil
}

// loadDataSource reads the inputs and builds the grid data source from cfg.
func loadDataSource(cmd *cobra.Command, args []string, cfg *config.Config) (*grid.DataSource, error) {
	ctx := cmd.Context()

	paths, err := inputPaths(cmd, args)
	if err != nil {
		return nil, err
	}

	format, err := ingest.ParseFormat(cfg.Ingest.Format)
	if err != nil {
		return nil, err
	}
	var sep rune
	if r := []rune(cfg.Ingest.Separator); len(r) == 1 {
		sep = r[0]
	}

	dataset, err := ingest.LoadFiles(ctx, paths, ingest.Options{
		Format:    format,
		Separator: sep,
		IDField:   cfg.Grid.IDField,
		Stdin:     cmd.InOrStdin(),
	})
	if err != nil {
		return nil, err
	}

	cols := cfg.Grid.Columns
	if len(cols) == 0 {
		cols = dataset.Columns()
	}
	ds := grid.NewDataSource(ctx,
		grid.WithColumns(cols),
		grid.WithFilterable(cfg.Grid.Filterable),
		grid.WithIDField(cfg.Grid.IDField),
	)
	ds.Load(dataset.Rows)

	logging.FromContext(ctx).Info().
		Str("component", "cli").
		Int("files", len(paths)).
		Int("rows", ds.TotalLen()).
		Int("columns", len(ds.Columns())).
		Msg("dataset loaded")
	return ds, nil
}
