package cli

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/vgrid/internal/grid"
	"github.com/rshade/vgrid/internal/logging"
	"github.com/rshade/vgrid/internal/tui"
)

// NewViewCmd creates the view command, the interactive grid. When stdout is not
// a terminal it prints the first page instead.
func NewViewCmd() *cobra.Command {
	var flags gridFlags

	cmd := &cobra.Command{
		Use:   "view [files...]",
		Short: "Browse rows in the interactive grid",
		Long: `Opens the files (or stdin) in a virtualized grid. Only the rows around the
viewport are rendered.

Keys: ↑/↓ move, pgup/pgdn jump a page, / filters, s picks the sort column,
S cycles its direction, enter shows the row, q quits. Click a header to sort;
drag the │ at its right edge to resize.`,
		Example: `  # Browse a CSV file
  vgrid view people.csv

  # Right-to-left layout with fixed widths
  vgrid view people.csv --rtl --auto-size=false

  # Only some columns
  vgrid view people.csv --columns "name:Name,age:Age"`,
		Annotations: map[string]string{annotationTerminalUI: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runView(cmd *cobra.Command, args []string, flags *gridFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if !isTerminal(cmd.OutOrStdout()) {
		log.Debug().Msg("stdout is not a terminal, printing instead")
		return runPrint(cmd, args, &printParams{grid: *flags, page: 1})
	}

	cfg, err := flags.effectiveConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataSource(cmd, args, cfg)
	if err != nil {
		return err
	}

	opts := tui.OptionsFromConfig(cfg)
	opts.Title = viewTitle(args)
	opts.Events = grid.Events{
		OnSortChange: func(field string, dir grid.SortDirection) {
			log.Info().Str("field", field).Stringer("direction", dir).Msg("sort changed")
		},
		OnPageChange: func(pageIndex, pageSize int) {
			log.Info().Int("page_index", pageIndex).Int("page_size", pageSize).Msg("page changed")
		},
	}

	var in io.Reader
	if isTerminal(cmd.InOrStdin()) {
		in = cmd.InOrStdin()
	}

	m := tui.NewGridModel(ctx, ds, opts)
	if err = tui.Run(ctx, m, in, cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func viewTitle(args []string) string {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return "vgrid"
	}
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = filepath.Base(a)
	}
	return "vgrid: " + strings.Join(names, ", ")
}
