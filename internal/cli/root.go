package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vgrid/internal/config"
	"github.com/rshade/vgrid/internal/logging"
)

// isTerminal checks if the given writer is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the vgrid CLI.
// It loads configuration, wires up logging and tracing, and registers the
// view, print and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "vgrid",
		Short: "Virtualized data grid for tabular files",
		Long: `vgrid: Browse large JSON, NDJSON, YAML, CSV and TSV files in a virtualized grid.

Only the rows around the visible window are rendered, so sorting, filtering and
scrolling stay responsive on datasets with hundreds of thousands of rows.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $VGRID_HOME/config.yaml or ~/.vgrid/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .vgrid/config.yaml (overrides discovery)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides config)")

	cmd.AddCommand(NewViewCmd(), NewPrintCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse a CSV file interactively
  vgrid view people.csv

  # Browse several files as one dataset
  vgrid view part-1.ndjson part-2.ndjson

  # Print the second page of rows sorted by age, newest first
  vgrid print people.csv --sort age:desc --page 2 --page-size 25

  # Filter rows and print them as JSON
  vgrid print people.json --filter york --output json

  # Read from stdin
  cat people.csv | vgrid print - --format csv

  # Initialize configuration
  vgrid config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}

// loadConfig resolves the configuration for this invocation and installs it as
// the global config. --config replaces discovery; otherwise the user config is
// overlaid with the nearest project config.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var cfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.NewFromFile(path)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = loaded
	} else {
		projectFlag, _ := cmd.Flags().GetString("project-dir")
		cwd, err := os.Getwd()
		if err != nil {
			cwd = ""
		}
		projectDir := config.ResolveProjectDir(ctx, projectFlag, cwd)
		config.SetResolvedProjectDir(projectDir)
		cfg = config.NewWithProjectDir(ctx, projectDir)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}
