package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/vgrid/internal/config"
)

// errConfigExists is returned when init would overwrite a file without --force.
var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a resolved .vgrid/ directory) it writes the project-local
// config.yaml and a .gitignore. Otherwise, or with --global, it writes the user
// config under $VGRID_HOME or ~/.vgrid.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

With --project-dir (or VGRID_PROJECT_DIR, or inside a directory tree that already
has .vgrid/config.yaml) the project-local file is written, together with a
.gitignore. Use --global to write the user configuration instead.`,
		Example: `  # Create the user configuration
  vgrid config init

  # Create project-local configuration
  vgrid config init --project-dir ./.vgrid

  # Overwrite an existing file
  vgrid config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()
			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the user configuration even inside a project")

	return cmd
}

// checkWritable refuses to overwrite path unless force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errConfigExists
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates projectDir/config.yaml and a .gitignore next to it.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, config.ConfigFileName)
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.SetPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep logs out of version control\n")
	}
	return nil
}

// initGlobalConfig creates the user configuration.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Default()
	cfg.SetPath(filepath.Join(config.DefaultDir(), config.ConfigFileName))
	if err := checkWritable(cfg.Path(), force); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.Path())
	return nil
}
