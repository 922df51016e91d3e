package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vgrid/internal/config"
)

// NewConfigShowCmd prints the effective configuration: defaults, the user file,
// the project overlay and VGRID_* overrides, in that order.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			if path := cfg.Path(); path != "" {
				cmd.Printf("# %s\n", path)
			}
			if dir := config.GetResolvedProjectDir(); dir != "" {
				cmd.Printf("# project: %s\n", dir)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
