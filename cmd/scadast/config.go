package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openscad-lang/scadast/internal/config"
)

// configCmd wires the --config flag and internal/config's layered Viper
// loader into a user-facing command, rather than leaving the root flag
// declared but unused. "show" prints the fully-resolved configuration
// (defaults + file + env overrides) so a user can see what the batch CLI,
// LSP, and MCP surfaces would actually run with.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect scadast's resolved configuration",
	}

	cmd.AddCommand(configShowCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Long: `Load configuration from defaults, the config file (--config, or
.scadast.yaml in the current directory / home directory), and SCADAST_*
environment variables, then print the merged result as YAML.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}
}

func runConfigShow(writer io.Writer) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	encoded, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = writer.Write(encoded)

	return err
}
