package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage basedbot configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (BASEDBOT_* prefix, e.g. BASEDBOT_GATEWAY_API_KEY)
2. Config file (config.yaml)
3. Default values

Examples:
  basedbot config init
  basedbot config show`,
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteSample(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Sample configuration written to %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "  Set bot.profile_key and the route resources before running.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "config.yaml", "Where to write the file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := config.Marshal(config.Redacted(cfg))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
