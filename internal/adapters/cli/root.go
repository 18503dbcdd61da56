package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "basedbot",
		Short: "basedbot - SAGE fleet automation",
		Long: `basedbot drives Star Atlas SAGE fleets through the SAGE gateway.
Each cycle it reloads the world, reads every fleet and applies the fleet's
configured goal: shuttle cargo between two starbases or start mining.

Examples:
  basedbot config init
  basedbot run
  basedbot run --cycles 1
  basedbot mineables --x 40 --y 30
  basedbot fleets
  basedbot logs --fleet "Hauler One" --limit 50
  basedbot stop`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: ./config.yaml, ./configs, /etc/basedbot)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewMineablesCommand())
	rootCmd.AddCommand(NewFleetsCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
