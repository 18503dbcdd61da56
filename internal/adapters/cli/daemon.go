package cli

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/basedbot-go/internal/infrastructure/pidfile"
)

// NewStopCommand creates the stop command
func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			pid, err := pidfile.New(cfg.Daemon.PIDFile).Signal(syscall.SIGTERM)
			if errors.Is(err, pidfile.ErrNotRunning) {
				fmt.Fprintln(cmd.OutOrStdout(), "Bot is not running")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Sent SIGTERM to bot (PID %d)\n", pid)
			return nil
		},
	}
}

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the bot is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			pf := pidfile.New(cfg.Daemon.PIDFile)
			if pid, running := pf.Running(); running {
				fmt.Fprintf(cmd.OutOrStdout(), "Bot is running (PID %d)\n", pid)
				if cfg.Daemon.StatusAddress != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  Status: http://%s/fleets\n", cfg.Daemon.StatusAddress)
				}
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Bot is not running (PID file: %s)\n", pf.Path())
			return nil
		},
	}
}
