package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/database"
)

// NewLogsCommand creates the logs command
func NewLogsCommand() *cobra.Command {
	var (
		fleetName string
		level     string
		limit     int
		since     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show persisted bot logs",
		Long: `Show log entries persisted by the bot (requires logging.persist).

Examples:
  basedbot logs
  basedbot logs --fleet "Hauler One" --level ERROR
  basedbot logs --since 1h --limit 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			filter := persistence.LogFilter{
				ProfileKey: cfg.Bot.ProfileKey,
				FleetName:  fleetName,
				Level:      level,
				Limit:      limit,
			}
			if since > 0 {
				cutoff := time.Now().Add(-since)
				filter.Since = &cutoff
			}

			logs, err := persistence.NewGormFleetLogRepository(db, nil).GetLogs(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to get logs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(logs) == 0 {
				fmt.Fprintln(out, "No logs found")
				return nil
			}

			// Oldest first
			for i := len(logs) - 1; i >= 0; i-- {
				entry := logs[i]
				scope := entry.FleetName
				if scope == "" {
					scope = "-"
				}
				fmt.Fprintf(out, "[%s] [%s] [%s] %s\n",
					entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
					entry.Level,
					scope,
					entry.Message,
				)
			}
			fmt.Fprintf(out, "\nTotal: %d log entries\n", len(logs))
			return nil
		},
	}

	cmd.Flags().StringVar(&fleetName, "fleet", "", "Only entries of this fleet")
	cmd.Flags().StringVar(&level, "level", "", "Filter by log level (INFO, WARNING, ERROR)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of log entries")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this (e.g. 30m, 2h)")

	return cmd
}

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Bot.ProfileKey == "" {
				return fmt.Errorf("bot.profile_key is required (or set %s_BOT_PROFILE_KEY)", config.EnvPrefix)
			}
			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			records, err := persistence.NewGormCycleRunRepository(db).Recent(cmd.Context(), cfg.Bot.ProfileKey, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-36s %-20s %-10s %-9s %-7s %s\n", "CYCLE", "STARTED", "DURATION", "OBSERVED", "TICKED", "FAILED")
			for _, r := range records {
				fmt.Fprintf(out, "%-36s %-20s %-10s %-9d %-7d %d\n",
					r.CycleID,
					r.StartedAt.Local().Format("2006-01-02 15:04:05"),
					r.Duration.Round(time.Millisecond),
					r.Observed,
					r.Ticked,
					r.Failures,
				)
			}
			fmt.Fprintf(out, "\nTotal: %d cycles\n", len(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of cycles to show")
	return cmd
}
