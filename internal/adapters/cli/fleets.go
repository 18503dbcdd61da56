package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	domainFleet "github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
)

// NewFleetsCommand creates the fleets command
func NewFleetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fleets",
		Short: "Show the current state of every fleet of the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Bot.ProfileKey == "" {
				return fmt.Errorf("bot.profile_key is required (or set %s_BOT_PROFILE_KEY)", config.EnvPrefix)
			}
			a, err := newApp(cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			fleets, err := a.gateway.ListFleets(a.context(cmd.Context()), cfg.Bot.ProfileKey)
			if err != nil {
				return err
			}

			goals := make(map[string]string, len(cfg.Bot.Routes))
			for _, r := range cfg.Bot.Routes {
				goals[r.Fleet] = r.Goal
			}

			latches, err := persistence.NewGormLatchStore(a.db, cfg.Bot.ProfileKey, nil).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range latches {
				if goal, ok := goals[l.FleetName]; ok {
					goals[l.FleetName] = goal + "/" + l.Direction
				}
			}

			printFleets(cmd.OutOrStdout(), fleets, goals, time.Now())
			return nil
		},
	}
}

func printFleets(out io.Writer, fleets []*domainFleet.FleetInfo, goals map[string]string, now time.Time) {
	fmt.Fprintf(out, "%-20s %-18s %-20s %-14s %-8s %s\n", "FLEET", "GOAL", "STATE", "LOCATION", "FUEL", "DETAIL")
	for _, f := range fleets {
		goal := goals[f.Name()]
		if goal == "" {
			goal = "-"
		}
		fuel := fmt.Sprintf("%d/%d", f.CargoLevels().Fuel, f.CargoStats().FuelCapacity)
		fmt.Fprintf(out, "%-20s %-18s %-20s %-14s %-8s %s\n",
			f.Name(), goal, f.State().Type(), f.Location(), fuel, stateDetail(f.State(), now))
	}
	fmt.Fprintf(out, "\nTotal: %d fleets\n", len(fleets))
}

func stateDetail(s domainFleet.State, now time.Time) string {
	switch st := s.(type) {
	case domainFleet.MoveWarp:
		return fmt.Sprintf("to %s %s", st.ToSector, humanize.RelTime(st.WarpFinish, now, "ago", "from now"))
	case domainFleet.MoveSubwarp:
		return fmt.Sprintf("to %s %s", st.ToSector, humanize.RelTime(st.ArrivalTime, now, "ago", "from now"))
	case domainFleet.MineAsteroid:
		return fmt.Sprintf("mining since %s", humanize.RelTime(st.Start, now, "ago", "from now"))
	case domainFleet.Respawn:
		return fmt.Sprintf("respawn %s", humanize.RelTime(st.ETA, now, "ago", "from now"))
	case domainFleet.StarbaseLoadingBay:
		return fmt.Sprintf("docked at %s", st.Starbase.Short())
	default:
		return ""
	}
}
