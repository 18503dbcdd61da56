package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/basedbot-go/internal/application/worldmap"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// NewMineablesCommand creates the mineables command
func NewMineablesCommand() *cobra.Command {
	var x, y int64

	cmd := &cobra.Command{
		Use:   "mineables",
		Short: "List what can be mined at a sector",
		Long: `List every resource that a fleet docked at the starbase of a sector
can mine.

Example:
  basedbot mineables --x 40 --y 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			sector := shared.NewCoordinates(x, y)
			resp, err := a.mediator.Send(a.context(cmd.Context()), &worldmap.ListMineablesQuery{Coordinates: sector})
			if err != nil {
				return fmt.Errorf("failed to list mineables: %w", err)
			}
			result := resp.(*worldmap.ListMineablesResponse)

			out := cmd.OutOrStdout()
			if len(result.Mineables) == 0 {
				fmt.Fprintf(out, "Nothing to mine at %s\n", sector)
				return nil
			}

			fmt.Fprintf(out, "%-20s %-20s %-20s %s\n", "STARBASE", "PLANET", "ITEM", "MINT")
			for _, m := range result.Mineables {
				fmt.Fprintf(out, "%-20s %-20s %-20s %s\n",
					m.Starbase.DisplayName(),
					m.Planet.Name,
					m.MineItem.Name,
					m.MineItem.Mint,
				)
			}
			fmt.Fprintf(out, "\nTotal: %d mineables at %s\n", len(result.Mineables), sector)
			return nil
		},
	}

	cmd.Flags().Int64Var(&x, "x", 0, "Sector x coordinate")
	cmd.Flags().Int64Var(&y, "y", 0, "Sector y coordinate")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}
