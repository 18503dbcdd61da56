package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

func fleetPath(f *fleet.FleetInfo, action string) string {
	return fmt.Sprintf("/v1/fleets/%s/%s", url.PathEscape(f.Key().String()), action)
}

// submit posts an action and logs the confirmed signature
func (c *GatewayClient) submit(ctx context.Context, f *fleet.FleetInfo, action string, body interface{}) error {
	var result ActionResultDTO
	if err := c.post(ctx, "/fleets/{fleet}/"+action, fleetPath(f, action), body, &result); err != nil {
		return fmt.Errorf("%s %s failed: %w", f.Name(), action, err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelDebug, fmt.Sprintf("%s %s confirmed", f.Name(), action), map[string]interface{}{
		"fleet":     f.Name(),
		"action":    action,
		"signature": result.Signature,
	})
	return nil
}

func (c *GatewayClient) Dock(ctx context.Context, f *fleet.FleetInfo, coordinates shared.Coordinates, p *player.Player) error {
	return c.submit(ctx, f, "dock", sectorRequest{
		Profile: p.ProfileKey.String(),
		Sector:  coordinates.ToArray(),
	})
}

func (c *GatewayClient) Undock(ctx context.Context, f *fleet.FleetInfo, coordinates shared.Coordinates, p *player.Player) error {
	return c.submit(ctx, f, "undock", sectorRequest{
		Profile: p.ProfileKey.String(),
		Sector:  coordinates.ToArray(),
	})
}

func (c *GatewayClient) Move(ctx context.Context, f *fleet.FleetInfo, target shared.Coordinates, mode shared.TravelMode, p *player.Player) error {
	return c.submit(ctx, f, "move", moveRequest{
		Profile: p.ProfileKey.String(),
		Target:  target.ToArray(),
		Mode:    mode.Name(),
	})
}

func (c *GatewayClient) LoadCargo(ctx context.Context, f *fleet.FleetInfo, p *player.Player, mint shared.EntityID, amount int) error {
	return c.submit(ctx, f, "cargo/load", cargoRequest{
		Profile: p.ProfileKey.String(),
		Mint:    mint.String(),
		Amount:  amount,
	})
}

func (c *GatewayClient) UnloadCargo(ctx context.Context, f *fleet.FleetInfo, p *player.Player, mint shared.EntityID, amount int) error {
	return c.submit(ctx, f, "cargo/unload", cargoRequest{
		Profile: p.ProfileKey.String(),
		Mint:    mint.String(),
		Amount:  amount,
	})
}

func (c *GatewayClient) StartMining(
	ctx context.Context,
	f *fleet.FleetInfo,
	p *player.Player,
	mineable world.Mineable,
	starbasePlayer *player.StarbasePlayer,
) error {
	return c.submit(ctx, f, "mining/start", startMiningRequest{
		Profile:        p.ProfileKey.String(),
		Starbase:       mineable.Starbase.Key.String(),
		StarbasePlayer: starbasePlayer.Key.String(),
		Planet:         mineable.Planet.Key.String(),
		Resource:       mineable.Resource.Key.String(),
		MineItem:       mineable.MineItem.Key.String(),
	})
}

var (
	_ common.FleetActions  = (*GatewayClient)(nil)
	_ common.BalanceReader = (*GatewayClient)(nil)
)
