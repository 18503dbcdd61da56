package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

func (c *GatewayClient) GetGame(ctx context.Context) (*player.Game, error) {
	var dto GameDTO
	if err := c.get(ctx, "/game", "/v1/game", &dto); err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if dto.Key == "" {
		return nil, fmt.Errorf("gateway returned a game without key")
	}

	return &player.Game{
		Key: shared.EntityID(dto.Key),
		Mints: player.GameMints{
			Food: shared.EntityID(dto.Mints.Food),
			Fuel: shared.EntityID(dto.Mints.Fuel),
			Ammo: shared.EntityID(dto.Mints.Ammo),
		},
	}, nil
}

func (c *GatewayClient) GetPlayer(ctx context.Context, profileKey string) (*player.Player, error) {
	var dto PlayerDTO
	path := fmt.Sprintf("/v1/profiles/%s", url.PathEscape(profileKey))
	if err := c.get(ctx, "/profiles/{profile}", path, &dto); err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", profileKey, err)
	}

	return player.NewPlayer(
		shared.EntityID(dto.ProfileKey),
		shared.EntityID(dto.FactionKey),
		dto.Name,
		dto.KeyIndex,
	), nil
}

func (c *GatewayClient) StarbasePlayer(ctx context.Context, p *player.Player, starbase shared.EntityID) (*player.StarbasePlayer, error) {
	var dto StarbasePlayerDTO
	path := fmt.Sprintf("/v1/profiles/%s/starbases/%s/player",
		url.PathEscape(p.ProfileKey.String()), url.PathEscape(starbase.String()))
	if err := c.get(ctx, "/profiles/{profile}/starbases/{starbase}/player", path, &dto); err != nil {
		return nil, fmt.Errorf("failed to resolve starbase player at %s: %w", starbase.Short(), err)
	}

	return &player.StarbasePlayer{
		Key:      shared.EntityID(dto.Key),
		Starbase: shared.EntityID(dto.Starbase),
		Profile:  shared.EntityID(dto.Profile),
	}, nil
}

// ListFleets returns every fleet of the profile. A fleet that fails to
// decode fails the whole listing.
func (c *GatewayClient) ListFleets(ctx context.Context, profileKey string) ([]*fleet.FleetInfo, error) {
	var dtos []FleetDTO
	path := fmt.Sprintf("/v1/profiles/%s/fleets", url.PathEscape(profileKey))
	if err := c.get(ctx, "/profiles/{profile}/fleets", path, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list fleets: %w", err)
	}

	fleets := make([]*fleet.FleetInfo, 0, len(dtos))
	for i := range dtos {
		f, err := convertFleetDTO(&dtos[i])
		if err != nil {
			return nil, err
		}
		fleets = append(fleets, f)
	}
	return fleets, nil
}

func (c *GatewayClient) GetFleet(ctx context.Context, profileKey, fleetName string) (*fleet.FleetInfo, error) {
	var dto FleetDTO
	path := fmt.Sprintf("/v1/profiles/%s/fleets/%s", url.PathEscape(profileKey), url.PathEscape(fleetName))
	if err := c.get(ctx, "/profiles/{profile}/fleets/{fleet}", path, &dto); err != nil {
		return nil, fmt.Errorf("failed to get fleet %s: %w", fleetName, err)
	}
	return convertFleetDTO(&dto)
}

func (c *GatewayClient) TokenBalance(ctx context.Context, hold, mint shared.EntityID) (int, error) {
	var dto BalanceDTO
	path := fmt.Sprintf("/v1/token-accounts/%s/balances/%s", url.PathEscape(hold.String()), url.PathEscape(mint.String()))
	if err := c.get(ctx, "/token-accounts/{owner}/balances/{mint}", path, &dto); err != nil {
		return 0, fmt.Errorf("failed to read balance of %s: %w", mint.Short(), err)
	}
	return dto.Amount, nil
}

var (
	_ player.GameReader             = (*GatewayClient)(nil)
	_ player.StarbasePlayerResolver = (*GatewayClient)(nil)
	_ fleet.FleetReader             = (*GatewayClient)(nil)
)
