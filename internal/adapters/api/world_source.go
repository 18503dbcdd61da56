package api

import (
	"context"
	"fmt"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

func (c *GatewayClient) ListStarbases(ctx context.Context) ([]world.Starbase, error) {
	var dtos []StarbaseDTO
	if err := c.get(ctx, "/starbases", "/v1/starbases", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list starbases: %w", err)
	}

	starbases := make([]world.Starbase, 0, len(dtos))
	for _, d := range dtos {
		starbases = append(starbases, world.Starbase{
			Key:    shared.EntityID(d.Key),
			Name:   d.Name,
			Sector: shared.CoordinatesFromSector(d.Sector),
		})
	}
	return starbases, nil
}

func (c *GatewayClient) ListPlanets(ctx context.Context) ([]world.Planet, error) {
	var dtos []PlanetDTO
	if err := c.get(ctx, "/planets", "/v1/planets", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list planets: %w", err)
	}

	planets := make([]world.Planet, 0, len(dtos))
	for _, d := range dtos {
		planets = append(planets, world.Planet{
			Key:    shared.EntityID(d.Key),
			Name:   d.Name,
			Sector: shared.CoordinatesFromSector(d.Sector),
		})
	}
	return planets, nil
}

func (c *GatewayClient) ListMineItems(ctx context.Context) ([]world.MineItem, error) {
	var dtos []MineItemDTO
	if err := c.get(ctx, "/mine-items", "/v1/mine-items", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list mine items: %w", err)
	}

	items := make([]world.MineItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, world.MineItem{
			Key:  shared.EntityID(d.Key),
			Name: d.Name,
			Mint: shared.EntityID(d.Mint),
		})
	}
	return items, nil
}

func (c *GatewayClient) ListResources(ctx context.Context) ([]world.Resource, error) {
	var dtos []ResourceDTO
	if err := c.get(ctx, "/resources", "/v1/resources", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	resources := make([]world.Resource, 0, len(dtos))
	for _, d := range dtos {
		resources = append(resources, world.Resource{
			Key:      shared.EntityID(d.Key),
			Location: shared.EntityID(d.Location),
			MineItem: shared.EntityID(d.MineItem),
		})
	}
	return resources, nil
}

var _ world.Source = (*GatewayClient)(nil)
