package world

import "context"

// Source fetches the full current entity collections from the game
type Source interface {
	ListStarbases(ctx context.Context) ([]Starbase, error)
	ListPlanets(ctx context.Context) ([]Planet, error)
	ListMineItems(ctx context.Context) ([]MineItem, error)
	ListResources(ctx context.Context) ([]Resource, error)
}
