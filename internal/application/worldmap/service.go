package worldmap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// Service loads world maps and answers mineable lookups
type Service struct {
	source world.Source
}

func NewService(source world.Source) *Service {
	return &Service{source: source}
}

// Load fetches the four entity collections concurrently and builds a new
// map from them. Any fetch failure or inconsistency fails the whole load;
// a partial map is never returned.
func (s *Service) Load(ctx context.Context) (*world.WorldMap, error) {
	var (
		starbases []world.Starbase
		planets   []world.Planet
		mineItems []world.MineItem
		resources []world.Resource
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		starbases, err = s.source.ListStarbases(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch starbases: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		planets, err = s.source.ListPlanets(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch planets: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		mineItems, err = s.source.ListMineItems(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch mine items: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		resources, err = s.source.ListResources(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch resources: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	worldMap, err := world.Build(starbases, planets, mineItems, resources)
	if err != nil {
		return nil, fmt.Errorf("failed to build world map: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelDebug, "World map loaded", map[string]interface{}{
		"starbases":  len(starbases),
		"planets":    len(planets),
		"mine_items": len(mineItems),
		"resources":  len(resources),
	})

	return worldMap, nil
}

// MineablesAt returns what can be mined from the starbase at coordinates.
// No starbase there is logged and yields an empty result.
func MineablesAt(ctx context.Context, worldMap *world.WorldMap, coordinates shared.Coordinates) []world.Mineable {
	mineables, found := worldMap.MineablesAt(coordinates)
	if !found {
		common.LoggerFromContext(ctx).Log(common.LevelWarning, fmt.Sprintf("No starbase found at %s", coordinates), nil)
		return []world.Mineable{}
	}
	return mineables
}
