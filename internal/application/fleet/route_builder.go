package fleet

import (
	"context"
	"fmt"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/mining"
	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/application/transport"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// Goal kinds a route can pursue
const (
	GoalTransport = "transport"
	GoalMine      = "mine"
)

// RouteSpec assigns a goal to one fleet.
// For GoalMine, Target is the mine base and Resources[0] the mint to mine.
type RouteSpec struct {
	Fleet      string
	Goal       string
	Home       shared.Coordinates
	Target     shared.Coordinates
	Resources  []shared.EntityID
	TravelMode *shared.TravelMode
}

// RouteBuilderDeps are the ports the built strategies act through
type RouteBuilderDeps struct {
	Games    player.GameReader
	Resolver player.StarbasePlayerResolver
	Actions  common.FleetActions
	Balances common.BalanceReader
	Latches  domainTransport.LatchStore
	Clock    shared.Clock
}

// RouteBuilder turns configured routes into a strategy registry bound to a
// freshly loaded world map
type RouteBuilder struct {
	profileKey string
	routes     []RouteSpec
	deps       RouteBuilderDeps
}

func NewRouteBuilder(profileKey string, routes []RouteSpec, deps RouteBuilderDeps) *RouteBuilder {
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}
	if deps.Latches == nil {
		deps.Latches = domainTransport.NewMemoryLatchStore()
	}
	return &RouteBuilder{
		profileKey: profileKey,
		routes:     routes,
		deps:       deps,
	}
}

// Build resolves game and player context once and creates one strategy per route
func (b *RouteBuilder) Build(ctx context.Context, worldMap *world.WorldMap) (*strategy.Registry, error) {
	game, err := b.deps.Games.GetGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	p, err := b.deps.Games.GetPlayer(ctx, b.profileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	registry := strategy.NewRegistry()
	guard := mining.NewGuard(b.deps.Actions, b.deps.Resolver)

	for _, route := range b.routes {
		s, err := b.strategyFor(route, worldMap, p, game, guard)
		if err != nil {
			return nil, fmt.Errorf("route for fleet %s: %w", route.Fleet, err)
		}
		if err := registry.Register(route.Fleet, s); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func (b *RouteBuilder) strategyFor(
	route RouteSpec,
	worldMap *world.WorldMap,
	p *player.Player,
	game *player.Game,
	guard *mining.Guard,
) (strategy.Strategy, error) {
	switch route.Goal {
	case GoalTransport, "":
		config, err := domainTransport.NewGoalConfig(domainTransport.GoalConfigParams{
			Map:        worldMap,
			HomeBase:   route.Home,
			TargetBase: route.Target,
			Resources:  route.Resources,
			TravelMode: route.TravelMode,
		})
		if err != nil {
			return nil, err
		}
		return transport.NewStrategy(config, p, game, transport.Dependencies{
			Actions:  b.deps.Actions,
			Balances: b.deps.Balances,
			Latches:  b.deps.Latches,
			Clock:    b.deps.Clock,
		}), nil
	case GoalMine:
		if len(route.Resources) == 0 {
			return nil, shared.NewValidationError("resources", "mine goal needs the mint to mine")
		}
		mode := shared.TravelModeAuto
		if route.TravelMode != nil {
			mode = *route.TravelMode
		}
		return mining.NewStrategy(mining.Goal{
			Map:        worldMap,
			MineBase:   route.Target,
			Mint:       route.Resources[0],
			TravelMode: mode,
		}, p, guard, b.deps.Actions), nil
	default:
		return nil, shared.NewValidationError("goal", fmt.Sprintf("unknown goal %q", route.Goal))
	}
}

var _ strategy.Builder = (*RouteBuilder)(nil)
