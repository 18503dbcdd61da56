package mining

import (
	"context"
	"fmt"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// Guard starts mining cycles only from states that allow it
type Guard struct {
	actions  common.FleetActions
	resolver player.StarbasePlayerResolver
}

func NewGuard(actions common.FleetActions, resolver player.StarbasePlayerResolver) *Guard {
	return &Guard{
		actions:  actions,
		resolver: resolver,
	}
}

// RequestMine starts mining mineable with f.
//
// A fleet already mining is left alone. A docked fleet is undocked first and
// then continues to mining in the same call. A fleet in transit cannot mine
// and is left for a later tick. Gateway failures are returned unchanged.
func (g *Guard) RequestMine(
	ctx context.Context,
	f *fleet.FleetInfo,
	p *player.Player,
	mineable world.Mineable,
) (strategy.Decision, error) {
	logger := common.LoggerFromContext(ctx)

	if fleet.IsMoving(f.State()) {
		logger.Log(common.LevelInfo, fmt.Sprintf("%s is moving, cannot mine", f.Name()), nil)
		return strategy.NoAction(strategy.ReasonInTransit), nil
	}

	var actions []strategy.Action

	switch state := f.State().(type) {
	case fleet.MineAsteroid:
		logger.Log(common.LevelWarning, fmt.Sprintf("%s is already mining", f.Name()), map[string]interface{}{
			"fleet":    f.Name(),
			"resource": state.Resource.String(),
		})
		return strategy.NoAction(strategy.ReasonAlreadyMining), nil
	case fleet.StarbaseLoadingBay:
		logger.Log(common.LevelInfo, fmt.Sprintf(
			"%s is in the loading bay at %s, undocking...", f.Name(), state.Starbase.Short(),
		), nil)
		undock := strategy.Action{Kind: strategy.ActionUndock, Target: f.Location()}
		if err := g.actions.Undock(ctx, f, f.Location(), p); err != nil {
			return strategy.Issue(strategy.ReasonStartMining, undock), fmt.Errorf("failed to undock: %w", err)
		}
		actions = append(actions, undock)
	}

	starbasePlayer, err := g.resolver.StarbasePlayer(ctx, p, mineable.Starbase.Key)
	if err != nil {
		return strategy.Issue(strategy.ReasonStartMining, actions...), fmt.Errorf("failed to resolve starbase player: %w", err)
	}

	logger.Log(common.LevelInfo, fmt.Sprintf(
		"%s starts mining %s on %s", f.Name(), mineable.MineItem.Name, mineable.Planet.Name,
	), nil)

	actions = append(actions, strategy.Action{Kind: strategy.ActionStartMining, Resource: mineable.Resource.Key})
	decision := strategy.Issue(strategy.ReasonStartMining, actions...)
	if err := g.actions.StartMining(ctx, f, p, mineable, starbasePlayer); err != nil {
		return decision, fmt.Errorf("failed to start mining: %w", err)
	}
	return decision, nil
}
