package mining

import (
	"context"
	"fmt"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// StrategyName is the registry name of the mining strategy
const StrategyName = "mine"

// Goal names where to mine and what
type Goal struct {
	Map        *world.WorldMap
	MineBase   shared.Coordinates
	Mint       shared.EntityID // mint the mine item yields
	TravelMode shared.TravelMode
}

// Strategy moves a fleet to its mine base and keeps it mining there.
// Ending a mining cycle is not automated.
type Strategy struct {
	goal    Goal
	player  *player.Player
	guard   *Guard
	actions common.FleetActions
}

func NewStrategy(goal Goal, p *player.Player, guard *Guard, actions common.FleetActions) *Strategy {
	return &Strategy{
		goal:    goal,
		player:  p,
		guard:   guard,
		actions: actions,
	}
}

func (s *Strategy) Name() string { return StrategyName }

func (s *Strategy) Goal() Goal { return s.goal }

func (s *Strategy) Apply(ctx context.Context, f *fleet.FleetInfo) (strategy.Decision, error) {
	logger := common.LoggerFromContext(ctx)

	if fleet.IsMoving(f.State()) {
		return strategy.NoAction(strategy.ReasonInTransit), nil
	}

	switch state := f.State().(type) {
	case fleet.MineAsteroid:
		return s.guard.RequestMine(ctx, f, s.player, world.Mineable{})
	case fleet.Respawn:
		return strategy.NoAction(strategy.ReasonRespawning), nil
	case fleet.Unknown:
		logger.Log(common.LevelInfo, fmt.Sprintf("%s is %s", f.Name(), state.Name), nil)
		return strategy.NoAction(strategy.ReasonUnhandledState), nil
	case fleet.Idle, fleet.StarbaseLoadingBay:
	default:
		return strategy.Decision{}, shared.NewFleetError(f.Name(), fmt.Sprintf("unhandled fleet state %T", state))
	}

	if !f.Location().Equals(s.goal.MineBase) {
		if _, docked := f.State().(fleet.StarbaseLoadingBay); docked {
			decision := strategy.Issue(strategy.ReasonDepart, strategy.Action{Kind: strategy.ActionUndock, Target: f.Location()})
			if err := s.actions.Undock(ctx, f, f.Location(), s.player); err != nil {
				return decision, fmt.Errorf("failed to undock: %w", err)
			}
			return decision, nil
		}
		if f.IsOutOfFuel() {
			logger.Log(common.LevelWarning, fmt.Sprintf("%s is out of fuel and cannot reach the mine base", f.Name()), nil)
			return strategy.NoAction(strategy.ReasonStranded), nil
		}
		logger.Log(common.LevelInfo, fmt.Sprintf("%s is heading to mine base %s", f.Name(), s.goal.MineBase), nil)
		decision := strategy.Issue(strategy.ReasonHeadToTarget, strategy.Action{
			Kind:   strategy.ActionMove,
			Target: s.goal.MineBase,
			Mode:   s.goal.TravelMode,
		})
		if err := s.actions.Move(ctx, f, s.goal.MineBase, s.goal.TravelMode, s.player); err != nil {
			return decision, fmt.Errorf("failed to move to %s: %w", s.goal.MineBase, err)
		}
		return decision, nil
	}

	mineable, ok := s.mineable()
	if !ok {
		logger.Log(common.LevelWarning, fmt.Sprintf("Nothing yielding %s is mineable at %s", s.goal.Mint.Short(), s.goal.MineBase), nil)
		return strategy.NoAction(strategy.ReasonNothingToMine), nil
	}

	return s.guard.RequestMine(ctx, f, s.player, mineable)
}

func (s *Strategy) mineable() (world.Mineable, bool) {
	mineables, _ := s.goal.Map.MineablesAt(s.goal.MineBase)
	for _, m := range mineables {
		if m.MineItem.Mint == s.goal.Mint {
			return m, true
		}
	}
	return world.Mineable{}, false
}

var _ strategy.Strategy = (*Strategy)(nil)
