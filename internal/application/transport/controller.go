package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
)

// Dependencies are the collaborators a transport controller calls out to
type Dependencies struct {
	Actions  common.FleetActions
	Balances common.BalanceReader
	Latches  domainTransport.LatchStore
	Clock    shared.Clock
}

// Controller is the per-route state machine that shuttles resources from a
// home starbase to a target starbase and back.
//
// Each Transition call inspects one fresh observation and issues at most one
// step. The only compound steps are the batched cargo loads and unloads in a
// loading bay, which are submitted concurrently and awaited together before
// the fleet undocks. All predicates are recomputed from the observation on
// every call; nothing assumes a previous step succeeded.
type Controller struct {
	config   domainTransport.GoalConfig
	player   *player.Player
	game     *player.Game
	actions  common.FleetActions
	balances common.BalanceReader
	latches  domainTransport.LatchStore
	clock    shared.Clock
}

// NewController creates a controller for one route.
// A nil clock uses RealClock, a nil latch store keeps latches in memory.
func NewController(
	config domainTransport.GoalConfig,
	p *player.Player,
	game *player.Game,
	deps Dependencies,
) *Controller {
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}
	if deps.Latches == nil {
		deps.Latches = domainTransport.NewMemoryLatchStore()
	}
	return &Controller{
		config:   config,
		player:   p,
		game:     game,
		actions:  deps.Actions,
		balances: deps.Balances,
		latches:  deps.Latches,
		clock:    deps.Clock,
	}
}

// routeView holds the predicates derived from one observation
type routeView struct {
	fleet      *fleet.FleetInfo
	location   shared.Coordinates
	cargoLoad  int
	hasCargo   bool
	enoughFuel bool
	enoughAmmo bool
	atHome     bool
	atTarget   bool
	sameBase   bool
	routeKey   domainTransport.RouteKey
}

func (c *Controller) view(f *fleet.FleetInfo) routeView {
	location := f.Location()
	cargoLoad := f.CargoLevels().Load(c.game.Mints.Food)
	return routeView{
		fleet:      f,
		location:   location,
		cargoLoad:  cargoLoad,
		hasCargo:   cargoLoad > 0,
		enoughFuel: f.HasEnoughFuel(),
		enoughAmmo: f.HasEnoughAmmo(),
		atHome:     c.config.HomeBase().Equals(location),
		atTarget:   c.config.TargetBase().Equals(location),
		sameBase:   c.config.IsSameBase(),
		routeKey:   c.config.RouteKey(f.Name()),
	}
}

// Transition decides and issues the next step for f
func (c *Controller) Transition(ctx context.Context, f *fleet.FleetInfo) (strategy.Decision, error) {
	logger := common.LoggerFromContext(ctx)
	v := c.view(f)

	logger.Log(common.LevelInfo, fmt.Sprintf(
		"%s is transporting %d resources from %s to %s",
		f.Name(), len(c.config.Resources()), c.config.HomeBase(), c.config.TargetBase(),
	), nil)

	switch state := f.State().(type) {
	case fleet.Idle:
		return c.idle(ctx, v, state)
	case fleet.StarbaseLoadingBay:
		return c.loadingBay(ctx, v, state)
	case fleet.MoveWarp:
		return c.inTransit(ctx, f, "warping", state.FromSector, state.ToSector, state.WarpFinish), nil
	case fleet.MoveSubwarp:
		return c.inTransit(ctx, f, "subwarping", state.FromSector, state.ToSector, state.ArrivalTime), nil
	case fleet.MineAsteroid:
		logger.Log(common.LevelWarning, fmt.Sprintf("%s is currently mining, need to end mine manually.", f.Name()), nil)
		return strategy.NoAction(strategy.ReasonManualIntervention), nil
	case fleet.Respawn:
		return c.respawning(ctx, f, state), nil
	case fleet.Unknown:
		logger.Log(common.LevelInfo, fmt.Sprintf("%s is %s", f.Name(), state.Name), nil)
		return strategy.NoAction(strategy.ReasonUnhandledState), nil
	default:
		return strategy.Decision{}, shared.NewFleetError(f.Name(), fmt.Sprintf("unhandled fleet state %T", state))
	}
}

func (c *Controller) idle(ctx context.Context, v routeView, state fleet.Idle) (strategy.Decision, error) {
	logger := common.LoggerFromContext(ctx)
	name := v.fleet.Name()

	starbase, atStarbase := c.config.Map().StarbaseAt(v.location)
	starbaseName := "N/A"
	if atStarbase {
		starbaseName = starbase.DisplayName()
	}
	logger.Log(common.LevelInfo, fmt.Sprintf("%s is idle at %s [Starbase: %s]", name, state.Sector, starbaseName), nil)

	if !atStarbase && v.fleet.IsOutOfFuel() {
		logger.Log(common.LevelWarning, fmt.Sprintf("%s is out of fuel and not at a starbase, need self destruction", name), nil)
		return strategy.NoAction(strategy.ReasonStranded), nil
	}

	direction, err := c.latches.Get(ctx, v.routeKey)
	if err != nil {
		return strategy.Decision{}, fmt.Errorf("failed to read route direction: %w", err)
	}

	if v.atHome {
		logger.Log(common.LevelInfo, fmt.Sprintf("%s is at home base", name), nil)
		if v.hasCargo && direction == domainTransport.DirectionInbound {
			logger.Log(common.LevelInfo, fmt.Sprintf("%s has %d cargo, docking to unload", name, v.cargoLoad), nil)
			return c.dock(ctx, v, strategy.ReasonUnloadCargo)
		}
		if !v.enoughFuel {
			logger.Log(common.LevelInfo, fmt.Sprintf("%s doesn't have enough fuel, docking to resupply", name), nil)
			return c.dock(ctx, v, strategy.ReasonRefuel)
		}
		if v.sameBase {
			logger.Log(common.LevelWarning, fmt.Sprintf(
				"%s is configured as transport fleet with home and target being the same. Noop.", name,
			), nil)
			return strategy.NoAction(strategy.ReasonMisconfiguredRoute), nil
		}
		logger.Log(common.LevelInfo, fmt.Sprintf("%s is at home base, moving to target base", name), nil)
		return c.moveTo(ctx, v, c.config.TargetBase(), domainTransport.DirectionOutbound, strategy.ReasonHeadToTarget)
	}

	if v.atTarget && !v.sameBase {
		logger.Log(common.LevelInfo, fmt.Sprintf("%s is at target base", name), nil)
		if v.hasCargo && direction == domainTransport.DirectionOutbound {
			logger.Log(common.LevelInfo, fmt.Sprintf("%s has %d cargo, docking to unload.", name, v.cargoLoad), nil)
			return c.dock(ctx, v, strategy.ReasonUnloadCargo)
		}
		if !v.enoughFuel {
			logger.Log(common.LevelInfo, fmt.Sprintf("%s doesn't have enough fuel, docking to resupply", name), nil)
			return c.dock(ctx, v, strategy.ReasonRefuel)
		}
		logger.Log(common.LevelInfo, fmt.Sprintf("%s has nothing to unload, returning home", name), nil)
		return c.moveTo(ctx, v, c.config.HomeBase(), domainTransport.DirectionInbound, strategy.ReasonReturnHome)
	}

	logger.Log(common.LevelInfo, fmt.Sprintf("%s is at %s going home", name, v.location), nil)
	return c.moveTo(ctx, v, c.config.HomeBase(), domainTransport.DirectionInbound, strategy.ReasonReturnHome)
}

func (c *Controller) loadingBay(ctx context.Context, v routeView, state fleet.StarbaseLoadingBay) (strategy.Decision, error) {
	logger := common.LoggerFromContext(ctx)
	f := v.fleet
	mints := c.game.Mints

	logger.Log(common.LevelInfo, fmt.Sprintf("%s is in the loading bay at %s", f.Name(), c.starbaseLabel(state.Starbase, v.location)), nil)

	reason := strategy.ReasonDepart
	var transfers []strategy.Action

	if v.atHome {
		if !v.enoughFuel {
			logger.Log(common.LevelInfo, fmt.Sprintf("%s is refueling", f.Name()), nil)
			return c.load(ctx, f, strategy.ReasonRefuel, mints.Fuel, f.MissingFuel())
		}
		if !v.enoughAmmo {
			logger.Log(common.LevelInfo, fmt.Sprintf("%s is rearming", f.Name()), nil)
			return c.load(ctx, f, strategy.ReasonRearm, mints.Ammo, f.MissingAmmo())
		}
		if !v.hasCargo {
			loaded, err := c.loadRouteCargo(ctx, f)
			if err != nil {
				return strategy.Issue(strategy.ReasonLoadCargo, loaded...), err
			}
			reason, transfers = strategy.ReasonLoadCargo, loaded
		}
	} else {
		if !v.enoughFuel {
			logger.Log(common.LevelInfo, fmt.Sprintf("%s is refueling", f.Name()), nil)
			return c.load(ctx, f, strategy.ReasonRefuel, mints.Fuel, f.TravelFuel())
		}
		if v.hasCargo {
			unloaded, err := c.unloadRouteCargo(ctx, f)
			if err != nil {
				return strategy.Issue(strategy.ReasonUnloadCargo, unloaded...), err
			}
			reason, transfers = strategy.ReasonUnloadCargo, unloaded
		}
	}

	undock := strategy.Action{Kind: strategy.ActionUndock, Target: v.location}
	actions := append(transfers, undock)
	if err := c.actions.Undock(ctx, f, v.location, c.player); err != nil {
		return strategy.Issue(reason, actions...), fmt.Errorf("failed to undock: %w", err)
	}
	return strategy.Issue(reason, actions...), nil
}

// loadRouteCargo splits the cargo hold evenly across the configured
// resources, fuel and ammo excluded, and loads them concurrently
func (c *Controller) loadRouteCargo(ctx context.Context, f *fleet.FleetInfo) ([]strategy.Action, error) {
	logger := common.LoggerFromContext(ctx)
	resources := c.config.Resources()
	logger.Log(common.LevelInfo, fmt.Sprintf("Loading %d cargo", len(resources)), nil)

	cargoResources := make([]shared.EntityID, 0, len(resources))
	for _, mint := range resources {
		if !c.game.Mints.IsConsumable(mint) {
			cargoResources = append(cargoResources, mint)
		}
	}
	if len(cargoResources) == 0 {
		return nil, nil
	}

	count := f.CargoStats().CargoCapacity / len(cargoResources)
	actions := make([]strategy.Action, len(cargoResources))

	var g errgroup.Group
	for i, mint := range cargoResources {
		actions[i] = strategy.Action{Kind: strategy.ActionLoadCargo, Mint: mint, Amount: count}
		g.Go(func() error {
			logger.Log(common.LevelInfo, fmt.Sprintf("Loading %d %s", count, mint), nil)
			if err := c.actions.LoadCargo(ctx, f, c.player, mint, count); err != nil {
				return fmt.Errorf("failed to load %s: %w", mint, err)
			}
			return nil
		})
	}

	return actions, g.Wait()
}

// unloadRouteCargo unloads the full held balance of every configured
// resource concurrently. Balances are queried rather than taken from the
// observation so the unload matches what the hold actually contains.
func (c *Controller) unloadRouteCargo(ctx context.Context, f *fleet.FleetInfo) ([]strategy.Action, error) {
	logger := common.LoggerFromContext(ctx)
	resources := c.config.Resources()
	logger.Log(common.LevelInfo, fmt.Sprintf("Unloading %d cargo", len(resources)), nil)

	actions := make([]strategy.Action, len(resources))

	var g errgroup.Group
	for i, mint := range resources {
		g.Go(func() error {
			hold := f.HoldFor(mint, c.game.Mints.Fuel, c.game.Mints.Ammo)
			amount, err := c.balances.TokenBalance(ctx, hold, mint)
			if err != nil {
				return fmt.Errorf("failed to read balance of %s: %w", mint, err)
			}

			actions[i] = strategy.Action{Kind: strategy.ActionUnloadCargo, Mint: mint, Amount: amount}
			logger.Log(common.LevelInfo, fmt.Sprintf("Unloading %d %s", amount, mint), nil)
			if err := c.actions.UnloadCargo(ctx, f, c.player, mint, amount); err != nil {
				return fmt.Errorf("failed to unload %s: %w", mint, err)
			}
			return nil
		})
	}

	err := g.Wait()
	return compactActions(actions), err
}

func (c *Controller) inTransit(
	ctx context.Context,
	f *fleet.FleetInfo,
	verb string,
	from, to shared.Coordinates,
	arrival time.Time,
) strategy.Decision {
	logger := common.LoggerFromContext(ctx)

	if shared.HasPassed(c.clock, arrival) {
		logger.Log(common.LevelInfo, fmt.Sprintf("%s has arrived at %s", f.Name(), to), nil)
		return strategy.NoAction(strategy.ReasonArrived)
	}

	logger.Log(common.LevelInfo, fmt.Sprintf(
		"%s %s from %s to %s. Arrival in %s. Current Position: %s",
		f.Name(), verb, from, to, c.countdown(arrival), f.Location(),
	), map[string]interface{}{
		"fleet":   f.Name(),
		"arrival": arrival,
	})
	return strategy.NoAction(strategy.ReasonInTransit)
}

func (c *Controller) respawning(ctx context.Context, f *fleet.FleetInfo, state fleet.Respawn) strategy.Decision {
	logger := common.LoggerFromContext(ctx)

	if shared.HasPassed(c.clock, state.ETA) {
		logger.Log(common.LevelInfo, fmt.Sprintf("%s has respawned", f.Name()), nil)
		return strategy.NoAction(strategy.ReasonRespawned)
	}

	logger.Log(common.LevelInfo, fmt.Sprintf(
		"%s respawning at %s. ETA: %s. Destruction time: %s",
		f.Name(), state.Sector, c.countdown(state.ETA), state.DestructionTime.Format(time.RFC3339),
	), nil)
	return strategy.NoAction(strategy.ReasonRespawning)
}

func (c *Controller) dock(ctx context.Context, v routeView, reason strategy.Reason) (strategy.Decision, error) {
	decision := strategy.Issue(reason, strategy.Action{Kind: strategy.ActionDock, Target: v.location})
	if err := c.actions.Dock(ctx, v.fleet, v.location, c.player); err != nil {
		return decision, fmt.Errorf("failed to dock: %w", err)
	}
	return decision, nil
}

// moveTo flips the route latch to direction, then moves. The latch is set
// first so a rejected move still leaves the fleet on the intended leg.
func (c *Controller) moveTo(
	ctx context.Context,
	v routeView,
	target shared.Coordinates,
	direction domainTransport.Direction,
	reason strategy.Reason,
) (strategy.Decision, error) {
	if err := c.latches.Set(ctx, v.routeKey, direction); err != nil {
		return strategy.Decision{}, fmt.Errorf("failed to record route direction: %w", err)
	}

	mode := c.config.TravelMode()
	decision := strategy.Issue(reason, strategy.Action{Kind: strategy.ActionMove, Target: target, Mode: mode})
	if err := c.actions.Move(ctx, v.fleet, target, mode, c.player); err != nil {
		return decision, fmt.Errorf("failed to move to %s: %w", target, err)
	}
	return decision, nil
}

func (c *Controller) load(
	ctx context.Context,
	f *fleet.FleetInfo,
	reason strategy.Reason,
	mint shared.EntityID,
	amount int,
) (strategy.Decision, error) {
	decision := strategy.Issue(reason, strategy.Action{Kind: strategy.ActionLoadCargo, Mint: mint, Amount: amount})
	if err := c.actions.LoadCargo(ctx, f, c.player, mint, amount); err != nil {
		return decision, fmt.Errorf("failed to load %s: %w", mint, err)
	}
	return decision, nil
}

func (c *Controller) starbaseLabel(key shared.EntityID, location shared.Coordinates) string {
	if starbase, ok := c.config.Map().StarbaseAt(location); ok && starbase.Key == key {
		return starbase.DisplayName()
	}
	return key.Short()
}

func (c *Controller) countdown(eta time.Time) string {
	return strings.TrimSpace(humanize.RelTime(c.clock.Now(), eta, "", ""))
}

// compactActions drops slots left empty by transfers that failed before
// being issued
func compactActions(actions []strategy.Action) []strategy.Action {
	out := actions[:0]
	for _, a := range actions {
		if a.Kind != "" {
			out = append(out, a)
		}
	}
	return out
}
