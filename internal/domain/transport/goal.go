package transport

import (
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// GoalConfig describes a shuttle route between two starbases.
// Immutable after construction; the direction latch lives in a LatchStore.
type GoalConfig struct {
	worldMap   *world.WorldMap
	homeBase   shared.Coordinates
	targetBase shared.Coordinates
	resources  []shared.EntityID
	travelMode shared.TravelMode
}

// GoalConfigParams holds the builder input. TravelMode is optional and
// defaults to auto.
type GoalConfigParams struct {
	Map        *world.WorldMap
	HomeBase   shared.Coordinates
	TargetBase shared.Coordinates
	Resources  []shared.EntityID
	TravelMode *shared.TravelMode
}

// NewGoalConfig validates params and applies the default travel mode
func NewGoalConfig(params GoalConfigParams) (GoalConfig, error) {
	if params.Map == nil {
		return GoalConfig{}, shared.NewValidationError("map", "world map is required")
	}

	mode := shared.TravelModeAuto
	if params.TravelMode != nil {
		mode = *params.TravelMode
	}

	return GoalConfig{
		worldMap:   params.Map,
		homeBase:   params.HomeBase,
		targetBase: params.TargetBase,
		resources:  dedupe(params.Resources),
		travelMode: mode,
	}, nil
}

// Transport is the shorthand for a route using the default travel mode
func Transport(worldMap *world.WorldMap, home, target shared.Coordinates, resources []shared.EntityID) (GoalConfig, error) {
	return NewGoalConfig(GoalConfigParams{
		Map:        worldMap,
		HomeBase:   home,
		TargetBase: target,
		Resources:  resources,
	})
}

func (c GoalConfig) Map() *world.WorldMap           { return c.worldMap }
func (c GoalConfig) HomeBase() shared.Coordinates   { return c.homeBase }
func (c GoalConfig) TargetBase() shared.Coordinates { return c.targetBase }
func (c GoalConfig) TravelMode() shared.TravelMode  { return c.travelMode }

// Resources returns a copy of the configured resource mints
func (c GoalConfig) Resources() []shared.EntityID {
	return append([]shared.EntityID(nil), c.resources...)
}

// IsSameBase reports a misconfigured route whose ends coincide
func (c GoalConfig) IsSameBase() bool {
	return c.homeBase.Equals(c.targetBase)
}

// RouteKey returns the latch key for fleetName on this route
func (c GoalConfig) RouteKey(fleetName string) RouteKey {
	return NewRouteKey(fleetName, c.homeBase, c.targetBase)
}

func dedupe(ids []shared.EntityID) []shared.EntityID {
	seen := make(map[shared.EntityID]struct{}, len(ids))
	out := make([]shared.EntityID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
