package fleet

import (
	"time"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// StateType names the active variant of a fleet's on-chain state
type StateType string

const (
	StateIdle               StateType = "Idle"
	StateStarbaseLoadingBay StateType = "StarbaseLoadingBay"
	StateMoveWarp           StateType = "MoveWarp"
	StateMoveSubwarp        StateType = "MoveSubwarp"
	StateMineAsteroid       StateType = "MineAsteroid"
	StateRespawn            StateType = "Respawn"
)

// State is the closed set of fleet state variants. Exactly one is active per
// observation; the unexported marker keeps the set closed to this package.
type State interface {
	Type() StateType
	isFleetState()
}

// Idle - fleet is floating in open space at Sector
type Idle struct {
	Sector shared.Coordinates
}

// StarbaseLoadingBay - fleet is docked at Starbase
type StarbaseLoadingBay struct {
	Starbase shared.EntityID
}

// MoveWarp - fleet is warping and arrives at WarpFinish
type MoveWarp struct {
	FromSector shared.Coordinates
	ToSector   shared.Coordinates
	WarpFinish time.Time
}

// MoveSubwarp - fleet is subwarping and arrives at ArrivalTime
type MoveSubwarp struct {
	FromSector  shared.Coordinates
	ToSector    shared.Coordinates
	ArrivalTime time.Time
}

// MineAsteroid - fleet is mining Resource on Asteroid (a planet)
type MineAsteroid struct {
	Asteroid shared.EntityID
	Resource shared.EntityID
	Start    time.Time
}

// Respawn - fleet was destroyed and becomes available again at ETA
type Respawn struct {
	Sector          shared.Coordinates
	ETA             time.Time
	DestructionTime time.Time
}

// Unknown carries the raw type name of a variant this build does not model
type Unknown struct {
	Name string
}

func (Idle) Type() StateType               { return StateIdle }
func (StarbaseLoadingBay) Type() StateType { return StateStarbaseLoadingBay }
func (MoveWarp) Type() StateType           { return StateMoveWarp }
func (MoveSubwarp) Type() StateType        { return StateMoveSubwarp }
func (MineAsteroid) Type() StateType       { return StateMineAsteroid }
func (Respawn) Type() StateType            { return StateRespawn }
func (u Unknown) Type() StateType          { return StateType(u.Name) }

func (Idle) isFleetState()               {}
func (StarbaseLoadingBay) isFleetState() {}
func (MoveWarp) isFleetState()           {}
func (MoveSubwarp) isFleetState()        {}
func (MineAsteroid) isFleetState()       {}
func (Respawn) isFleetState()            {}
func (Unknown) isFleetState()            {}

// IsMoving reports whether the state is a warp or subwarp leg
func IsMoving(s State) bool {
	switch s.(type) {
	case MoveWarp, MoveSubwarp:
		return true
	default:
		return false
	}
}
