package strategy

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// ActionKind names a primitive fleet instruction
type ActionKind string

const (
	ActionDock        ActionKind = "dock"
	ActionUndock      ActionKind = "undock"
	ActionMove        ActionKind = "move"
	ActionLoadCargo   ActionKind = "load_cargo"
	ActionUnloadCargo ActionKind = "unload_cargo"
	ActionStartMining ActionKind = "start_mining"
)

// Reason explains why a tick produced the decision it did
type Reason string

const (
	ReasonUnloadCargo        Reason = "unload_cargo"
	ReasonRefuel             Reason = "refuel"
	ReasonRearm              Reason = "rearm"
	ReasonLoadCargo          Reason = "load_cargo"
	ReasonDepart             Reason = "depart"
	ReasonHeadToTarget       Reason = "head_to_target"
	ReasonReturnHome         Reason = "return_home"
	ReasonStranded           Reason = "stranded"
	ReasonMisconfiguredRoute Reason = "misconfigured_route"
	ReasonArrived            Reason = "arrived"
	ReasonInTransit          Reason = "in_transit"
	ReasonRespawned          Reason = "respawned"
	ReasonRespawning         Reason = "respawning"
	ReasonManualIntervention Reason = "manual_intervention"
	ReasonAlreadyMining      Reason = "already_mining"
	ReasonStartMining        Reason = "start_mining"
	ReasonNothingToMine      Reason = "nothing_to_mine"
	ReasonUnhandledState     Reason = "unhandled_state"
)

// Action is one issued instruction. Only the fields relevant to Kind are set.
type Action struct {
	Kind     ActionKind
	Target   shared.Coordinates
	Mode     shared.TravelMode
	Mint     shared.EntityID
	Amount   int
	Resource shared.EntityID
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		return fmt.Sprintf("move(%s,%s)", a.Target, a.Mode)
	case ActionDock, ActionUndock:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
	case ActionLoadCargo, ActionUnloadCargo:
		return fmt.Sprintf("%s(%s,%d)", a.Kind, a.Mint.Short(), a.Amount)
	case ActionStartMining:
		return fmt.Sprintf("start_mining(%s)", a.Resource.Short())
	default:
		return string(a.Kind)
	}
}

// Decision is the outcome of one strategy application: the instructions
// issued, in order, and why. A decision with no actions is a no-op tick.
type Decision struct {
	Reason  Reason
	Actions []Action
}

// NoAction builds a decision that issues nothing
func NoAction(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Issue builds a decision from the issued actions
func Issue(reason Reason, actions ...Action) Decision {
	return Decision{Reason: reason, Actions: actions}
}

// IsNoop reports whether nothing was issued
func (d Decision) IsNoop() bool {
	return len(d.Actions) == 0
}

// Count returns how many actions of kind were issued
func (d Decision) Count(kind ActionKind) int {
	n := 0
	for _, a := range d.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Primary returns the last issued action kind, "none" for a no-op
func (d Decision) Primary() string {
	if d.IsNoop() {
		return "none"
	}
	return string(d.Actions[len(d.Actions)-1].Kind)
}

func (d Decision) String() string {
	if d.IsNoop() {
		return fmt.Sprintf("none [%s]", d.Reason)
	}
	parts := make([]string, len(d.Actions))
	for i, a := range d.Actions {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s [%s]", strings.Join(parts, ", "), d.Reason)
}
