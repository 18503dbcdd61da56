package common

import (
	"context"
	"time"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// FleetActions are the primitive fleet instructions. Each call validates,
// builds and submits a transaction, then blocks until it is confirmed or
// rejected. Implementations only retry submissions the gateway refused
// before anything reached the chain.
type FleetActions interface {
	// Dock docks the fleet at the starbase located at coordinates
	Dock(ctx context.Context, f *fleet.FleetInfo, coordinates shared.Coordinates, p *player.Player) error

	// Undock leaves the loading bay of the starbase at coordinates
	Undock(ctx context.Context, f *fleet.FleetInfo, coordinates shared.Coordinates, p *player.Player) error

	// Move sends the fleet to target using mode
	Move(ctx context.Context, f *fleet.FleetInfo, target shared.Coordinates, mode shared.TravelMode, p *player.Player) error

	// LoadCargo moves amount of mint from the starbase into the fleet
	LoadCargo(ctx context.Context, f *fleet.FleetInfo, p *player.Player, mint shared.EntityID, amount int) error

	// UnloadCargo moves amount of mint from the fleet into the starbase
	UnloadCargo(ctx context.Context, f *fleet.FleetInfo, p *player.Player, mint shared.EntityID, amount int) error

	// StartMining starts a mining cycle on mineable
	StartMining(ctx context.Context, f *fleet.FleetInfo, p *player.Player, mineable world.Mineable, starbasePlayer *player.StarbasePlayer) error
}

// BalanceReader reads token balances of fleet holds
type BalanceReader interface {
	// TokenBalance returns the amount of mint held by the token account owner hold
	TokenBalance(ctx context.Context, hold, mint shared.EntityID) (int, error)
}

// CycleRecord is the persisted summary of one cycle
type CycleRecord struct {
	CycleID    string
	ProfileKey string
	StartedAt  time.Time
	Duration   time.Duration
	Observed   int
	Ticked     int
	Failures   int
}

// CycleHistory stores cycle summaries
type CycleHistory interface {
	Record(ctx context.Context, record CycleRecord) error
	Recent(ctx context.Context, profileKey string, limit int) ([]CycleRecord, error)
}
