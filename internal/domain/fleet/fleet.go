package fleet

import (
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// Holds groups the token accounts a fleet stores goods in
type Holds struct {
	CargoHold shared.EntityID
	FuelTank  shared.EntityID
	AmmoBank  shared.EntityID
}

// FleetInfo is a read-only snapshot of one fleet, produced fresh every tick
// by the gateway. Controllers never mutate it.
//
// Invariants:
// - Key and Name are non-empty
// - State is never nil (unmodelled variants decode to Unknown)
// - capacities are non-negative
type FleetInfo struct {
	key         shared.EntityID
	name        string
	location    shared.Coordinates
	state       State
	cargoLevels CargoLevels
	cargoStats  CargoStats
	holds       Holds
}

// NewFleetInfo creates a new FleetInfo with validation
func NewFleetInfo(
	key shared.EntityID,
	name string,
	location shared.Coordinates,
	state State,
	cargoLevels CargoLevels,
	cargoStats CargoStats,
	holds Holds,
) (*FleetInfo, error) {
	if key.IsZero() {
		return nil, shared.NewInvalidFleetDataError(name, "fleet key cannot be empty")
	}
	if name == "" {
		return nil, shared.NewInvalidFleetDataError(key.Short(), "fleet name cannot be empty")
	}
	if state == nil {
		return nil, shared.NewInvalidFleetDataError(name, "fleet state cannot be nil")
	}
	if cargoStats.CargoCapacity < 0 || cargoStats.FuelCapacity < 0 || cargoStats.AmmoCapacity < 0 {
		return nil, shared.NewInvalidFleetDataError(name, "capacities cannot be negative")
	}
	if cargoLevels.Cargo == nil {
		cargoLevels.Cargo = map[shared.EntityID]int{}
	}

	return &FleetInfo{
		key:         key,
		name:        name,
		location:    location,
		state:       state,
		cargoLevels: cargoLevels,
		cargoStats:  cargoStats,
		holds:       holds,
	}, nil
}

func (f *FleetInfo) Key() shared.EntityID         { return f.key }
func (f *FleetInfo) Name() string                 { return f.name }
func (f *FleetInfo) Location() shared.Coordinates { return f.location }
func (f *FleetInfo) State() State                 { return f.state }
func (f *FleetInfo) CargoLevels() CargoLevels     { return f.cargoLevels }
func (f *FleetInfo) CargoStats() CargoStats       { return f.cargoStats }
func (f *FleetInfo) Holds() Holds                 { return f.holds }

// HasEnoughFuel reports fuel >= 10% of capacity
func (f *FleetInfo) HasEnoughFuel() bool {
	return f.cargoLevels.Fuel*MinFuelRatio >= f.cargoStats.FuelCapacity
}

// HasEnoughAmmo reports ammo within AmmoReserveSlack of capacity
func (f *FleetInfo) HasEnoughAmmo() bool {
	return f.cargoLevels.Ammo >= f.cargoStats.AmmoCapacity-AmmoReserveSlack
}

// MissingFuel is the amount needed to fill the fuel tank
func (f *FleetInfo) MissingFuel() int {
	return f.cargoStats.FuelCapacity - f.cargoLevels.Fuel
}

// MissingAmmo is the amount needed to fill the ammo bank
func (f *FleetInfo) MissingAmmo() int {
	return f.cargoStats.AmmoCapacity - f.cargoLevels.Ammo
}

// TravelFuel is the partial refuel taken at a foreign starbase
func (f *FleetInfo) TravelFuel() int {
	return f.cargoStats.FuelCapacity / MinFuelRatio
}

// IsOutOfFuel reports fuel below the level needed to move at all
func (f *FleetInfo) IsOutOfFuel() bool {
	return f.cargoLevels.Fuel < StrandedFuelLevel
}

// HoldFor returns the token account that stores mint: the fuel tank for
// fuel, the ammo bank for ammo and the cargo hold for everything else.
func (f *FleetInfo) HoldFor(mint, fuelMint, ammoMint shared.EntityID) shared.EntityID {
	switch mint {
	case fuelMint:
		return f.holds.FuelTank
	case ammoMint:
		return f.holds.AmmoBank
	default:
		return f.holds.CargoHold
	}
}

func (f *FleetInfo) String() string {
	return f.name + "@" + f.location.String()
}
