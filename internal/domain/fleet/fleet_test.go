package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

const (
	foodMint shared.EntityID = "food"
	fuelMint shared.EntityID = "fuel"
	ammoMint shared.EntityID = "ammo"
	oreMint  shared.EntityID = "ore"
)

func newFleet(t *testing.T, levels fleet.CargoLevels, stats fleet.CargoStats) *fleet.FleetInfo {
	t.Helper()
	f, err := fleet.NewFleetInfo("key", "Hauler", shared.NewCoordinates(1, 2), fleet.Idle{}, levels, stats, fleet.Holds{
		CargoHold: "hold",
		FuelTank:  "tank",
		AmmoBank:  "bank",
	})
	require.NoError(t, err)
	return f
}

func TestNewFleetInfo_Validation(t *testing.T) {
	stats := fleet.CargoStats{CargoCapacity: 10, FuelCapacity: 10, AmmoCapacity: 10}

	_, err := fleet.NewFleetInfo("", "Hauler", shared.Coordinates{}, fleet.Idle{}, fleet.CargoLevels{}, stats, fleet.Holds{})
	assert.Error(t, err)

	_, err = fleet.NewFleetInfo("key", "", shared.Coordinates{}, fleet.Idle{}, fleet.CargoLevels{}, stats, fleet.Holds{})
	assert.Error(t, err)

	_, err = fleet.NewFleetInfo("key", "Hauler", shared.Coordinates{}, nil, fleet.CargoLevels{}, stats, fleet.Holds{})
	assert.Error(t, err)

	_, err = fleet.NewFleetInfo("key", "Hauler", shared.Coordinates{}, fleet.Idle{}, fleet.CargoLevels{}, fleet.CargoStats{FuelCapacity: -1}, fleet.Holds{})
	assert.Error(t, err)

	f, err := fleet.NewFleetInfo("key", "Hauler", shared.Coordinates{}, fleet.Idle{}, fleet.CargoLevels{}, stats, fleet.Holds{})
	require.NoError(t, err)
	assert.NotNil(t, f.CargoLevels().Cargo)
}

func TestFleetInfo_FuelThresholds(t *testing.T) {
	stats := fleet.CargoStats{FuelCapacity: 1000, AmmoCapacity: 1000}

	tests := []struct {
		fuel       int
		enough     bool
		outOfFuel  bool
		travelFuel int
	}{
		{fuel: 100, enough: true, travelFuel: 100},
		{fuel: 99, enough: false, travelFuel: 100},
		{fuel: 0, enough: false, outOfFuel: true, travelFuel: 100},
	}

	for _, tt := range tests {
		f := newFleet(t, fleet.CargoLevels{Fuel: tt.fuel}, stats)
		assert.Equal(t, tt.enough, f.HasEnoughFuel(), "fuel %d", tt.fuel)
		assert.Equal(t, tt.outOfFuel, f.IsOutOfFuel(), "fuel %d", tt.fuel)
		assert.Equal(t, tt.travelFuel, f.TravelFuel())
		assert.Equal(t, 1000-tt.fuel, f.MissingFuel())
	}
}

func TestFleetInfo_AmmoSlack(t *testing.T) {
	stats := fleet.CargoStats{AmmoCapacity: 1000}

	assert.True(t, newFleet(t, fleet.CargoLevels{Ammo: 900}, stats).HasEnoughAmmo())
	assert.False(t, newFleet(t, fleet.CargoLevels{Ammo: 899}, stats).HasEnoughAmmo())
	assert.Equal(t, 101, newFleet(t, fleet.CargoLevels{Ammo: 899}, stats).MissingAmmo())
}

func TestCargoLevels_LoadExcludesFood(t *testing.T) {
	levels := fleet.CargoLevels{Cargo: map[shared.EntityID]int{foodMint: 200, oreMint: 50}}

	assert.Equal(t, 50, levels.Load(foodMint))
	assert.Equal(t, 250, levels.Load())
	assert.Equal(t, 0, levels.Units("missing"))
}

func TestFleetInfo_HoldFor(t *testing.T) {
	f := newFleet(t, fleet.CargoLevels{}, fleet.CargoStats{})

	assert.Equal(t, shared.EntityID("tank"), f.HoldFor(fuelMint, fuelMint, ammoMint))
	assert.Equal(t, shared.EntityID("bank"), f.HoldFor(ammoMint, fuelMint, ammoMint))
	assert.Equal(t, shared.EntityID("hold"), f.HoldFor(oreMint, fuelMint, ammoMint))
}

func TestIsMoving(t *testing.T) {
	assert.True(t, fleet.IsMoving(fleet.MoveWarp{}))
	assert.True(t, fleet.IsMoving(fleet.MoveSubwarp{}))
	assert.False(t, fleet.IsMoving(fleet.Idle{}))
	assert.Equal(t, fleet.StateType("Fighting"), fleet.Unknown{Name: "Fighting"}.Type())
}
