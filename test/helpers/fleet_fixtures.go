package helpers

import (
	"testing"
	"time"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// Fixture mints and keys shared by application and BDD tests
const (
	FoodMint     shared.EntityID = "foodMint1111111111111111111111111111111111"
	FuelMint     shared.EntityID = "fuelMint1111111111111111111111111111111111"
	AmmoMint     shared.EntityID = "ammoMint1111111111111111111111111111111111"
	OreMint      shared.EntityID = "oreMint11111111111111111111111111111111111"
	ToolMint     shared.EntityID = "toolMint1111111111111111111111111111111111"
	CargoHoldKey shared.EntityID = "cargoHold111111111111111111111111111111111"
	FuelTankKey  shared.EntityID = "fuelTank1111111111111111111111111111111111"
	AmmoBankKey  shared.EntityID = "ammoBank1111111111111111111111111111111111"

	HomeStarbaseKey   shared.EntityID = "homeStarbase11111111111111111111111111111"
	TargetStarbaseKey shared.EntityID = "targetStarbase111111111111111111111111111"
	AsteroidKey       shared.EntityID = "asteroid111111111111111111111111111111111"
	OreResourceKey    shared.EntityID = "oreResource11111111111111111111111111111"
	OreMineItemKey    shared.EntityID = "oreMineItem11111111111111111111111111111"
)

var (
	HomeSector   = shared.NewCoordinates(0, -39)
	TargetSector = shared.NewCoordinates(40, 30)
	OpenSpace    = shared.NewCoordinates(5, 5)
)

// TestGame returns the game context used by fixtures
func TestGame() *player.Game {
	return &player.Game{
		Key: "game1111111111111111111111111111111111111",
		Mints: player.GameMints{
			Food: FoodMint,
			Fuel: FuelMint,
			Ammo: AmmoMint,
		},
	}
}

// TestPlayer returns the player used by fixtures
func TestPlayer() *player.Player {
	return player.NewPlayer("profile11111111111111111111111111111111111", "faction1111111111111111111111111111111111", "tester", 0)
}

// TestWorldSource returns a MockWorldSource holding a home starbase, a
// target starbase and one ore asteroid co-located with the target
func TestWorldSource() *MockWorldSource {
	src := NewMockWorldSource()
	src.Starbases = []world.Starbase{
		{Key: HomeStarbaseKey, Name: "MUD CSS", Sector: HomeSector},
		{Key: TargetStarbaseKey, Name: "MUD-2", Sector: TargetSector},
	}
	src.Planets = []world.Planet{
		{Key: AsteroidKey, Name: "Ore Belt", Sector: TargetSector},
	}
	src.MineItems = []world.MineItem{
		{Key: OreMineItemKey, Name: "Iron Ore", Mint: OreMint},
	}
	src.Resources = []world.Resource{
		{Key: OreResourceKey, Location: AsteroidKey, MineItem: OreMineItemKey},
	}
	return src
}

// TestWorldMap builds the world of TestWorldSource
func TestWorldMap(t *testing.T) *world.WorldMap {
	t.Helper()
	src := TestWorldSource()
	m, err := world.Build(src.Starbases, src.Planets, src.MineItems, src.Resources)
	if err != nil {
		t.Fatalf("failed to build test world map: %v", err)
	}
	return m
}

// FleetBuilder builds FleetInfo snapshots for tests. Defaults describe a
// fully supplied, empty fleet idle at the home sector.
type FleetBuilder struct {
	name     string
	key      shared.EntityID
	location shared.Coordinates
	state    fleet.State
	levels   fleet.CargoLevels
	stats    fleet.CargoStats
}

// NewFleet starts a builder for a fleet called name
func NewFleet(name string) *FleetBuilder {
	return &FleetBuilder{
		name:     name,
		key:      shared.EntityID("fleet-" + name),
		location: HomeSector,
		state:    fleet.Idle{Sector: HomeSector},
		levels: fleet.CargoLevels{
			Cargo: map[shared.EntityID]int{},
			Fuel:  1000,
			Ammo:  1000,
		},
		stats: fleet.CargoStats{
			CargoCapacity: 1000,
			FuelCapacity:  1000,
			AmmoCapacity:  1000,
		},
	}
}

// IdleAt places the fleet idle at coordinates
func (b *FleetBuilder) IdleAt(c shared.Coordinates) *FleetBuilder {
	b.location = c
	b.state = fleet.Idle{Sector: c}
	return b
}

// DockedAt places the fleet in the loading bay of starbase at c
func (b *FleetBuilder) DockedAt(starbase shared.EntityID, c shared.Coordinates) *FleetBuilder {
	b.location = c
	b.state = fleet.StarbaseLoadingBay{Starbase: starbase}
	return b
}

// At sets location without touching state
func (b *FleetBuilder) At(c shared.Coordinates) *FleetBuilder {
	b.location = c
	return b
}

// InState sets the fleet state
func (b *FleetBuilder) InState(s fleet.State) *FleetBuilder {
	b.state = s
	return b
}

func (b *FleetBuilder) WithFuel(n int) *FleetBuilder {
	b.levels.Fuel = n
	return b
}

func (b *FleetBuilder) WithAmmo(n int) *FleetBuilder {
	b.levels.Ammo = n
	return b
}

func (b *FleetBuilder) WithCargo(mint shared.EntityID, n int) *FleetBuilder {
	b.levels.Cargo[mint] = n
	return b
}

func (b *FleetBuilder) WithCapacity(cargo, fuel, ammo int) *FleetBuilder {
	b.stats = fleet.CargoStats{CargoCapacity: cargo, FuelCapacity: fuel, AmmoCapacity: ammo}
	return b
}

// Build creates the FleetInfo, failing the test on invalid data
func (b *FleetBuilder) Build(t *testing.T) *fleet.FleetInfo {
	t.Helper()
	f, err := b.BuildE()
	if err != nil {
		t.Fatalf("failed to build fleet fixture: %v", err)
	}
	return f
}

// BuildE creates the FleetInfo and returns construction errors
func (b *FleetBuilder) BuildE() (*fleet.FleetInfo, error) {
	cargo := make(map[shared.EntityID]int, len(b.levels.Cargo))
	for k, v := range b.levels.Cargo {
		cargo[k] = v
	}
	levels := b.levels
	levels.Cargo = cargo

	return fleet.NewFleetInfo(b.key, b.name, b.location, b.state, levels, b.stats, fleet.Holds{
		CargoHold: CargoHoldKey,
		FuelTank:  FuelTankKey,
		AmmoBank:  AmmoBankKey,
	})
}

// Warping returns a MoveWarp state arriving at eta
func Warping(from, to shared.Coordinates, eta time.Time) fleet.MoveWarp {
	return fleet.MoveWarp{FromSector: from, ToSector: to, WarpFinish: eta}
}
