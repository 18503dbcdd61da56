package fleet

import "github.com/andrescamacho/basedbot-go/internal/domain/shared"

const (
	// MinFuelRatio is the share of fuel capacity a fleet keeps before departing
	MinFuelRatio = 10

	// AmmoReserveSlack is how far below full ammo may drop before rearming
	AmmoReserveSlack = 100

	// StrandedFuelLevel - below this an idle fleet away from a starbase cannot move
	StrandedFuelLevel = 1
)

// CargoLevels is the fleet's current hold contents. Cargo is keyed by mint;
// fuel and ammo live in their own tanks.
type CargoLevels struct {
	Cargo map[shared.EntityID]int
	Fuel  int
	Ammo  int
}

// CargoStats holds the fleet's capacities
type CargoStats struct {
	CargoCapacity int
	FuelCapacity  int
	AmmoCapacity  int
}

// Load sums cargo quantities, skipping the excluded mints (food)
func (c CargoLevels) Load(exclude ...shared.EntityID) int {
	total := 0
	for mint, units := range c.Cargo {
		if containsMint(exclude, mint) {
			continue
		}
		total += units
	}
	return total
}

// Units returns the amount held of a single mint (0 if absent)
func (c CargoLevels) Units(mint shared.EntityID) int {
	return c.Cargo[mint]
}

func containsMint(mints []shared.EntityID, mint shared.EntityID) bool {
	for _, m := range mints {
		if m == mint {
			return true
		}
	}
	return false
}
