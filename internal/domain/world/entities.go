package world

import "github.com/andrescamacho/basedbot-go/internal/domain/shared"

// Starbase is a dockable base located in a sector
type Starbase struct {
	Key    shared.EntityID
	Name   string
	Sector shared.Coordinates
}

// Planet is a celestial body; asteroid belts are planets too
type Planet struct {
	Key    shared.EntityID
	Name   string
	Sector shared.Coordinates
}

// MineItem describes what mining a resource yields
type MineItem struct {
	Key  shared.EntityID
	Name string
	Mint shared.EntityID
}

// Resource is a mineable deposit on a planet
type Resource struct {
	Key      shared.EntityID
	Location shared.EntityID // planet key
	MineItem shared.EntityID
}

// Mineable is a resolved (starbase, planet, resource, mine item) tuple that
// a fleet docked at Starbase can start mining
type Mineable struct {
	Starbase Starbase
	Planet   Planet
	Resource Resource
	MineItem MineItem
}

// DisplayName returns a display name, falling back to the short key
func (s Starbase) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Key.Short()
}
