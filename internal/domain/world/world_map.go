package world

import (
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// WorldMap joins starbases, planets, resources and mine items by spatial
// co-location. It is built in one go and never patched; a refresh builds a
// new map.
//
// Invariants:
// - every key in mineItems comes from a resource present in resources
// - a planet is listed under the starbase sharing its exact sector
type WorldMap struct {
	starbases []Starbase
	planets   map[shared.EntityID][]Planet   // starbase key -> planets
	resources map[shared.EntityID][]Resource // planet key -> resources
	mineItems map[shared.EntityID]MineItem   // resource key -> mine item
}

// Build creates the map from the four collections. A resource that names a
// mine item missing from mineItems fails the whole build.
func Build(starbases []Starbase, planets []Planet, mineItems []MineItem, resources []Resource) (*WorldMap, error) {
	m := &WorldMap{
		starbases: append([]Starbase(nil), starbases...),
		planets:   make(map[shared.EntityID][]Planet, len(starbases)),
		resources: make(map[shared.EntityID][]Resource),
		mineItems: make(map[shared.EntityID]MineItem, len(resources)),
	}

	for _, starbase := range starbases {
		planetSet := m.planets[starbase.Key]
		for _, planet := range planets {
			if planet.Sector == starbase.Sector && !containsPlanet(planetSet, planet.Key) {
				planetSet = append(planetSet, planet)
			}
		}
		m.planets[starbase.Key] = planetSet
	}

	itemsByKey := make(map[shared.EntityID]MineItem, len(mineItems))
	for _, item := range mineItems {
		itemsByKey[item.Key] = item
	}

	for _, resource := range resources {
		item, ok := itemsByKey[resource.MineItem]
		if !ok {
			return nil, NewStructuralInconsistencyError(resource.Key, resource.MineItem)
		}
		m.mineItems[resource.Key] = item

		if !containsResource(m.resources[resource.Location], resource.Key) {
			m.resources[resource.Location] = append(m.resources[resource.Location], resource)
		}
	}

	return m, nil
}

// Starbases returns all starbases
func (m *WorldMap) Starbases() []Starbase {
	return m.starbases
}

// StarbaseAt finds the starbase located at coordinates
func (m *WorldMap) StarbaseAt(coordinates shared.Coordinates) (Starbase, bool) {
	for _, starbase := range m.starbases {
		if starbase.Sector.Equals(coordinates) {
			return starbase, true
		}
	}
	return Starbase{}, false
}

// PlanetsByStarbase returns the planets co-located with starbase
func (m *WorldMap) PlanetsByStarbase(starbase Starbase) []Planet {
	return m.planets[starbase.Key]
}

// ResourcesByPlanet returns the resources on planet
func (m *WorldMap) ResourcesByPlanet(planet Planet) []Resource {
	return m.resources[planet.Key]
}

// MineItemByResource returns what mining resource yields
func (m *WorldMap) MineItemByResource(resource Resource) (MineItem, bool) {
	item, ok := m.mineItems[resource.Key]
	return item, ok
}

// MineablesAt returns every mineable reachable from the starbase at
// coordinates. found is false when no starbase sits there; that is a normal
// "nothing to mine" outcome, not an error.
func (m *WorldMap) MineablesAt(coordinates shared.Coordinates) (mineables []Mineable, found bool) {
	starbase, ok := m.StarbaseAt(coordinates)
	if !ok {
		return nil, false
	}

	for _, planet := range m.PlanetsByStarbase(starbase) {
		for _, resource := range m.ResourcesByPlanet(planet) {
			item, ok := m.MineItemByResource(resource)
			if !ok {
				continue
			}
			mineables = append(mineables, Mineable{
				Starbase: starbase,
				Planet:   planet,
				Resource: resource,
				MineItem: item,
			})
		}
	}

	return mineables, true
}

func containsPlanet(planets []Planet, key shared.EntityID) bool {
	for _, p := range planets {
		if p.Key == key {
			return true
		}
	}
	return false
}

func containsResource(resources []Resource, key shared.EntityID) bool {
	for _, r := range resources {
		if r.Key == key {
			return true
		}
	}
	return false
}
