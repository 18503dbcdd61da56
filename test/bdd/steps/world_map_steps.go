package steps

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

type worldMapContext struct {
	starbases []world.Starbase
	planets   []world.Planet
	mineItems []world.MineItem
	resources []world.Resource

	worldMap  *world.WorldMap
	buildErr  error
	mineables []world.Mineable
	found     bool
}

func (c *worldMapContext) reset() {
	*c = worldMapContext{}
}

func (c *worldMapContext) theWorldContainsStarbases(table *godog.Table) error {
	for _, row := range tableRows(table) {
		x, err := cellInt(row, "x")
		if err != nil {
			return err
		}
		y, err := cellInt(row, "y")
		if err != nil {
			return err
		}
		c.starbases = append(c.starbases, world.Starbase{
			Key:    shared.EntityID(row["key"]),
			Name:   row["name"],
			Sector: shared.NewCoordinates(x, y),
		})
	}
	return nil
}

func (c *worldMapContext) theWorldContainsPlanets(table *godog.Table) error {
	for _, row := range tableRows(table) {
		x, err := cellInt(row, "x")
		if err != nil {
			return err
		}
		y, err := cellInt(row, "y")
		if err != nil {
			return err
		}
		c.planets = append(c.planets, world.Planet{
			Key:    shared.EntityID(row["key"]),
			Name:   row["name"],
			Sector: shared.NewCoordinates(x, y),
		})
	}
	return nil
}

func (c *worldMapContext) theWorldContainsMineItems(table *godog.Table) error {
	for _, row := range tableRows(table) {
		c.mineItems = append(c.mineItems, world.MineItem{
			Key:  shared.EntityID(row["key"]),
			Name: row["name"],
			Mint: shared.EntityID(row["mint"]),
		})
	}
	return nil
}

func (c *worldMapContext) theWorldContainsResources(table *godog.Table) error {
	for _, row := range tableRows(table) {
		c.resources = append(c.resources, world.Resource{
			Key:      shared.EntityID(row["key"]),
			Location: shared.EntityID(row["planet"]),
			MineItem: shared.EntityID(row["mine_item"]),
		})
	}
	return nil
}

func (c *worldMapContext) theWorldMapIsBuilt() error {
	c.worldMap, c.buildErr = world.Build(c.starbases, c.planets, c.mineItems, c.resources)
	return nil
}

func (c *worldMapContext) buildingShouldFailFor(resource, mineItem string) error {
	if c.buildErr == nil {
		return errors.New("expected the build to fail")
	}
	var inconsistent *world.StructuralInconsistencyError
	if !errors.As(c.buildErr, &inconsistent) {
		return fmt.Errorf("expected a structural inconsistency, got %T: %v", c.buildErr, c.buildErr)
	}
	if string(inconsistent.Resource) != resource || string(inconsistent.MineItem) != mineItem {
		return fmt.Errorf("expected resource %s and mine item %s, got %s and %s",
			resource, mineItem, inconsistent.Resource, inconsistent.MineItem)
	}
	return nil
}

func (c *worldMapContext) mineablesAtSectorAreListed(x, y int64) error {
	if c.buildErr != nil {
		return fmt.Errorf("world map failed to build: %w", c.buildErr)
	}
	c.mineables, c.found = c.worldMap.MineablesAt(shared.NewCoordinates(x, y))
	return nil
}

func (c *worldMapContext) theSectorShouldHaveNoStarbase() error {
	if c.found {
		return errors.New("expected no starbase at the sector")
	}
	return nil
}

func (c *worldMapContext) mineablesShouldBeFound(n int) error {
	if !c.found {
		return errors.New("expected a starbase at the sector")
	}
	if len(c.mineables) != n {
		return fmt.Errorf("expected %d mineables, got %d", n, len(c.mineables))
	}
	return nil
}

func (c *worldMapContext) theMinedItemsShouldBe(list string) error {
	var names []string
	for _, m := range c.mineables {
		names = append(names, m.MineItem.Name)
	}
	sort.Strings(names)

	expected := strings.Split(list, ",")
	for i := range expected {
		expected[i] = strings.TrimSpace(expected[i])
	}
	sort.Strings(expected)

	if strings.Join(names, ",") != strings.Join(expected, ",") {
		return fmt.Errorf("expected items %v, got %v", expected, names)
	}
	return nil
}

func (c *worldMapContext) everyMineableShouldBeFromStarbase(name string) error {
	for _, m := range c.mineables {
		if m.Starbase.Name != name {
			return fmt.Errorf("expected starbase %s, got %s", name, m.Starbase.Name)
		}
	}
	return nil
}

// InitializeWorldMapScenario registers the world map steps
func InitializeWorldMapScenario(sc *godog.ScenarioContext) {
	c := &worldMapContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	sc.Step(`^the world contains starbases:$`, c.theWorldContainsStarbases)
	sc.Step(`^the world contains planets:$`, c.theWorldContainsPlanets)
	sc.Step(`^the world contains mine items:$`, c.theWorldContainsMineItems)
	sc.Step(`^the world contains resources:$`, c.theWorldContainsResources)
	sc.Step(`^the world map is built$`, c.theWorldMapIsBuilt)
	sc.Step(`^building should fail because resource "([^"]*)" references unknown mine item "([^"]*)"$`, c.buildingShouldFailFor)
	sc.Step(`^mineables at sector \((-?\d+), (-?\d+)\) are listed$`, c.mineablesAtSectorAreListed)
	sc.Step(`^the sector should have no starbase$`, c.theSectorShouldHaveNoStarbase)
	sc.Step(`^(\d+) mineables? should be found$`, c.mineablesShouldBeFound)
	sc.Step(`^the mined items should be "([^"]*)"$`, c.theMinedItemsShouldBe)
	sc.Step(`^every mineable should be offered by "([^"]*)"$`, c.everyMineableShouldBeFromStarbase)
}
