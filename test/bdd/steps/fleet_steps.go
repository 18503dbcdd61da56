package steps

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

// scenarioEpoch is the mock clock's time at the start of each scenario
var scenarioEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// mintAliases maps the names used in feature files to fixture keys
var mintAliases = map[string]shared.EntityID{
	"ore":  helpers.OreMint,
	"tool": helpers.ToolMint,
	"food": helpers.FoodMint,
	"fuel": helpers.FuelMint,
	"ammo": helpers.AmmoMint,
}

// FleetScenarioContext holds the fleet under test and the outcome of ticking
// it. The transport and mining steps install the strategy that ticks it.
type FleetScenarioContext struct {
	ctx      context.Context
	actions  *helpers.MockFleetActions
	gateway  *helpers.MockGameGateway
	logger   *helpers.RecordingLogger
	clock    *shared.MockClock
	worldMap *world.WorldMap

	fleet    *helpers.FleetBuilder
	strategy strategy.Strategy
	decision strategy.Decision
	err      error
}

func NewFleetScenarioContext() *FleetScenarioContext {
	return &FleetScenarioContext{}
}

func (c *FleetScenarioContext) reset() error {
	src := helpers.TestWorldSource()
	m, err := world.Build(src.Starbases, src.Planets, src.MineItems, src.Resources)
	if err != nil {
		return fmt.Errorf("failed to build fixture world: %w", err)
	}

	c.actions = helpers.NewMockFleetActions()
	c.gateway = helpers.NewMockGameGateway()
	c.logger = helpers.NewRecordingLogger()
	c.clock = shared.NewMockClock(scenarioEpoch)
	c.worldMap = m
	c.ctx = common.WithLogger(context.Background(), c.logger)
	c.fleet = nil
	c.strategy = nil
	c.decision = strategy.Decision{}
	c.err = nil
	return nil
}

func sectorNamed(name string) shared.Coordinates {
	if name == "target" {
		return helpers.TargetSector
	}
	return helpers.HomeSector
}

func starbaseNamed(name string) shared.EntityID {
	if name == "target" {
		return helpers.TargetStarbaseKey
	}
	return helpers.HomeStarbaseKey
}

func parseMints(list string) ([]shared.EntityID, error) {
	var mints []shared.EntityID
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		mint, ok := mintAliases[name]
		if !ok {
			return nil, fmt.Errorf("unknown mint alias %q", name)
		}
		mints = append(mints, mint)
	}
	return mints, nil
}

// aliased rewrites fixture keys in a recorded instruction back to their
// feature file names
func aliased(call string) string {
	pairs := make([]string, 0, len(mintAliases)*2+2)
	for name, mint := range mintAliases {
		pairs = append(pairs, string(mint), name)
	}
	pairs = append(pairs, string(helpers.OreResourceKey), "ore-resource")
	return strings.NewReplacer(pairs...).Replace(call)
}

// sortTransfers sorts each run of consecutive load or unload instructions,
// since batched transfers complete in any order
func sortTransfers(calls []string) []string {
	out := append([]string(nil), calls...)
	isTransfer := func(s string) bool {
		return strings.HasPrefix(s, "load(") || strings.HasPrefix(s, "unload(")
	}
	start := -1
	for i := 0; i <= len(out); i++ {
		if i < len(out) && isTransfer(out[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			sort.Strings(out[start:i])
			start = -1
		}
	}
	return out
}

// Fleet setup

func (c *FleetScenarioContext) aFleetIdleAtTheSector(name, sector string) error {
	c.fleet = helpers.NewFleet(name).IdleAt(sectorNamed(sector))
	return nil
}

func (c *FleetScenarioContext) aFleetIdleInOpenSpace(name string) error {
	c.fleet = helpers.NewFleet(name).IdleAt(helpers.OpenSpace)
	return nil
}

func (c *FleetScenarioContext) aFleetDockedAtTheStarbase(name, base string) error {
	c.fleet = helpers.NewFleet(name).DockedAt(starbaseNamed(base), sectorNamed(base))
	return nil
}

func (c *FleetScenarioContext) aFleetWarpingToTheSector(name, sector string, minutes int) error {
	to := sectorNamed(sector)
	eta := scenarioEpoch.Add(time.Duration(minutes) * time.Minute)
	c.fleet = helpers.NewFleet(name).At(helpers.OpenSpace).InState(helpers.Warping(helpers.OpenSpace, to, eta))
	return nil
}

func (c *FleetScenarioContext) aFleetWarpingThatArrivedMinutesAgo(name, sector string, minutes int) error {
	to := sectorNamed(sector)
	eta := scenarioEpoch.Add(-time.Duration(minutes) * time.Minute)
	c.fleet = helpers.NewFleet(name).At(to).InState(helpers.Warping(helpers.OpenSpace, to, eta))
	return nil
}

func (c *FleetScenarioContext) aFleetMiningTheOreAsteroid(name string) error {
	c.fleet = helpers.NewFleet(name).At(helpers.TargetSector).InState(fleet.MineAsteroid{
		Asteroid: helpers.AsteroidKey,
		Resource: helpers.OreResourceKey,
		Start:    scenarioEpoch.Add(-time.Hour),
	})
	return nil
}

func (c *FleetScenarioContext) aFleetInAnUnmodelledState(name, stateName string) error {
	c.fleet = helpers.NewFleet(name).InState(fleet.Unknown{Name: stateName})
	return nil
}

func (c *FleetScenarioContext) theFleetHasFuel(n int) error {
	if c.fleet == nil {
		return errors.New("no fleet defined")
	}
	c.fleet.WithFuel(n)
	return nil
}

func (c *FleetScenarioContext) theFleetHasAmmo(n int) error {
	if c.fleet == nil {
		return errors.New("no fleet defined")
	}
	c.fleet.WithAmmo(n)
	return nil
}

func (c *FleetScenarioContext) theFleetCarries(n int, alias string) error {
	if c.fleet == nil {
		return errors.New("no fleet defined")
	}
	mint, ok := mintAliases[alias]
	if !ok {
		return fmt.Errorf("unknown mint alias %q", alias)
	}
	c.fleet.WithCargo(mint, n)
	return nil
}

func (c *FleetScenarioContext) theFleetHasCapacities(cargo, fuel, ammo int) error {
	if c.fleet == nil {
		return errors.New("no fleet defined")
	}
	c.fleet.WithCapacity(cargo, fuel, ammo)
	return nil
}

func (c *FleetScenarioContext) theCargoHoldHolds(n int, alias string) error {
	mint, ok := mintAliases[alias]
	if !ok {
		return fmt.Errorf("unknown mint alias %q", alias)
	}
	hold := helpers.CargoHoldKey
	switch mint {
	case helpers.FuelMint:
		hold = helpers.FuelTankKey
	case helpers.AmmoMint:
		hold = helpers.AmmoBankKey
	}
	c.actions.SetBalance(hold, mint, n)
	return nil
}

func (c *FleetScenarioContext) theActionFails(op string) error {
	c.actions.FailOn(op, fmt.Errorf("gateway rejected %s", op))
	return nil
}

// Tick

func (c *FleetScenarioContext) theFleetIsTicked() error {
	if c.strategy == nil {
		return errors.New("no goal configured for the fleet")
	}
	if c.fleet == nil {
		return errors.New("no fleet defined")
	}
	f, err := c.fleet.BuildE()
	if err != nil {
		return err
	}
	c.decision, c.err = c.strategy.Apply(c.ctx, f)
	return nil
}

// Assertions

func (c *FleetScenarioContext) theTickShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected tick to succeed, got: %v", c.err)
	}
	return nil
}

func (c *FleetScenarioContext) theTickShouldFailWith(substr string) error {
	if c.err == nil {
		return errors.New("expected tick to fail, it succeeded")
	}
	if !strings.Contains(c.err.Error(), substr) {
		return fmt.Errorf("expected error containing %q, got %q", substr, c.err.Error())
	}
	return nil
}

func (c *FleetScenarioContext) theDecisionReasonShouldBe(reason string) error {
	if string(c.decision.Reason) != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, c.decision.Reason)
	}
	return nil
}

func (c *FleetScenarioContext) theIssuedInstructionsShouldBe(table *godog.Table) error {
	expected := make([]string, 0, len(table.Rows))
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		expected = append(expected, strings.TrimSpace(row.Cells[0].Value))
	}

	recorded := c.actions.CallStrings()
	actual := make([]string, 0, len(recorded))
	for _, call := range recorded {
		actual = append(actual, aliased(call))
	}

	expected = sortTransfers(expected)
	actual = sortTransfers(actual)

	if strings.Join(expected, "; ") != strings.Join(actual, "; ") {
		return fmt.Errorf("expected instructions [%s], got [%s]",
			strings.Join(expected, "; "), strings.Join(actual, "; "))
	}
	return nil
}

func (c *FleetScenarioContext) noInstructionsShouldBeIssued() error {
	if calls := c.actions.CallStrings(); len(calls) > 0 {
		return fmt.Errorf("expected no instructions, got %v", calls)
	}
	return nil
}

func (c *FleetScenarioContext) aLogShouldBeRecorded(level, substr string) error {
	if !c.logger.Contains(level, substr) {
		return fmt.Errorf("expected a %s log containing %q, got %v", level, substr, c.logger.Entries())
	}
	return nil
}

// InitializeFleetSteps registers the fleet setup, tick and assertion steps
func InitializeFleetSteps(sc *godog.ScenarioContext, c *FleetScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})

	sc.Step(`^a fleet "([^"]*)" idle at the (home|target) sector$`, c.aFleetIdleAtTheSector)
	sc.Step(`^a fleet "([^"]*)" idle in open space$`, c.aFleetIdleInOpenSpace)
	sc.Step(`^a fleet "([^"]*)" docked at the (home|target) starbase$`, c.aFleetDockedAtTheStarbase)
	sc.Step(`^a fleet "([^"]*)" warping to the (home|target) sector arriving in (\d+) minutes$`, c.aFleetWarpingToTheSector)
	sc.Step(`^a fleet "([^"]*)" warping to the (home|target) sector that arrived (\d+) minutes ago$`, c.aFleetWarpingThatArrivedMinutesAgo)
	sc.Step(`^a fleet "([^"]*)" mining the ore asteroid$`, c.aFleetMiningTheOreAsteroid)
	sc.Step(`^a fleet "([^"]*)" in the unmodelled state "([^"]*)"$`, c.aFleetInAnUnmodelledState)
	sc.Step(`^the fleet has (\d+) fuel$`, c.theFleetHasFuel)
	sc.Step(`^the fleet has (\d+) ammo$`, c.theFleetHasAmmo)
	sc.Step(`^the fleet carries (\d+) (ore|tool|food|fuel|ammo)$`, c.theFleetCarries)
	sc.Step(`^the fleet has capacities of (\d+) cargo, (\d+) fuel and (\d+) ammo$`, c.theFleetHasCapacities)
	sc.Step(`^the fleet's holds contain (\d+) (ore|tool|food|fuel|ammo)$`, c.theCargoHoldHolds)
	sc.Step(`^the gateway rejects "([^"]*)" instructions$`, c.theActionFails)

	sc.Step(`^the fleet is ticked$`, c.theFleetIsTicked)

	sc.Step(`^the tick should succeed$`, c.theTickShouldSucceed)
	sc.Step(`^the tick should fail with "([^"]*)"$`, c.theTickShouldFailWith)
	sc.Step(`^the decision reason should be "([^"]*)"$`, c.theDecisionReasonShouldBe)
	sc.Step(`^the issued instructions should be:$`, c.theIssuedInstructionsShouldBe)
	sc.Step(`^no instructions should be issued$`, c.noInstructionsShouldBeIssued)
	sc.Step(`^an? (DEBUG|INFO|WARNING|ERROR) log containing "([^"]*)" should be recorded$`, c.aLogShouldBeRecorded)
}
