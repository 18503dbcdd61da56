package steps

import (
	"errors"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/basedbot-go/internal/application/mining"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

type miningContext struct {
	fleet *FleetScenarioContext
}

func (c *miningContext) install(mint shared.EntityID) {
	guard := mining.NewGuard(c.fleet.actions, c.fleet.gateway)
	c.fleet.strategy = mining.NewStrategy(mining.Goal{
		Map:        c.fleet.worldMap,
		MineBase:   helpers.TargetSector,
		Mint:       mint,
		TravelMode: shared.TravelModeAuto,
	}, helpers.TestPlayer(), guard, c.fleet.actions)
}

func (c *miningContext) aMiningGoalForOre() error {
	c.install(helpers.OreMint)
	return nil
}

func (c *miningContext) aMiningGoalForTool() error {
	c.install(helpers.ToolMint)
	return nil
}

func (c *miningContext) theStarbasePlayerCannotBeResolved() error {
	c.fleet.gateway.ResolverErr = errors.New("starbase player account missing")
	return nil
}

// InitializeMiningScenario registers the mining goal steps
func InitializeMiningScenario(sc *godog.ScenarioContext, fleet *FleetScenarioContext) {
	c := &miningContext{fleet: fleet}

	sc.Step(`^a mining goal for ore at the target sector$`, c.aMiningGoalForOre)
	sc.Step(`^a mining goal for tool at the target sector$`, c.aMiningGoalForTool)
	sc.Step(`^the starbase player cannot be resolved$`, c.theStarbasePlayerCannotBeResolved)
}
