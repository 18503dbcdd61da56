package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/basedbot-go/internal/application/transport"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

type transportContext struct {
	fleet   *FleetScenarioContext
	latches *domainTransport.MemoryLatchStore
	config  domainTransport.GoalConfig
}

func (c *transportContext) install(home, target shared.Coordinates, mints string, mode *shared.TravelMode) error {
	resources, err := parseMints(mints)
	if err != nil {
		return err
	}
	config, err := domainTransport.NewGoalConfig(domainTransport.GoalConfigParams{
		Map:        c.fleet.worldMap,
		HomeBase:   home,
		TargetBase: target,
		Resources:  resources,
		TravelMode: mode,
	})
	if err != nil {
		return err
	}

	c.latches = domainTransport.NewMemoryLatchStore()
	c.config = config
	c.fleet.strategy = transport.NewStrategy(config, helpers.TestPlayer(), helpers.TestGame(), transport.Dependencies{
		Actions:  c.fleet.actions,
		Balances: c.fleet.actions,
		Latches:  c.latches,
		Clock:    c.fleet.clock,
	})
	return nil
}

func (c *transportContext) aTransportRouteCarrying(mints string) error {
	return c.install(helpers.HomeSector, helpers.TargetSector, mints, nil)
}

func (c *transportContext) aTransportRouteByModeCarrying(modeName, mints string) error {
	mode, err := shared.ParseTravelMode(modeName)
	if err != nil {
		return err
	}
	return c.install(helpers.HomeSector, helpers.TargetSector, mints, &mode)
}

func (c *transportContext) aSameBaseRouteCarrying(mints string) error {
	return c.install(helpers.HomeSector, helpers.HomeSector, mints, nil)
}

func (c *transportContext) theRouteDirectionIs(fleetName, direction string) error {
	d, err := domainTransport.ParseDirection(direction)
	if err != nil {
		return err
	}
	return c.latches.Set(c.fleet.ctx, c.config.RouteKey(fleetName), d)
}

func (c *transportContext) theRouteDirectionShouldBe(fleetName, direction string) error {
	d, err := c.latches.Get(c.fleet.ctx, c.config.RouteKey(fleetName))
	if err != nil {
		return err
	}
	if string(d) != direction {
		return fmt.Errorf("expected direction %s, got %s", direction, d)
	}
	return nil
}

// InitializeTransportScenario registers the transport route steps
func InitializeTransportScenario(sc *godog.ScenarioContext, fleet *FleetScenarioContext) {
	c := &transportContext{fleet: fleet}

	sc.Step(`^a transport route from the home sector to the target sector carrying "([^"]*)"$`, c.aTransportRouteCarrying)
	sc.Step(`^a transport route travelling by (auto|warp|subwarp) carrying "([^"]*)"$`, c.aTransportRouteByModeCarrying)
	sc.Step(`^a transport route whose home and target are both the home sector carrying "([^"]*)"$`, c.aSameBaseRouteCarrying)
	sc.Step(`^the route direction of "([^"]*)" is (outbound|inbound)$`, c.theRouteDirectionIs)
	sc.Step(`^the route direction of "([^"]*)" should be (outbound|inbound)$`, c.theRouteDirectionShouldBe)
}
