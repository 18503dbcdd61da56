package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

type latchStoreContext struct {
	clock  *shared.MockClock
	stores map[string]*persistence.GormLatchStore
	err    error
}

func (c *latchStoreContext) reset() error {
	c.clock = shared.NewMockClock(scenarioEpoch)
	c.stores = make(map[string]*persistence.GormLatchStore)
	c.err = nil
	return helpers.TruncateAllTables()
}

func (c *latchStoreContext) store(profile string) *persistence.GormLatchStore {
	s, ok := c.stores[profile]
	if !ok {
		s = persistence.NewGormLatchStore(helpers.SharedTestDB, profile, c.clock)
		c.stores[profile] = s
	}
	return s
}

func routeKey(fleetName string) domainTransport.RouteKey {
	return domainTransport.NewRouteKey(fleetName, helpers.HomeSector, helpers.TargetSector)
}

func (c *latchStoreContext) profileSetsLatch(profile, fleetName, direction string) error {
	d, err := domainTransport.ParseDirection(direction)
	if err != nil {
		return err
	}
	return c.store(profile).Set(context.Background(), routeKey(fleetName), d)
}

func (c *latchStoreContext) profileReadsLatch(profile, fleetName, direction string) error {
	d, err := c.store(profile).Get(context.Background(), routeKey(fleetName))
	if err != nil {
		return err
	}
	if string(d) != direction {
		return fmt.Errorf("expected %s, got %s", direction, d)
	}
	return nil
}

func (c *latchStoreContext) aCorruptLatchIsStored(profile, fleetName string) error {
	return helpers.SharedTestDB.Create(&persistence.RouteLatchModel{
		ProfileKey: profile,
		RouteKey:   string(routeKey(fleetName)),
		FleetName:  fleetName,
		Direction:  "sideways",
		UpdatedAt:  scenarioEpoch,
	}).Error
}

func (c *latchStoreContext) profileReadsTheLatch(profile, fleetName string) error {
	_, c.err = c.store(profile).Get(context.Background(), routeKey(fleetName))
	return nil
}

func (c *latchStoreContext) theReadShouldFail() error {
	if c.err == nil {
		return fmt.Errorf("expected reading the latch to fail")
	}
	return nil
}

func (c *latchStoreContext) profileShouldListLatches(profile string, n int) error {
	latches, err := c.store(profile).List(context.Background())
	if err != nil {
		return err
	}
	if len(latches) != n {
		return fmt.Errorf("expected %d latches, got %d", n, len(latches))
	}
	return nil
}

// InitializeLatchStoreScenario registers the persisted latch steps
func InitializeLatchStoreScenario(sc *godog.ScenarioContext) {
	c := &latchStoreContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})

	sc.Step(`^profile "([^"]*)" latches fleet "([^"]*)" (outbound|inbound)$`, c.profileSetsLatch)
	sc.Step(`^profile "([^"]*)" should read fleet "([^"]*)" as (outbound|inbound)$`, c.profileReadsLatch)
	sc.Step(`^a corrupt latch is stored for profile "([^"]*)" and fleet "([^"]*)"$`, c.aCorruptLatchIsStored)
	sc.Step(`^profile "([^"]*)" reads the latch of fleet "([^"]*)"$`, c.profileReadsTheLatch)
	sc.Step(`^reading the latch should fail$`, c.theReadShouldFail)
	sc.Step(`^profile "([^"]*)" should list (\d+) latch(?:es)?$`, c.profileShouldListLatches)
}
