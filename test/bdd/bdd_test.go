package bdd

import (
	"fmt"
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/basedbot-go/test/bdd/steps"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

func TestMain(m *testing.M) {
	if err := helpers.InitializeSharedTestDB(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize shared test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Fleet steps are shared by the transport and mining features, so
	// they are registered once up front
	shared := steps.NewFleetScenarioContext()
	steps.InitializeFleetSteps(sc, shared)
	steps.InitializeTransportScenario(sc, shared)
	steps.InitializeMiningScenario(sc, shared)
	steps.InitializeWorldMapScenario(sc)
	steps.InitializeLatchStoreScenario(sc)
}
