package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spacemining-go/test/bdd/steps"
	"github.com/andrescamacho/spacemining-go/test/helpers"
)

// domain features drive the session aggregate directly; application
// features go through the mediator and journal sales into the shared db
var featurePaths = []string{"features/domain", "features/application"}

func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:   "pretty",
		Paths:    featurePaths,
		Strict:   true,
		TestingT: t,
	}

	suite := godog.TestSuite{
		Name:                "spacemining",
		ScenarioInitializer: InitializeScenario,
		Options:             &opts,
	}
	if status := suite.Run(); status != 0 {
		t.Fatalf("feature suite exited with status %d", status)
	}
}

// InitializeScenario wires every step package. Domain steps speak in the
// first person ("I mine"), application steps about "the game", so no
// pattern is registered twice.
func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeSessionScenario(sc)
	steps.InitializeGameApplicationScenario(sc)
}

func TestMain(m *testing.M) {
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("shared test database: " + err.Error())
	}

	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}
