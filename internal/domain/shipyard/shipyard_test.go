package shipyard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
)

var starter = shipyard.ShipBlueprint{
	Name: "Rusty Prospector",
	Profile: navigation.StatProfile{
		CargoCapacity: 50, MiningEfficiency: 10, Speed: 5, FuelCapacity: 100, CurrentFuel: 100,
	},
}

func TestCatalog_Lookups(t *testing.T) {
	catalog, err := shipyard.NewCatalog(starter,
		[]shipyard.ShipUpgrade{{Name: "Cargo Expansion", Cost: 2000, Bonus: map[navigation.Stat]float64{navigation.StatCargoCapacity: 25}}},
		[]shipyard.ShipBlueprint{{Name: "Mining Hauler", Cost: 15000, Profile: navigation.StatProfile{
			CargoCapacity: 150, MiningEfficiency: 12, Speed: 3, FuelCapacity: 120,
		}}},
	)
	require.NoError(t, err)

	upgrade, err := catalog.Upgrade(0)
	require.NoError(t, err)
	assert.Equal(t, "Cargo Expansion", upgrade.Name)

	_, err = catalog.Upgrade(1)
	require.Error(t, err)
	assert.Equal(t, "Invalid upgrade", err.Error())

	_, err = catalog.Blueprint(-1)
	require.Error(t, err)
	assert.Equal(t, "Invalid ship", err.Error())

	blueprint, err := catalog.Blueprint(0)
	require.NoError(t, err)
	ship, err := blueprint.Build()
	require.NoError(t, err)
	assert.Equal(t, 120, ship.CurrentFuel(), "new ships come fully fuelled")
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := shipyard.NewCatalog(shipyard.ShipBlueprint{}, nil, nil)
	assert.Error(t, err)

	_, err = shipyard.NewCatalog(starter, []shipyard.ShipUpgrade{{Name: "Free", Cost: 0}}, nil)
	assert.Error(t, err)

	_, err = shipyard.NewCatalog(starter, []shipyard.ShipUpgrade{{
		Name: "Warp", Cost: 10, Bonus: map[navigation.Stat]float64{navigation.Stat("warp"): 1},
	}}, nil)
	assert.Error(t, err)
}

func TestCanAfford(t *testing.T) {
	assert.True(t, shipyard.CanAfford(1500, 1500))
	assert.False(t, shipyard.CanAfford(1499.99, 1500))
}
