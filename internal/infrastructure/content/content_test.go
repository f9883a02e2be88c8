package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/content"
)

func TestDefault_WorldTable(t *testing.T) {
	tables, err := content.Default()
	require.NoError(t, err)

	// Upper bounds of every range
	rng := &shared.MockRandom{Ints: []int{1000}}
	world, err := tables.Generator.Generate(rng)
	require.NoError(t, err)

	require.Equal(t, 5, world.Len())
	names := make([]string, 0, world.Len())
	for _, body := range world.Bodies() {
		names = append(names, body.Name())
	}
	assert.Equal(t, []string{
		"Kepler-442b",
		"Frontier Station",
		"Asteroid Belt Alpha",
		"Titan-VII Research Base",
		"Xerion Prime",
	}, names)

	start := world.Start()
	assert.Equal(t, "Kepler-442b", start.Name())
	assert.Equal(t, 100, start.Remaining(shared.ResourceIron))
	assert.Equal(t, 25, start.Remaining(shared.ResourceTitanium))
	assert.False(t, start.HasOutpost())

	frontier, _ := world.BodyAt(1)
	assert.True(t, frontier.HasShipShop())
	assert.False(t, frontier.Minable())
	outpost, ok := frontier.Outpost()
	require.True(t, ok)
	assert.Equal(t, "Frontier Trading Post", outpost.Name())
	assert.InDelta(t, 3.0, outpost.SellPrice(shared.ResourceIron), 1e-9)
	assert.InDelta(t, 16.0, outpost.SellPrice(shared.ResourceGold), 1e-9)

	titan, _ := world.BodyAt(3)
	research, ok := titan.Outpost()
	require.True(t, ok)
	assert.InDelta(t, 360.0, research.SellPrice(shared.ResourceQuantumCrystals), 1e-9)
	assert.Equal(t, 3, titan.Remaining(shared.ResourceQuantumCrystals))
}

func TestDefault_Catalog(t *testing.T) {
	tables, err := content.Default()
	require.NoError(t, err)
	catalog := tables.Catalog

	starter := catalog.StarterShip()
	assert.Equal(t, "Rusty Prospector", starter.Name)
	assert.Equal(t, 50, starter.Profile.CargoCapacity)
	assert.Equal(t, 100, starter.Profile.CurrentFuel)

	upgrades := catalog.Upgrades()
	require.Len(t, upgrades, 4)
	assert.Equal(t, "Cargo Expansion", upgrades[0].Name)
	assert.Equal(t, 2000.0, upgrades[0].Cost)
	assert.Equal(t, 25.0, upgrades[0].Bonus[navigation.StatCargoCapacity])
	assert.Equal(t, 0.5, upgrades[1].Bonus[navigation.StatMiningEfficiency])

	ships := catalog.Blueprints()
	require.Len(t, ships, 3)
	assert.Equal(t, "Industrial Miner", ships[2].Name)
	assert.Equal(t, 35000.0, ships[2].Cost)
	assert.Equal(t, 150, ships[2].Profile.CurrentFuel, "new ships start fully fuelled")
}

func TestLoad_WorldFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bodies:
  - name: Home
    distance: 0
    type: planet
    mining_difficulty: 1.0
    resources:
      gold: {min: 5, max: 5}
`), 0644))

	tables, err := content.Load(config.GameConfig{WorldFile: path})
	require.NoError(t, err)

	world, err := tables.Generator.Generate(shared.NewMockRandom(0.5))
	require.NoError(t, err)
	assert.Equal(t, 1, world.Len())
	assert.Equal(t, 5, world.Start().Remaining(shared.ResourceGold))
	assert.Len(t, tables.Catalog.Upgrades(), 4, "catalog falls back to the embedded table")
}

func TestParseWorld_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no bodies", "bodies: []"},
		{"unknown body type", "bodies:\n  - name: X\n    type: nebula\n"},
		{"inverted range", "bodies:\n  - name: X\n    type: planet\n    mining_difficulty: 1\n    resources:\n      Iron: {min: 10, max: 5}\n"},
		{"unknown resource", "bodies:\n  - name: X\n    type: planet\n    mining_difficulty: 1\n    resources:\n      Unobtainium: {min: 1, max: 5}\n"},
		{"negative price", "bodies:\n  - name: X\n    type: station\n    outpost:\n      name: Post\n      type: trading_hub\n      base_prices:\n        Iron: -1\n"},
		{"malformed yaml", "bodies: ["},
		{"misspelled key", "bodies:\n  - name: X\n    type: station\n    has_shipshop: true\n"},
		{"empty document", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.ParseWorld([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalog_RejectsUnknownStat(t *testing.T) {
	_, err := content.ParseCatalog([]byte(`
starter_ship:
  name: Skiff
  cargo_capacity: 10
  mining_efficiency: 1
  speed: 1
  fuel_capacity: 10
upgrades:
  - name: Warp Core
    cost: 100
    bonus:
      warp: 1
`))
	require.Error(t, err)
}
