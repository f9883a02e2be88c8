package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
)

func newBody(t *testing.T, name string, distance, difficulty float64, pools map[shared.ResourceKind]int) *system.CelestialBody {
	t.Helper()
	body, err := system.NewCelestialBody(name, distance, system.BodyTypePlanet, difficulty, pools, nil, false)
	require.NoError(t, err)
	return body
}

func TestCelestialBody_MineResourceYieldRange(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want int
	}{
		// efficiency 10 / difficulty 0.8 gives a base of 12.5
		{"lowest roll", 0.0, 6},
		{"middle roll", 0.5, 12},
		{"highest roll", 0.999, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := newBody(t, "Kepler-442b", 0, 0.8, map[shared.ResourceKind]int{shared.ResourceIron: 100})

			mined := body.MineResource(shared.ResourceIron, 10.0, shared.NewMockRandom(tt.roll))

			assert.Equal(t, tt.want, mined)
			assert.Equal(t, 100-tt.want, body.Remaining(shared.ResourceIron))
		})
	}
}

func TestCelestialBody_MineResourceClampsToPool(t *testing.T) {
	body := newBody(t, "Pebble", 0, 0.5, map[shared.ResourceKind]int{shared.ResourceGold: 3})

	mined := body.MineResource(shared.ResourceGold, 10.0, shared.NewMockRandom(0.5))

	assert.Equal(t, 3, mined)
	assert.Equal(t, 0, body.Remaining(shared.ResourceGold))
	assert.False(t, body.HasResource(shared.ResourceGold))
	assert.False(t, body.HasResources())
}

func TestCelestialBody_AbsentResourceDoesNotDrawRandomness(t *testing.T) {
	body := newBody(t, "Kepler-442b", 0, 0.8, map[shared.ResourceKind]int{shared.ResourceIron: 100})
	rng := &shared.MockRandom{Floats: []float64{0.5, 0.0}}

	assert.Equal(t, 0, body.MineResource(shared.ResourceGold, 10.0, rng))
	// the first float is still available for the next real draw
	assert.Equal(t, 12, body.MineResource(shared.ResourceIron, 10.0, rng))
}

func TestCelestialBody_ReturnResource(t *testing.T) {
	body := newBody(t, "Kepler-442b", 0, 0.8, map[shared.ResourceKind]int{shared.ResourceIron: 100})
	mined := body.MineResource(shared.ResourceIron, 10.0, shared.NewMockRandom(0.5))

	body.ReturnResource(shared.ResourceIron, mined)
	body.ReturnResource(shared.ResourceIron, -5)

	assert.Equal(t, 100, body.Remaining(shared.ResourceIron))
}

func TestNewCelestialBody_Validation(t *testing.T) {
	_, err := system.NewCelestialBody("", 0, system.BodyTypePlanet, 1, nil, nil, false)
	assert.Error(t, err)

	_, err = system.NewCelestialBody("Nowhere", -1, system.BodyTypePlanet, 1, nil, nil, false)
	assert.Error(t, err)

	_, err = system.NewCelestialBody("Free Lunch", 1, system.BodyTypeAsteroid, 0,
		map[shared.ResourceKind]int{shared.ResourceIron: 10}, nil, false)
	assert.Error(t, err, "resources need a positive difficulty")

	_, err = system.NewCelestialBody("Debt Rock", 1, system.BodyTypeAsteroid, 1,
		map[shared.ResourceKind]int{shared.ResourceIron: -1}, nil, false)
	assert.Error(t, err)
}

func TestCelestialBody_PoolIsCopied(t *testing.T) {
	pools := map[shared.ResourceKind]int{shared.ResourceIron: 10}
	body := newBody(t, "Kepler-442b", 0, 0.8, pools)

	pools[shared.ResourceIron] = 999

	assert.Equal(t, 10, body.Remaining(shared.ResourceIron))
}

func TestWorld_Lookup(t *testing.T) {
	start := newBody(t, "Kepler-442b", 0, 0.8, nil)
	outpost, err := market.NewOutpost("Frontier Trading Post", market.OutpostTypeMiningStation, nil, nil)
	require.NoError(t, err)
	station, err := system.NewCelestialBody("Frontier Station", 1.5, system.BodyTypeStation, 0, nil, outpost, true)
	require.NoError(t, err)

	world, err := system.NewWorld([]*system.CelestialBody{start, station})
	require.NoError(t, err)

	assert.Equal(t, start, world.Start())
	assert.Equal(t, 2, world.Len())
	assert.Equal(t, 1, world.IndexOf(station))

	found, ok := world.FindByName("Frontier Station")
	require.True(t, ok)
	assert.Equal(t, station, found)

	outposts := world.Outposts()
	require.Len(t, outposts, 1)
	assert.Equal(t, station, outposts[0])

	_, err = world.BodyAt(2)
	require.Error(t, err)
	assert.Equal(t, "Invalid destination", err.Error())
}

func TestNewWorld_RejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := system.NewWorld(nil)
	assert.Error(t, err)

	a := newBody(t, "Twin", 0, 1, nil)
	b := newBody(t, "Twin", 1, 1, nil)
	_, err = system.NewWorld([]*system.CelestialBody{a, b})
	assert.Error(t, err)
}

func testTemplate() system.WorldTemplate {
	return system.WorldTemplate{Bodies: []system.BodyTemplate{
		{
			Name:             "Kepler-442b",
			Distance:         0,
			Type:             system.BodyTypePlanet,
			MiningDifficulty: 0.8,
			Resources: map[shared.ResourceKind]system.ResourceRange{
				shared.ResourceIron:   {Min: 50, Max: 100},
				shared.ResourceCopper: {Min: 30, Max: 60},
			},
		},
		{
			Name:     "Frontier Station",
			Distance: 1.5,
			Type:     system.BodyTypeStation,
			Outpost: &system.OutpostTemplate{
				Name:       "Frontier Trading Post",
				Type:       market.OutpostTypeMiningStation,
				BasePrices: map[shared.ResourceKind]float64{shared.ResourceIron: 2.5},
			},
			HasShipShop: true,
		},
	}}
}

func TestGenerator_DrawsPoolsInCanonicalOrder(t *testing.T) {
	generator, err := system.NewGenerator(testTemplate())
	require.NoError(t, err)

	// iron draws first, copper second
	world, err := generator.Generate(&shared.MockRandom{Ints: []int{10, 5}})
	require.NoError(t, err)

	start := world.Start()
	assert.Equal(t, 60, start.Remaining(shared.ResourceIron))
	assert.Equal(t, 35, start.Remaining(shared.ResourceCopper))

	station, err := world.BodyAt(1)
	require.NoError(t, err)
	assert.True(t, station.HasOutpost())
	assert.True(t, station.HasShipShop())
	assert.False(t, station.Minable())
}

func TestGenerator_SameSeedSameWorld(t *testing.T) {
	generator, err := system.NewGenerator(testTemplate())
	require.NoError(t, err)

	a, err := generator.Generate(shared.NewSeededRandom(42))
	require.NoError(t, err)
	b, err := generator.Generate(shared.NewSeededRandom(42))
	require.NoError(t, err)

	assert.Equal(t, a.Start().Resources(), b.Start().Resources())
	assert.NotSame(t, a.Start(), b.Start(), "each world owns its bodies")

	for _, item := range a.Start().Resources() {
		switch item.Kind {
		case shared.ResourceIron:
			assert.GreaterOrEqual(t, item.Units, 50)
			assert.LessOrEqual(t, item.Units, 100)
		case shared.ResourceCopper:
			assert.GreaterOrEqual(t, item.Units, 30)
			assert.LessOrEqual(t, item.Units, 60)
		}
	}
}

func TestNewGenerator_RejectsBadRanges(t *testing.T) {
	template := testTemplate()
	template.Bodies[0].Resources[shared.ResourceGold] = system.ResourceRange{Min: 10, Max: 5}

	_, err := system.NewGenerator(template)
	assert.Error(t, err)

	_, err = system.NewGenerator(system.WorldTemplate{})
	assert.Error(t, err)
}
