package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
)

// FixtureTime is the mock clock start used by fixtures
var FixtureTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// StarterProfile matches the Rusty Prospector
var StarterProfile = navigation.StatProfile{
	CargoCapacity:    50,
	MiningEfficiency: 10.0,
	Speed:            5.0,
	FuelCapacity:     100,
	CurrentFuel:      100,
}

// CreateTestShip builds a ship with the starter stats and the given cargo capacity and fuel
func CreateTestShip(t testing.TB, name string, cargoCapacity, fuel int) *navigation.Ship {
	t.Helper()
	profile := StarterProfile
	profile.CargoCapacity = cargoCapacity
	if fuel > profile.FuelCapacity {
		profile.FuelCapacity = fuel
	}
	profile.CurrentFuel = fuel

	ship, err := navigation.NewShip(name, profile)
	require.NoError(t, err)
	return ship
}

// CreateTestOutpost builds the Frontier Trading Post
func CreateTestOutpost(t testing.TB) *market.Outpost {
	t.Helper()
	outpost, err := market.NewOutpost(
		"Frontier Trading Post",
		market.OutpostTypeMiningStation,
		map[shared.ResourceKind]float64{
			shared.ResourceIron:            2.5,
			shared.ResourceCopper:          4.0,
			shared.ResourceTitanium:        9.0,
			shared.ResourceGold:            16.0,
			shared.ResourceRareEarth:       28.0,
			shared.ResourceQuantumCrystals: 110.0,
		},
		map[shared.ResourceKind]float64{
			shared.ResourceIron:     1.2,
			shared.ResourceCopper:   1.1,
			shared.ResourceTitanium: 0.9,
		},
	)
	require.NoError(t, err)
	return outpost
}

// CreateTestBody builds a planet with the given pools
func CreateTestBody(t testing.TB, name string, distance, difficulty float64, pools map[shared.ResourceKind]int) *system.CelestialBody {
	t.Helper()
	body, err := system.NewCelestialBody(name, distance, system.BodyTypePlanet, difficulty, pools, nil, false)
	require.NoError(t, err)
	return body
}

// CreateTestStation builds a station carrying the Frontier Trading Post and a ship shop
func CreateTestStation(t testing.TB, name string, distance float64) *system.CelestialBody {
	t.Helper()
	body, err := system.NewCelestialBody(name, distance, system.BodyTypeStation, 0, nil, CreateTestOutpost(t), true)
	require.NoError(t, err)
	return body
}

// CreateTestWorld builds a world from bodies; the first body is the start
// ResourceTotal counts kind across the body pools and every fleet hold.
// Mining and refunds move units between the two and never change the sum.
func ResourceTotal(bodies []*system.CelestialBody, session *game.Session, kind shared.ResourceKind) int {
	total := 0
	for _, body := range bodies {
		total += body.Remaining(kind)
	}
	for _, ship := range session.Fleet() {
		for _, item := range ship.Cargo {
			if item.Kind == kind {
				total += item.Units
			}
		}
	}
	return total
}

func CreateTestWorld(t testing.TB, bodies ...*system.CelestialBody) *system.World {
	t.Helper()
	world, err := system.NewWorld(bodies)
	require.NoError(t, err)
	return world
}
