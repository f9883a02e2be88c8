package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

func TestCargoHold_AddAdmitsUpToFreeSpace(t *testing.T) {
	// Arrange
	hold, err := shared.NewCargoHold(10)
	require.NoError(t, err)

	// Act
	first := hold.Add(shared.ResourceIron, 7)
	second := hold.Add(shared.ResourceCopper, 7)
	third := hold.Add(shared.ResourceGold, 1)

	// Assert
	assert.Equal(t, 7, first)
	assert.Equal(t, 3, second)
	assert.Equal(t, 0, third)
	assert.Equal(t, 10, hold.Units())
	assert.True(t, hold.IsFull())
	assert.False(t, hold.Has(shared.ResourceGold))
}

func TestCargoHold_RemoveDropsEmptyEntries(t *testing.T) {
	hold, err := shared.NewCargoHold(50)
	require.NoError(t, err)
	hold.Add(shared.ResourceTitanium, 5)

	assert.Equal(t, 2, hold.Remove(shared.ResourceTitanium, 2))
	assert.Equal(t, 3, hold.Remove(shared.ResourceTitanium, 10))
	assert.Equal(t, 0, hold.Remove(shared.ResourceTitanium, 1))
	assert.True(t, hold.IsEmpty())
	assert.Empty(t, hold.Kinds())
}

func TestCargoHold_AddRemoveRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		add      int
		admitted int
	}{
		{"fits in free space", 20, 20},
		{"clamped to free space", 60, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			hold, err := shared.NewCargoHold(50)
			require.NoError(t, err)
			hold.Add(shared.ResourceIron, 7)
			before := hold.Snapshot()

			// Act
			admitted := hold.Add(shared.ResourceCopper, tt.add)
			removed := hold.Remove(shared.ResourceCopper, admitted)

			// Assert
			assert.Equal(t, tt.admitted, admitted)
			assert.Equal(t, admitted, removed)
			assert.Equal(t, before, hold.Snapshot())
			assert.Equal(t, 7, hold.Units())
		})
	}
}

func TestCargoHold_NonPositiveAmountsAreIgnored(t *testing.T) {
	hold, err := shared.NewCargoHold(5)
	require.NoError(t, err)

	assert.Equal(t, 0, hold.Add(shared.ResourceIron, 0))
	assert.Equal(t, 0, hold.Add(shared.ResourceIron, -3))
	assert.Equal(t, 0, hold.Remove(shared.ResourceIron, -1))
	assert.True(t, hold.IsEmpty())
}

func TestCargoHold_SnapshotUsesCanonicalOrder(t *testing.T) {
	hold, err := shared.NewCargoHold(100)
	require.NoError(t, err)
	hold.Add(shared.ResourceQuantumCrystals, 1)
	hold.Add(shared.ResourceIron, 4)
	hold.Add(shared.ResourceGold, 2)

	assert.Equal(t, []shared.CargoItem{
		{Kind: shared.ResourceIron, Units: 4},
		{Kind: shared.ResourceGold, Units: 2},
		{Kind: shared.ResourceQuantumCrystals, Units: 1},
	}, hold.Snapshot())
	assert.Equal(t, "Cargo(7/100)[IRON=4,GOLD=2,QUANTUM_CRYSTALS=1]", hold.String())
}

func TestCargoHold_Grow(t *testing.T) {
	hold, err := shared.NewCargoHold(10)
	require.NoError(t, err)
	hold.Add(shared.ResourceIron, 10)

	require.NoError(t, hold.Grow(25))
	assert.Equal(t, 35, hold.Capacity())
	assert.Equal(t, 25, hold.AvailableCapacity())
	assert.Error(t, hold.Grow(-1))

	_, err = shared.NewCargoHold(-1)
	assert.Error(t, err)
}

func TestTravelFuelCost(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     int
	}{
		{"outbound", 0.0, 1.5, 15},
		{"truncates fractional cost", 1.5, 3.2, 17},
		{"symmetric", 3.2, 1.5, 17},
		{"long haul", 0.0, 12.4, 124},
		{"same distance", 6.8, 6.8, 0},
		{"sub unit", 1.0, 1.05, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.TravelFuelCost(tt.from, tt.to))
		})
	}
}

func TestFuel_ConsumeAndExpand(t *testing.T) {
	fuel, err := shared.NewFuel(40, 100)
	require.NoError(t, err)

	burned, err := fuel.Consume(15)
	require.NoError(t, err)
	assert.Equal(t, 25, burned.Current)
	assert.Equal(t, 40, fuel.Current, "fuel values are immutable")

	_, err = fuel.Consume(41)
	var insufficient *shared.InsufficientFuelError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Not enough fuel! Need 41, have 40", err.Error())

	expanded, err := fuel.Expand(50)
	require.NoError(t, err)
	assert.Equal(t, 90, expanded.Current)
	assert.Equal(t, 150, expanded.Capacity)

	topped, err := fuel.Add(500)
	require.NoError(t, err)
	assert.True(t, topped.IsFull())

	_, err = shared.NewFuel(101, 100)
	assert.Error(t, err)
}

func TestParseResourceKind(t *testing.T) {
	tests := []struct {
		input string
		want  shared.ResourceKind
	}{
		{"IRON", shared.ResourceIron},
		{"iron", shared.ResourceIron},
		{"Rare Earth", shared.ResourceRareEarth},
		{"RARE_EARTH", shared.ResourceRareEarth},
		{"quantum crystals", shared.ResourceQuantumCrystals},
		{"  Gold ", shared.ResourceGold},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := shared.ParseResourceKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}

	_, err := shared.ParseResourceKind("Unobtainium")
	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err))
	assert.Equal(t, `Unknown resource type: "Unobtainium"`, err.Error())
}

func TestResourceKind_DisplayName(t *testing.T) {
	names := make([]string, 0, len(shared.AllResourceKinds()))
	for _, kind := range shared.AllResourceKinds() {
		names = append(names, kind.DisplayName())
	}
	assert.Equal(t, []string{"Iron", "Copper", "Titanium", "Gold", "Rare Earth", "Quantum Crystals"}, names)
}

func TestSeededRandom_IsDeterministic(t *testing.T) {
	a := shared.NewSeededRandom(42)
	b := shared.NewSeededRandom(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(100), b.IntN(100))
	}
}

func TestRandIntInclusive(t *testing.T) {
	rng := &shared.MockRandom{Ints: []int{0, 5, 99}}

	assert.Equal(t, 10, shared.RandIntInclusive(rng, 10, 15))
	assert.Equal(t, 15, shared.RandIntInclusive(rng, 10, 15))
	assert.Equal(t, 15, shared.RandIntInclusive(rng, 10, 15), "mock clamps to n-1")
	assert.Equal(t, 7, shared.RandIntInclusive(rng, 7, 7))
}

func TestDomainErrors(t *testing.T) {
	assert.True(t, shared.IsDomainError(shared.NewGameNotInitializedError()))
	assert.Equal(t, "Game not initialized", shared.NewGameNotInitializedError().Error())
	assert.Equal(t, "Not enough credits! Need 2000, have 1000", shared.NewInsufficientCreditsError(2000, 1000).Error())
	assert.Equal(t, "Invalid ship index: 4", shared.NewInvalidShipIndexError(4).Error())
	assert.True(t, shared.IsDomainError(shared.NewValidationError("field", "bad")))
	assert.True(t, shared.IsDomainError(fmt.Errorf("player: %w", shared.NewValidationError("name", "is empty"))))
	assert.False(t, shared.IsDomainError(errors.New("disk full")))
}
