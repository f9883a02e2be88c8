package system

import (
	"fmt"
	"math"

	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// Yield band around the base yield: actual = floor(uniform(0.5*base, 1.5*base))
const (
	YieldLowFactor  = 0.5
	YieldHighFactor = 1.5
)

// BodyType tags what kind of place a celestial body is
type BodyType string

const (
	BodyTypePlanet   BodyType = "planet"
	BodyTypeStation  BodyType = "station"
	BodyTypeAsteroid BodyType = "asteroid"
	BodyTypeMoon     BodyType = "moon"
)

func (t BodyType) IsValid() bool {
	switch t {
	case BodyTypePlanet, BodyTypeStation, BodyTypeAsteroid, BodyTypeMoon:
		return true
	default:
		return false
	}
}

// CelestialBody is a place in the world the player can travel to.
//
// Invariants:
// - pool quantities are never negative; mining only lowers them and the
//   overflow refund only returns what was just mined
// - a body with minable resources has a positive mining difficulty
type CelestialBody struct {
	name        string
	distance    float64
	bodyType    BodyType
	difficulty  float64
	resources   map[shared.ResourceKind]int
	outpost     *market.Outpost
	hasShipShop bool
}

// NewCelestialBody creates a body; the resource map is copied
func NewCelestialBody(
	name string,
	distance float64,
	bodyType BodyType,
	difficulty float64,
	resources map[shared.ResourceKind]int,
	outpost *market.Outpost,
	hasShipShop bool,
) (*CelestialBody, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "celestial body name cannot be empty")
	}
	if distance < 0 {
		return nil, shared.NewValidationError("distance", fmt.Sprintf("%s: distance cannot be negative", name))
	}
	if difficulty < 0 {
		return nil, shared.NewValidationError("mining_difficulty", fmt.Sprintf("%s: difficulty cannot be negative", name))
	}

	pool := make(map[shared.ResourceKind]int, len(resources))
	for kind, qty := range resources {
		if qty < 0 {
			return nil, shared.NewValidationError("resources", fmt.Sprintf("%s: %s quantity cannot be negative", name, kind))
		}
		pool[kind] = qty
	}
	if len(pool) > 0 && difficulty == 0 {
		return nil, shared.NewValidationError("mining_difficulty", fmt.Sprintf("%s: bodies with resources need a positive difficulty", name))
	}

	return &CelestialBody{
		name:        name,
		distance:    distance,
		bodyType:    bodyType,
		difficulty:  difficulty,
		resources:   pool,
		outpost:     outpost,
		hasShipShop: hasShipShop,
	}, nil
}

func (b *CelestialBody) Name() string {
	return b.name
}

func (b *CelestialBody) Distance() float64 {
	return b.distance
}

func (b *CelestialBody) Type() BodyType {
	return b.bodyType
}

func (b *CelestialBody) MiningDifficulty() float64 {
	return b.difficulty
}

func (b *CelestialBody) HasShipShop() bool {
	return b.hasShipShop
}

// HasOutpost checks if the body hosts a trading post
func (b *CelestialBody) HasOutpost() bool {
	return b.outpost != nil
}

// Outpost returns the trading post, if any
func (b *CelestialBody) Outpost() (*market.Outpost, bool) {
	return b.outpost, b.outpost != nil
}

// Remaining returns units of kind left in the pool
func (b *CelestialBody) Remaining(kind shared.ResourceKind) int {
	return b.resources[kind]
}

// HasResource checks if kind can currently be mined here
func (b *CelestialBody) HasResource(kind shared.ResourceKind) bool {
	return b.resources[kind] > 0
}

// HasResources checks if any resource is left to mine
func (b *CelestialBody) HasResources() bool {
	for _, qty := range b.resources {
		if qty > 0 {
			return true
		}
	}
	return false
}

// Minable checks if the body has a resource table at all, depleted or not
func (b *CelestialBody) Minable() bool {
	return len(b.resources) > 0
}

// Resources returns a copy of the pool in canonical order, zero entries included
func (b *CelestialBody) Resources() []shared.CargoItem {
	items := make([]shared.CargoItem, 0, len(b.resources))
	for _, kind := range shared.AllResourceKinds() {
		if qty, ok := b.resources[kind]; ok {
			items = append(items, shared.CargoItem{Kind: kind, Units: qty})
		}
	}
	return items
}

// MineResource extracts kind from the pool and returns the units extracted.
//
// Absent or exhausted resources return 0 without touching the pool or the
// random source. Otherwise the yield is floor(uniform(0.5*base, 1.5*base))
// with base = miningPower / difficulty, clamped to what remains.
func (b *CelestialBody) MineResource(kind shared.ResourceKind, miningPower float64, rng shared.RandomSource) int {
	available := b.resources[kind]
	if available <= 0 {
		return 0
	}

	baseYield := miningPower / b.difficulty
	drawn := shared.Uniform(rng, baseYield*YieldLowFactor, baseYield*YieldHighFactor)
	actual := int(math.Floor(drawn))
	if actual < 0 {
		actual = 0
	}
	if actual > available {
		actual = available
	}

	b.resources[kind] = available - actual
	return actual
}

// ReturnResource puts back units mined but not loaded (cargo overflow)
func (b *CelestialBody) ReturnResource(kind shared.ResourceKind, amount int) {
	if amount <= 0 {
		return
	}
	b.resources[kind] += amount
}

func (b *CelestialBody) String() string {
	return fmt.Sprintf("CelestialBody[%s, %s, d=%.1f]", b.name, b.bodyType, b.distance)
}
