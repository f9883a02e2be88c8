package navigation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// Ship entity - a mining vessel owned by the player
//
// Invariants:
// - Name must be non-empty
// - Mining efficiency and speed must be positive
// - 0 <= current fuel <= fuel capacity
// - Cargo units never exceed cargo capacity (enforced by CargoHold)
//
// Speed is carried for display and upgrades only; travel cost depends on
// distance alone.
type Ship struct {
	id               string
	name             string
	cargo            *shared.CargoHold
	miningEfficiency float64
	speed            float64
	fuel             *shared.Fuel
}

// NewShip creates a new Ship entity from a stat profile
func NewShip(name string, profile StatProfile) (*Ship, error) {
	if name == "" {
		return nil, shared.NewInvalidShipDataError("ship name cannot be empty")
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	cargo, err := shared.NewCargoHold(profile.CargoCapacity)
	if err != nil {
		return nil, shared.NewInvalidShipDataError(err.Error())
	}

	fuel, err := shared.NewFuel(profile.CurrentFuel, profile.FuelCapacity)
	if err != nil {
		return nil, shared.NewInvalidShipDataError(err.Error())
	}

	return &Ship{
		id:               uuid.New().String(),
		name:             name,
		cargo:            cargo,
		miningEfficiency: profile.MiningEfficiency,
		speed:            profile.Speed,
		fuel:             fuel,
	}, nil
}

// Getters

func (s *Ship) ID() string {
	return s.id
}

func (s *Ship) Name() string {
	return s.name
}

func (s *Ship) Cargo() *shared.CargoHold {
	return s.cargo
}

func (s *Ship) CargoCapacity() int {
	return s.cargo.Capacity()
}

func (s *Ship) MiningEfficiency() float64 {
	return s.miningEfficiency
}

func (s *Ship) Speed() float64 {
	return s.speed
}

func (s *Ship) Fuel() *shared.Fuel {
	return s.fuel
}

func (s *Ship) CurrentFuel() int {
	return s.fuel.Current
}

func (s *Ship) FuelCapacity() int {
	return s.fuel.Capacity
}

// Profile returns the current stats of the ship
func (s *Ship) Profile() StatProfile {
	return StatProfile{
		CargoCapacity:    s.cargo.Capacity(),
		MiningEfficiency: s.miningEfficiency,
		Speed:            s.speed,
		FuelCapacity:     s.fuel.Capacity,
		CurrentFuel:      s.fuel.Current,
	}
}

// Fuel operations

// ConsumeFuel burns amount units; fails without mutation if the tank is short
func (s *Ship) ConsumeFuel(amount int) error {
	newFuel, err := s.fuel.Consume(amount)
	if err != nil {
		return err
	}
	s.fuel = newFuel
	return nil
}

// Refuel adds fuel up to capacity
func (s *Ship) Refuel(amount int) error {
	newFuel, err := s.fuel.Add(amount)
	if err != nil {
		return err
	}
	s.fuel = newFuel
	return nil
}

// Upgrades

// ApplyBonus raises one stat by bonus. Integer stats truncate the bonus
// toward zero; a fuel capacity bonus also raises current fuel.
func (s *Ship) ApplyBonus(stat Stat, bonus float64) error {
	if bonus < 0 {
		return shared.NewInvalidShipDataError(fmt.Sprintf("%s bonus cannot be negative", stat))
	}

	switch stat {
	case StatCargoCapacity:
		return s.cargo.Grow(int(bonus))
	case StatMiningEfficiency:
		s.miningEfficiency += bonus
	case StatSpeed:
		s.speed += bonus
	case StatFuelCapacity:
		newFuel, err := s.fuel.Expand(int(bonus))
		if err != nil {
			return err
		}
		s.fuel = newFuel
	default:
		return shared.NewInvalidShipDataError(fmt.Sprintf("unknown ship stat: %s", stat))
	}
	return nil
}

// ApplyBonuses applies a bonus map atomically: every stat is checked before
// any is changed
func (s *Ship) ApplyBonuses(bonuses map[Stat]float64) error {
	for stat, bonus := range bonuses {
		if !stat.IsValid() {
			return shared.NewInvalidShipDataError(fmt.Sprintf("unknown ship stat: %s", stat))
		}
		if bonus < 0 {
			return shared.NewInvalidShipDataError(fmt.Sprintf("%s bonus cannot be negative", stat))
		}
	}

	for _, stat := range AllStats() {
		if bonus, ok := bonuses[stat]; ok {
			if err := s.ApplyBonus(stat, bonus); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship[%s, cargo=%d/%d, eff=%.1f, speed=%.1f, %s]",
		s.name, s.cargo.Units(), s.cargo.Capacity(), s.miningEfficiency, s.speed, s.fuel)
}
