package navigation

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// Stat names a ship attribute that upgrades can raise
type Stat string

const (
	StatCargoCapacity    Stat = "cargo_capacity"
	StatMiningEfficiency Stat = "mining_efficiency"
	StatSpeed            Stat = "speed"
	StatFuelCapacity     Stat = "fuel_capacity"
)

// AllStats returns upgradable stats in application order
func AllStats() []Stat {
	return []Stat{StatCargoCapacity, StatMiningEfficiency, StatSpeed, StatFuelCapacity}
}

func (s Stat) String() string {
	return string(s)
}

func (s Stat) IsValid() bool {
	switch s {
	case StatCargoCapacity, StatMiningEfficiency, StatSpeed, StatFuelCapacity:
		return true
	default:
		return false
	}
}

// ParseStat parses a stat name such as "cargo_capacity"
func ParseStat(s string) (Stat, error) {
	stat := Stat(s)
	if !stat.IsValid() {
		return "", fmt.Errorf("invalid ship stat: %s", s)
	}
	return stat, nil
}

// StatProfile is the full set of stats a ship is built with
type StatProfile struct {
	CargoCapacity    int
	MiningEfficiency float64
	Speed            float64
	FuelCapacity     int
	CurrentFuel      int
}

// Validate checks the profile describes a buildable ship
func (p StatProfile) Validate() error {
	if p.CargoCapacity < 0 {
		return shared.NewInvalidShipDataError("cargo_capacity cannot be negative")
	}
	if p.MiningEfficiency <= 0 {
		return shared.NewInvalidShipDataError("mining_efficiency must be positive")
	}
	if p.Speed <= 0 {
		return shared.NewInvalidShipDataError("speed must be positive")
	}
	if p.FuelCapacity < 0 {
		return shared.NewInvalidShipDataError("fuel_capacity cannot be negative")
	}
	if p.CurrentFuel < 0 || p.CurrentFuel > p.FuelCapacity {
		return shared.NewInvalidShipDataError("current_fuel must be between 0 and fuel_capacity")
	}
	return nil
}
