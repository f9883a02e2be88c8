package shared

import (
	"fmt"
	"math"
)

// FuelPerDistanceUnit is burned for every unit of distance-from-origin covered
const FuelPerDistanceUnit = 10

// Fuel is a tank reading; operations return a new reading
type Fuel struct {
	Current  int
	Capacity int
}

func NewFuel(current, capacity int) (*Fuel, error) {
	switch {
	case capacity < 0:
		return nil, fmt.Errorf("fuel capacity %d is negative", capacity)
	case current < 0 || current > capacity:
		return nil, fmt.Errorf("fuel level %d outside tank of %d", current, capacity)
	}
	return &Fuel{Current: current, Capacity: capacity}, nil
}

// TravelFuelCost is floor(|to - from| * 10); going 1.5 -> 3.2 costs 17
func TravelFuelCost(from, to float64) int {
	return int(math.Floor(math.Abs(to-from) * FuelPerDistanceUnit))
}

// Consume burns amount; the tank may not run dry mid-trip
func (f *Fuel) Consume(amount int) (*Fuel, error) {
	if amount < 0 {
		return nil, fmt.Errorf("cannot burn %d fuel", amount)
	}
	if !f.CanTravel(amount) {
		return nil, NewInsufficientFuelError(amount, f.Current)
	}
	return f.level(f.Current - amount), nil
}

// Add refuels by amount; anything above capacity is lost
func (f *Fuel) Add(amount int) (*Fuel, error) {
	if amount < 0 {
		return nil, fmt.Errorf("cannot refuel by %d", amount)
	}
	return f.level(min(f.Current+amount, f.Capacity)), nil
}

// Expand enlarges the tank by delta and fills the new space
func (f *Fuel) Expand(delta int) (*Fuel, error) {
	if delta < 0 {
		return nil, fmt.Errorf("cannot shrink tank by %d", -delta)
	}
	return &Fuel{Current: f.Current + delta, Capacity: f.Capacity + delta}, nil
}

func (f *Fuel) CanTravel(required int) bool { return f.Current >= required }

func (f *Fuel) IsFull() bool { return f.Current == f.Capacity }

func (f *Fuel) String() string {
	return fmt.Sprintf("Fuel(%d/%d)", f.Current, f.Capacity)
}

func (f *Fuel) level(current int) *Fuel {
	return &Fuel{Current: current, Capacity: f.Capacity}
}
