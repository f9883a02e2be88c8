package navigation

import (
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// ShipFuelService answers travel affordability questions for a ship.
//
// Travel cost depends only on the two bodies' distances from the origin:
// floor(|d(target) - d(current)| * 10). Speed never enters the formula.
type ShipFuelService struct{}

// NewShipFuelService creates a new fuel service instance
func NewShipFuelService() *ShipFuelService {
	return &ShipFuelService{}
}

// FuelCost returns the fuel needed to move between two distances
func (s *ShipFuelService) FuelCost(fromDistance, toDistance float64) int {
	return shared.TravelFuelCost(fromDistance, toDistance)
}

// CanReach checks if the ship can afford the trip. A trip whose cost equals
// the remaining fuel is allowed and leaves the tank empty.
func (s *ShipFuelService) CanReach(ship *Ship, fromDistance, toDistance float64) bool {
	return ship.Fuel().CanTravel(s.FuelCost(fromDistance, toDistance))
}

// Burn consumes the trip's fuel, returning the amount used
func (s *ShipFuelService) Burn(ship *Ship, fromDistance, toDistance float64) (int, error) {
	cost := s.FuelCost(fromDistance, toDistance)
	if err := ship.ConsumeFuel(cost); err != nil {
		return 0, err
	}
	return cost, nil
}
