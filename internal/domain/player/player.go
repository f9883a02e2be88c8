package player

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
)

// Player is the commander of a fleet.
//
// Invariants:
// - credits never go negative
// - the fleet is never empty and holds no ship twice
// - the active ship is a member of the fleet
// - the location is always set
type Player struct {
	name     string
	credits  float64
	fleet    []*navigation.Ship
	active   int
	location *system.CelestialBody
}

// NewPlayer creates a player with a starter ship at a starting location
func NewPlayer(name string, credits float64, starter *navigation.Ship, location *system.CelestialBody) (*Player, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "player name cannot be empty")
	}
	if credits < 0 {
		return nil, shared.NewValidationError("credits", "starting credits cannot be negative")
	}
	if starter == nil {
		return nil, shared.NewValidationError("ship", "player needs a starter ship")
	}
	if location == nil {
		return nil, shared.NewValidationError("location", "player needs a starting location")
	}

	return &Player{
		name:     name,
		credits:  credits,
		fleet:    []*navigation.Ship{starter},
		active:   0,
		location: location,
	}, nil
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Credits() float64 {
	return p.credits
}

func (p *Player) Location() *system.CelestialBody {
	return p.location
}

// ActiveShip returns the ship the player is currently commanding
func (p *Player) ActiveShip() *navigation.Ship {
	return p.fleet[p.active]
}

// ActiveShipIndex returns the fleet index of the active ship
func (p *Player) ActiveShipIndex() int {
	return p.active
}

// Fleet returns the owned ships in purchase order
func (p *Player) Fleet() []*navigation.Ship {
	return append([]*navigation.Ship(nil), p.fleet...)
}

// FleetSize returns the number of owned ships
func (p *Player) FleetSize() int {
	return len(p.fleet)
}

// CanAfford checks credits >= cost
func (p *Player) CanAfford(cost float64) bool {
	return p.credits >= cost
}

// Spend deducts cost; fails without mutation if credits are short.
// Spending exactly the balance leaves zero credits.
func (p *Player) Spend(cost float64) error {
	if cost < 0 {
		return shared.NewValidationError("cost", "cost cannot be negative")
	}
	if !p.CanAfford(cost) {
		return shared.NewInsufficientCreditsError(cost, p.credits)
	}
	p.credits -= cost
	return nil
}

// Earn adds sale proceeds
func (p *Player) Earn(amount float64) error {
	if amount < 0 {
		return shared.NewValidationError("amount", "earnings cannot be negative")
	}
	p.credits += amount
	return nil
}

// AddShip appends a ship to the fleet without activating it
func (p *Player) AddShip(ship *navigation.Ship) error {
	if ship == nil {
		return shared.NewValidationError("ship", "ship cannot be nil")
	}
	for _, owned := range p.fleet {
		if owned == ship || owned.ID() == ship.ID() {
			return shared.NewValidationError("ship", fmt.Sprintf("ship %s already in fleet", ship.Name()))
		}
	}
	p.fleet = append(p.fleet, ship)
	return nil
}

// SwitchActiveShip makes the ship at index the active one
func (p *Player) SwitchActiveShip(index int) error {
	if index < 0 || index >= len(p.fleet) {
		return shared.NewInvalidShipIndexError(index)
	}
	p.active = index
	return nil
}

// MoveTo relocates the player to a body of world; the location never leaves it
func (p *Player) MoveTo(world *system.World, body *system.CelestialBody) error {
	if body == nil || world == nil || !world.Contains(body) {
		return shared.NewValidationError("location", "destination is not part of this world")
	}
	p.location = body
	return nil
}
