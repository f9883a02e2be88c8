package shipyard

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// Item types sold by the shop
const (
	ItemTypeUpgrade = "upgrade"
	ItemTypeShip    = "ship"
)

// ShipUpgrade is an immutable catalog entry that raises ship stats
type ShipUpgrade struct {
	Name        string
	Description string
	Cost        float64
	Bonus       map[navigation.Stat]float64
}

// ShipBlueprint is an immutable catalog entry describing a purchasable ship.
// New ships start with a full tank.
type ShipBlueprint struct {
	Name        string
	Description string
	Cost        float64
	Profile     navigation.StatProfile
}

// Build constructs a fresh ship from the blueprint
func (b ShipBlueprint) Build() (*navigation.Ship, error) {
	profile := b.Profile
	profile.CurrentFuel = profile.FuelCapacity
	return navigation.NewShip(b.Name, profile)
}

// Catalog is the fixed list of upgrades and ships for sale, plus the
// starter ship every player begins with
type Catalog struct {
	starter    ShipBlueprint
	upgrades   []ShipUpgrade
	blueprints []ShipBlueprint
}

// NewCatalog creates a catalog with validation
func NewCatalog(starter ShipBlueprint, upgrades []ShipUpgrade, blueprints []ShipBlueprint) (*Catalog, error) {
	if starter.Name == "" {
		return nil, shared.NewValidationError("starter", "starter ship needs a name")
	}
	if err := starter.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("starter ship %s: %w", starter.Name, err)
	}

	for _, u := range upgrades {
		if u.Name == "" || u.Cost <= 0 {
			return nil, shared.NewValidationError("upgrades", fmt.Sprintf("upgrade %q needs a name and a positive cost", u.Name))
		}
		for stat, bonus := range u.Bonus {
			if !stat.IsValid() {
				return nil, shared.NewValidationError("upgrades", fmt.Sprintf("upgrade %q raises unknown stat %s", u.Name, stat))
			}
			if bonus < 0 {
				return nil, shared.NewValidationError("upgrades", fmt.Sprintf("upgrade %q has a negative bonus", u.Name))
			}
		}
	}

	for _, b := range blueprints {
		if b.Name == "" || b.Cost <= 0 {
			return nil, shared.NewValidationError("ships", fmt.Sprintf("ship %q needs a name and a positive cost", b.Name))
		}
		if err := b.Profile.Validate(); err != nil {
			return nil, fmt.Errorf("ship %s: %w", b.Name, err)
		}
	}

	return &Catalog{
		starter:    starter,
		upgrades:   append([]ShipUpgrade(nil), upgrades...),
		blueprints: append([]ShipBlueprint(nil), blueprints...),
	}, nil
}

// StarterShip returns the blueprint every new player receives for free
func (c *Catalog) StarterShip() ShipBlueprint {
	return c.starter
}

// Upgrades returns a copy of the upgrade list
func (c *Catalog) Upgrades() []ShipUpgrade {
	return append([]ShipUpgrade(nil), c.upgrades...)
}

// Blueprints returns a copy of the ship list
func (c *Catalog) Blueprints() []ShipBlueprint {
	return append([]ShipBlueprint(nil), c.blueprints...)
}

// Upgrade looks up an upgrade by catalog index
func (c *Catalog) Upgrade(index int) (ShipUpgrade, error) {
	if index < 0 || index >= len(c.upgrades) {
		return ShipUpgrade{}, shared.NewInvalidCatalogIndexError(ItemTypeUpgrade, index)
	}
	return c.upgrades[index], nil
}

// Blueprint looks up a ship by catalog index
func (c *Catalog) Blueprint(index int) (ShipBlueprint, error) {
	if index < 0 || index >= len(c.blueprints) {
		return ShipBlueprint{}, shared.NewInvalidCatalogIndexError(ItemTypeShip, index)
	}
	return c.blueprints[index], nil
}

// CanAfford is the purchase precondition: credits >= cost
func CanAfford(credits, cost float64) bool {
	return credits >= cost
}
