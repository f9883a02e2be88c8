package content

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
)

type catalogFile struct {
	StarterShip shipEntry      `yaml:"starter_ship"`
	Upgrades    []upgradeEntry `yaml:"upgrades" validate:"dive"`
	Ships       []shipEntry    `yaml:"ships" validate:"dive"`
}

type upgradeEntry struct {
	Name        string             `yaml:"name" validate:"required"`
	Description string             `yaml:"description"`
	Cost        float64            `yaml:"cost" validate:"gt=0"`
	Bonus       map[string]float64 `yaml:"bonus" validate:"required,min=1,dive,keys,oneof=cargo_capacity mining_efficiency speed fuel_capacity,endkeys,min=0"`
}

type shipEntry struct {
	Name             string  `yaml:"name" validate:"required"`
	Description      string  `yaml:"description"`
	Cost             float64 `yaml:"cost" validate:"min=0"`
	CargoCapacity    int     `yaml:"cargo_capacity" validate:"min=0"`
	MiningEfficiency float64 `yaml:"mining_efficiency" validate:"gt=0"`
	Speed            float64 `yaml:"speed" validate:"gt=0"`
	FuelCapacity     int     `yaml:"fuel_capacity" validate:"min=0"`
}

// blueprint builds a fully fuelled blueprint from the entry
func (e shipEntry) blueprint() shipyard.ShipBlueprint {
	return shipyard.ShipBlueprint{
		Name:        e.Name,
		Description: e.Description,
		Cost:        e.Cost,
		Profile: navigation.StatProfile{
			CargoCapacity:    e.CargoCapacity,
			MiningEfficiency: e.MiningEfficiency,
			Speed:            e.Speed,
			FuelCapacity:     e.FuelCapacity,
			CurrentFuel:      e.FuelCapacity,
		},
	}
}

// ParseCatalog turns a catalog YAML document into a shop catalog
func ParseCatalog(data []byte) (*shipyard.Catalog, error) {
	var file catalogFile
	if err := decode(data, &file); err != nil {
		return nil, err
	}

	upgrades := make([]shipyard.ShipUpgrade, 0, len(file.Upgrades))
	for _, entry := range file.Upgrades {
		bonus := make(map[navigation.Stat]float64, len(entry.Bonus))
		for name, v := range entry.Bonus {
			stat, err := navigation.ParseStat(name)
			if err != nil {
				return nil, fmt.Errorf("upgrade %s: %w", entry.Name, err)
			}
			bonus[stat] = v
		}
		upgrades = append(upgrades, shipyard.ShipUpgrade{
			Name:        entry.Name,
			Description: entry.Description,
			Cost:        entry.Cost,
			Bonus:       bonus,
		})
	}

	blueprints := make([]shipyard.ShipBlueprint, 0, len(file.Ships))
	for _, entry := range file.Ships {
		blueprints = append(blueprints, entry.blueprint())
	}

	return shipyard.NewCatalog(file.StarterShip.blueprint(), upgrades, blueprints)
}
