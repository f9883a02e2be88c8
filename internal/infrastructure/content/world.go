package content

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
)

type worldFile struct {
	Bodies []bodyEntry `yaml:"bodies" validate:"required,min=1,dive"`
}

type bodyEntry struct {
	Name             string                `yaml:"name" validate:"required"`
	Distance         float64               `yaml:"distance" validate:"min=0"`
	Type             string                `yaml:"type" validate:"required,oneof=planet station asteroid moon"`
	MiningDifficulty float64               `yaml:"mining_difficulty" validate:"min=0"`
	HasShipShop      bool                  `yaml:"has_ship_shop"`
	Resources        map[string]rangeEntry `yaml:"resources" validate:"dive"`
	Outpost          *outpostEntry         `yaml:"outpost"`
}

type rangeEntry struct {
	Min int `yaml:"min" validate:"min=0"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

type outpostEntry struct {
	Name       string             `yaml:"name" validate:"required"`
	Type       string             `yaml:"type" validate:"required,oneof=mining_station research_facility trading_hub"`
	BasePrices map[string]float64 `yaml:"base_prices" validate:"required,dive,min=0"`
	Demand     map[string]float64 `yaml:"demand" validate:"dive,min=0"`
}

// ParseWorld turns a world YAML document into a generator
func ParseWorld(data []byte) (*system.Generator, error) {
	var file worldFile
	if err := decode(data, &file); err != nil {
		return nil, err
	}

	template := system.WorldTemplate{Bodies: make([]system.BodyTemplate, 0, len(file.Bodies))}
	for _, entry := range file.Bodies {
		body, err := entry.toTemplate()
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", entry.Name, err)
		}
		template.Bodies = append(template.Bodies, body)
	}

	return system.NewGenerator(template)
}

func (e bodyEntry) toTemplate() (system.BodyTemplate, error) {
	body := system.BodyTemplate{
		Name:             e.Name,
		Distance:         e.Distance,
		Type:             system.BodyType(e.Type),
		MiningDifficulty: e.MiningDifficulty,
		HasShipShop:      e.HasShipShop,
		Resources:        make(map[shared.ResourceKind]system.ResourceRange, len(e.Resources)),
	}

	for name, r := range e.Resources {
		kind, err := shared.ParseResourceKind(name)
		if err != nil {
			return system.BodyTemplate{}, err
		}
		body.Resources[kind] = system.ResourceRange{Min: r.Min, Max: r.Max}
	}

	if e.Outpost != nil {
		prices, err := resourceMap(e.Outpost.BasePrices)
		if err != nil {
			return system.BodyTemplate{}, err
		}
		demand, err := resourceMap(e.Outpost.Demand)
		if err != nil {
			return system.BodyTemplate{}, err
		}
		body.Outpost = &system.OutpostTemplate{
			Name:       e.Outpost.Name,
			Type:       market.OutpostType(e.Outpost.Type),
			BasePrices: prices,
			Demand:     demand,
		}
	}

	return body, nil
}

func resourceMap(in map[string]float64) (map[shared.ResourceKind]float64, error) {
	out := make(map[shared.ResourceKind]float64, len(in))
	for name, v := range in {
		kind, err := shared.ParseResourceKind(name)
		if err != nil {
			return nil, err
		}
		out[kind] = v
	}
	return out, nil
}
