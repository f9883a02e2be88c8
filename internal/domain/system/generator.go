package system

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// ResourceRange is an inclusive pool-size range drawn once at generation
type ResourceRange struct {
	Min int
	Max int
}

// OutpostTemplate describes a trading post to attach to a body
type OutpostTemplate struct {
	Name       string
	Type       market.OutpostType
	BasePrices map[shared.ResourceKind]float64
	Demand     map[shared.ResourceKind]float64
}

// BodyTemplate describes one body before its pools are rolled
type BodyTemplate struct {
	Name             string
	Distance         float64
	Type             BodyType
	MiningDifficulty float64
	Resources        map[shared.ResourceKind]ResourceRange
	Outpost          *OutpostTemplate
	HasShipShop      bool
}

// WorldTemplate is the ordered content table a world is generated from
type WorldTemplate struct {
	Bodies []BodyTemplate
}

// Generator rolls a World from a template
type Generator struct {
	template WorldTemplate
}

// NewGenerator validates the template and creates a generator
func NewGenerator(template WorldTemplate) (*Generator, error) {
	if len(template.Bodies) == 0 {
		return nil, shared.NewValidationError("bodies", "world template has no bodies")
	}
	for _, body := range template.Bodies {
		for kind, r := range body.Resources {
			if !kind.IsValid() {
				return nil, shared.NewValidationError("resources", fmt.Sprintf("%s: unknown resource %s", body.Name, kind))
			}
			if r.Min < 0 || r.Max < r.Min {
				return nil, shared.NewValidationError("resources", fmt.Sprintf("%s: bad range %d-%d for %s", body.Name, r.Min, r.Max, kind))
			}
		}
	}
	return &Generator{template: template}, nil
}

// Generate builds a fresh World. Pool sizes are drawn with one
// RandIntInclusive per resource, bodies in template order and resources in
// canonical order, so a seeded source always yields the same world.
func (g *Generator) Generate(rng shared.RandomSource) (*World, error) {
	bodies := make([]*CelestialBody, 0, len(g.template.Bodies))

	for _, tmpl := range g.template.Bodies {
		pool := make(map[shared.ResourceKind]int, len(tmpl.Resources))
		for _, kind := range shared.AllResourceKinds() {
			r, ok := tmpl.Resources[kind]
			if !ok {
				continue
			}
			pool[kind] = shared.RandIntInclusive(rng, r.Min, r.Max)
		}

		var outpost *market.Outpost
		if tmpl.Outpost != nil {
			o, err := market.NewOutpost(tmpl.Outpost.Name, tmpl.Outpost.Type, tmpl.Outpost.BasePrices, tmpl.Outpost.Demand)
			if err != nil {
				return nil, fmt.Errorf("outpost at %s: %w", tmpl.Name, err)
			}
			outpost = o
		}

		body, err := NewCelestialBody(tmpl.Name, tmpl.Distance, tmpl.Type, tmpl.MiningDifficulty, pool, outpost, tmpl.HasShipShop)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}

	return NewWorld(bodies)
}
