package market

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// DefaultDemand is the multiplier applied to resources an outpost has no
// demand entry for
const DefaultDemand = 1.0

// OutpostType tags the flavour of a trading post
type OutpostType string

const (
	OutpostTypeMiningStation    OutpostType = "mining_station"
	OutpostTypeResearchFacility OutpostType = "research_facility"
	OutpostTypeTradingHub       OutpostType = "trading_hub"
)

// Outpost is an immutable trading post attached to a celestial body
type Outpost struct {
	name       string
	kind       OutpostType
	basePrices map[shared.ResourceKind]float64
	demand     map[shared.ResourceKind]float64
}

// NewOutpost creates an outpost; maps are copied
func NewOutpost(
	name string,
	outpostType OutpostType,
	basePrices map[shared.ResourceKind]float64,
	demand map[shared.ResourceKind]float64,
) (*Outpost, error) {
	if name == "" {
		return nil, ErrInvalidOutpostName
	}

	prices := make(map[shared.ResourceKind]float64, len(basePrices))
	for kind, price := range basePrices {
		if price < 0 {
			return nil, fmt.Errorf("%w: %s=%.2f", ErrInvalidPrice, kind, price)
		}
		prices[kind] = price
	}

	multipliers := make(map[shared.ResourceKind]float64, len(demand))
	for kind, m := range demand {
		if m < 0 {
			return nil, fmt.Errorf("%w: %s=%.2f", ErrInvalidDemand, kind, m)
		}
		multipliers[kind] = m
	}

	return &Outpost{
		name:       name,
		kind:       outpostType,
		basePrices: prices,
		demand:     multipliers,
	}, nil
}

func (o *Outpost) Name() string {
	return o.name
}

func (o *Outpost) Type() OutpostType {
	return o.kind
}

// BasePrice returns the listed price of kind (0 if not listed)
func (o *Outpost) BasePrice(kind shared.ResourceKind) float64 {
	return o.basePrices[kind]
}

// Demand returns the demand multiplier for kind (1.0 if not listed)
func (o *Outpost) Demand(kind shared.ResourceKind) float64 {
	if m, ok := o.demand[kind]; ok {
		return m
	}
	return DefaultDemand
}

// SellPrice is the per-unit price paid for kind: base price times demand
func (o *Outpost) SellPrice(kind shared.ResourceKind) float64 {
	return o.BasePrice(kind) * o.Demand(kind)
}

// Prices returns the sell price of every resource kind
func (o *Outpost) Prices() map[shared.ResourceKind]float64 {
	prices := make(map[shared.ResourceKind]float64, len(shared.AllResourceKinds()))
	for _, kind := range shared.AllResourceKinds() {
		prices[kind] = o.SellPrice(kind)
	}
	return prices
}

// QuoteLine prices one resource line of a cargo manifest
type QuoteLine struct {
	Kind      shared.ResourceKind
	Amount    int
	UnitPrice float64
	Value     float64
}

// Quote is a priced manifest; it mutates nothing
type Quote struct {
	Outpost string
	Lines   []QuoteLine
	Total   float64
}

// Quote prices every line of a cargo hold in canonical order
func (o *Outpost) Quote(cargo *shared.CargoHold) Quote {
	quote := Quote{Outpost: o.name}
	for _, item := range cargo.Snapshot() {
		price := o.SellPrice(item.Kind)
		line := QuoteLine{
			Kind:      item.Kind,
			Amount:    item.Units,
			UnitPrice: price,
			Value:     float64(item.Units) * price,
		}
		quote.Lines = append(quote.Lines, line)
		quote.Total += line.Value
	}
	return quote
}
