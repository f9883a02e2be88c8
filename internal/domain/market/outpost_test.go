package market_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

func newFrontierOutpost(t *testing.T) *market.Outpost {
	t.Helper()
	outpost, err := market.NewOutpost(
		"Frontier Trading Post",
		market.OutpostTypeMiningStation,
		map[shared.ResourceKind]float64{
			shared.ResourceIron:     2.5,
			shared.ResourceCopper:   4.0,
			shared.ResourceTitanium: 9.0,
		},
		map[shared.ResourceKind]float64{
			shared.ResourceIron:     1.2,
			shared.ResourceTitanium: 0.9,
		},
	)
	require.NoError(t, err)
	return outpost
}

func TestOutpost_SellPriceAppliesDemand(t *testing.T) {
	outpost := newFrontierOutpost(t)

	assert.InDelta(t, 3.0, outpost.SellPrice(shared.ResourceIron), 1e-9)
	assert.InDelta(t, 8.1, outpost.SellPrice(shared.ResourceTitanium), 1e-9)
	assert.InDelta(t, 4.0, outpost.SellPrice(shared.ResourceCopper), 1e-9, "missing demand defaults to 1.0")
	assert.Equal(t, 0.0, outpost.SellPrice(shared.ResourceGold), "unlisted resources are worth nothing here")
	assert.Len(t, outpost.Prices(), len(shared.AllResourceKinds()))
}

func TestOutpost_QuoteDoesNotMutateCargo(t *testing.T) {
	outpost := newFrontierOutpost(t)
	hold, err := shared.NewCargoHold(50)
	require.NoError(t, err)
	hold.Add(shared.ResourceCopper, 10)
	hold.Add(shared.ResourceIron, 12)

	quote := outpost.Quote(hold)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, shared.ResourceIron, quote.Lines[0].Kind)
	assert.InDelta(t, 36.0, quote.Lines[0].Value, 1e-9)
	assert.InDelta(t, 40.0, quote.Lines[1].Value, 1e-9)
	assert.InDelta(t, 76.0, quote.Total, 1e-9)
	assert.Equal(t, 22, hold.Units())
}

func TestNewOutpost_Validation(t *testing.T) {
	_, err := market.NewOutpost("", market.OutpostTypeTradingHub, nil, nil)
	assert.True(t, errors.Is(err, market.ErrInvalidOutpostName))

	_, err = market.NewOutpost("Bad", market.OutpostTypeTradingHub,
		map[shared.ResourceKind]float64{shared.ResourceIron: -1}, nil)
	assert.True(t, errors.Is(err, market.ErrInvalidPrice))

	_, err = market.NewOutpost("Bad", market.OutpostTypeTradingHub, nil,
		map[shared.ResourceKind]float64{shared.ResourceIron: -0.5})
	assert.True(t, errors.Is(err, market.ErrInvalidDemand))
}
