package game_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/content"
	"github.com/andrescamacho/spacemining-go/test/helpers"
)

// newSession starts a game on Kepler-442b (iron 80) with Frontier Station at 1.5
func newSession(t *testing.T, credits float64, rng shared.RandomSource) (*game.Session, *system.World) {
	t.Helper()
	world := helpers.CreateTestWorld(t,
		helpers.CreateTestBody(t, "Kepler-442b", 0, 0.8, map[shared.ResourceKind]int{
			shared.ResourceIron:   80,
			shared.ResourceCopper: 40,
		}),
		helpers.CreateTestStation(t, "Frontier Station", 1.5),
	)
	tables, err := content.Default()
	require.NoError(t, err)

	session, err := game.NewSession(
		game.Settings{PlayerName: "Ripley", StartingCredits: credits},
		world,
		tables.Catalog,
		rng,
		shared.NewMockClock(helpers.FixtureTime),
	)
	require.NoError(t, err)
	return session, world
}

func TestNewSession_StartsAtTheFirstBody(t *testing.T) {
	session, _ := newSession(t, 1000, shared.NewMockRandom(0.5))

	status := session.Status()
	assert.Equal(t, "Ripley", status.PlayerName)
	assert.Equal(t, 1, status.Turn)
	assert.Equal(t, 1000.0, status.Credits)
	assert.Equal(t, "Kepler-442b", status.Location)
	assert.Equal(t, 0, status.LocationIndex)
	assert.Equal(t, "Rusty Prospector", status.Ship.Name)
	assert.Equal(t, 100, status.Ship.CurrentFuel)
	assert.Equal(t, 1, status.FleetSize)
	assert.Equal(t, helpers.FixtureTime, session.StartedAt())
	assert.Equal(t, session.ID().String(), status.SessionID)
}

func TestNewSession_RequiresCollaborators(t *testing.T) {
	tables, err := content.Default()
	require.NoError(t, err)

	_, err = game.NewSession(game.Settings{}, nil, tables.Catalog, shared.NewMockRandom(0.5), nil)
	assert.Error(t, err)

	world := helpers.CreateTestWorld(t, helpers.CreateTestStation(t, "Frontier Station", 0))
	_, err = game.NewSession(game.Settings{}, world, nil, shared.NewMockRandom(0.5), nil)
	assert.Error(t, err)

	session, err := game.NewSession(game.Settings{}, world, tables.Catalog, shared.NewMockRandom(0.5), nil)
	require.NoError(t, err)
	assert.Equal(t, game.DefaultPlayerName, session.Status().PlayerName)
}

func TestSession_MineConservesResources(t *testing.T) {
	// Arrange: Kepler-442b holds 80 iron, efficiency 10 / difficulty 0.8
	session, world := newSession(t, 1000, shared.NewMockRandom(0.5))
	before := helpers.ResourceTotal(world.Bodies(), session, shared.ResourceIron)

	// Act
	result, err := session.Mine(shared.ResourceIron)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 12, result.Mined)
	assert.Equal(t, 12, result.Loaded)
	assert.Equal(t, 68, result.Remaining)
	assert.Equal(t, 68, world.Start().Remaining(shared.ResourceIron))
	assert.Equal(t, before, helpers.ResourceTotal(world.Bodies(), session, shared.ResourceIron))
}

func TestSession_MineIntoNearlyFullHold(t *testing.T) {
	// 48 of 50 units are taken; the next yield of 12 only fits 2
	session, world := newSession(t, 1000, shared.NewMockRandom(0.5))
	for i := 0; i < 4; i++ {
		_, err := session.Mine(shared.ResourceIron)
		require.NoError(t, err)
	}
	_, err := session.Mine(shared.ResourceIron)
	require.NoError(t, err)
	require.Equal(t, 50, session.Status().Ship.CargoUsed)

	assert.Equal(t, 30, world.Start().Remaining(shared.ResourceIron))
	assert.Equal(t, 80, helpers.ResourceTotal(world.Bodies(), session, shared.ResourceIron))
}

func TestSession_FailedSaleChangesNothing(t *testing.T) {
	session, _ := newSession(t, 1000, shared.NewMockRandom(0.5))
	_, err := session.Mine(shared.ResourceIron)
	require.NoError(t, err)

	_, err = session.SellAll()

	var noOutpost *shared.NoOutpostError
	require.ErrorAs(t, err, &noOutpost)
	assert.Equal(t, 1000.0, session.Credits())
	assert.Equal(t, 12, session.Status().Ship.CargoUsed)

	_, err = session.TradeQuote()
	assert.ErrorAs(t, err, &noOutpost)
}

func TestSession_TradeQuoteMatchesSale(t *testing.T) {
	session, _ := newSession(t, 1000, shared.NewMockRandom(0.5))
	_, err := session.Mine(shared.ResourceIron)
	require.NoError(t, err)
	_, err = session.TravelTo(1)
	require.NoError(t, err)

	quote, err := session.TradeQuote()
	require.NoError(t, err)
	sale, err := session.SellAll()
	require.NoError(t, err)

	assert.Equal(t, "Frontier Trading Post", quote.OutpostName)
	assert.InDelta(t, 36.0, quote.Quote.Total, 1e-9)
	assert.InDelta(t, quote.Quote.Total, sale.Earnings, 1e-9)
	assert.InDelta(t, 1036.0, sale.BalanceAfter, 1e-9)
	assert.Equal(t, []string{"12 Iron"}, sale.Items)
}

func TestSession_Destinations(t *testing.T) {
	session, _ := newSession(t, 1000, shared.NewMockRandom(0.5))

	destinations := session.Destinations()

	require.Len(t, destinations, 1)
	assert.Equal(t, 1, destinations[0].Index)
	assert.Equal(t, "Frontier Station", destinations[0].Name)
	assert.Equal(t, 15, destinations[0].FuelCost)
	assert.True(t, destinations[0].CanTravel)
	assert.True(t, destinations[0].HasOutpost)
	assert.Equal(t, "Frontier Trading Post", destinations[0].OutpostName)
}

func TestSession_LocationReferenceValueTracksPools(t *testing.T) {
	// 80 iron at 2.0 plus 40 copper at 3.5
	session, _ := newSession(t, 1000, shared.NewMockRandom(0.5))
	assert.InDelta(t, 300.0, session.Location().ReferenceValue, 1e-9)

	_, err := session.Mine(shared.ResourceIron)
	require.NoError(t, err)

	view := session.Location()
	assert.InDelta(t, 276.0, view.ReferenceValue, 1e-9)
	assert.Len(t, view.Resources, 2)
}

func TestSession_ShopMarksAffordability(t *testing.T) {
	session, _ := newSession(t, 2000, shared.NewMockRandom(0.5))

	shop := session.Shop()

	require.NotEmpty(t, shop.Upgrades)
	assert.Equal(t, "Cargo Expansion", shop.Upgrades[0].Name)
	assert.True(t, shop.Upgrades[0].Affordable)
	assert.False(t, shop.Upgrades[1].Affordable, "Mining Laser Mk2 costs 3500")
	for _, ship := range shop.Ships {
		assert.False(t, ship.Affordable)
		require.NotNil(t, ship.Stats)
		assert.Equal(t, ship.Stats.FuelCapacity, ship.Stats.CurrentFuel)
	}
	assert.Equal(t, []string{"Rusty Prospector"}, shop.PlayerShips)
}

func TestSession_UpgradeAppliesToActiveShipOnly(t *testing.T) {
	session, _ := newSession(t, 20000, shared.NewMockRandom(0.5))
	bought, err := session.BuyShip(0)
	require.NoError(t, err)
	require.Equal(t, 1, bought.NewShipIndex)

	upgrade, err := session.BuyUpgrade(0)
	require.NoError(t, err)
	assert.Equal(t, -1, upgrade.NewShipIndex)
	assert.Equal(t, "Rusty Prospector", upgrade.ShipName)

	fleet := session.Fleet()
	require.Len(t, fleet, 2)
	assert.Equal(t, 75, fleet[0].CargoCapacity)
	assert.True(t, fleet[0].Active)
	assert.Equal(t, 150, fleet[1].CargoCapacity)
	assert.False(t, fleet[1].Active)
	assert.InDelta(t, 3000.0, session.Credits(), 1e-9)
}

func TestSession_CargoStaysWithItsShip(t *testing.T) {
	session, world := newSession(t, 20000, shared.NewMockRandom(0.5))
	_, err := session.Mine(shared.ResourceIron)
	require.NoError(t, err)
	_, err = session.BuyShip(0)
	require.NoError(t, err)

	_, err = session.SwitchActiveShip(1)
	require.NoError(t, err)

	assert.Equal(t, 0, session.Status().Ship.CargoUsed)
	assert.Equal(t, 12, session.Fleet()[0].CargoUsed)
	assert.Equal(t, 80, helpers.ResourceTotal(world.Bodies(), session, shared.ResourceIron))
}

func TestSession_ConcurrentActionsAreSerialized(t *testing.T) {
	session, world := newSession(t, 1000, shared.NewMockRandom(0.1))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = session.Mine(shared.ResourceCopper)
			_ = session.Status()
			_ = session.Destinations()
		}()
	}
	wg.Wait()

	assert.Equal(t, 40, helpers.ResourceTotal(world.Bodies(), session, shared.ResourceCopper))
	assert.GreaterOrEqual(t, world.Start().Remaining(shared.ResourceCopper), 0)
	assert.LessOrEqual(t, session.Status().Ship.CargoUsed, 50)
}

func TestSession_EndTurn(t *testing.T) {
	session, _ := newSession(t, 1000, shared.NewMockRandom(0.5))

	first := session.EndTurn()
	second := session.EndTurn()

	assert.Equal(t, 2, first.Turn)
	assert.Equal(t, "Turn 3 begins!", second.Message)
	assert.Equal(t, 3, session.Turn())
}

func TestEvents_CarryResultPayloads(t *testing.T) {
	session, _ := newSession(t, 20000, shared.NewMockRandom(0.5))
	id := session.ID().String()

	started := game.GameStartedEvent(session)
	assert.Equal(t, game.EventGameStarted, started.Name)
	assert.Equal(t, "Ripley", started.Payload["player_name"])

	mined, err := session.Mine(shared.ResourceIron)
	require.NoError(t, err)
	event := game.ResourceMinedEvent(id, session.Turn(), mined)
	assert.Equal(t, "Iron", event.Payload["resource"])
	assert.Equal(t, 12, event.Payload["loaded"])

	ship, err := session.BuyShip(0)
	require.NoError(t, err)
	assert.Equal(t, game.EventShipPurchased, game.PurchaseEvent(id, 1, ship).Name)

	upgrade, err := session.BuyUpgrade(0)
	require.NoError(t, err)
	assert.Equal(t, game.EventUpgradePurchased, game.PurchaseEvent(id, 1, upgrade).Name)

	turn := game.TurnEndedEvent(id, session.EndTurn())
	assert.Equal(t, 2, turn.Turn)
}
