package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/content"
	"github.com/andrescamacho/spacemining-go/test/helpers"
	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

const creditTolerance = 0.01

type sessionContext struct {
	bodies  []*system.CelestialBody
	starter *navigation.StatProfile
	rng     shared.RandomSource
	session *game.Session

	err     error
	message string
	mined   *game.MineResult
	sale    *game.SaleResult
}

func (sc *sessionContext) reset() {
	sc.bodies = nil
	sc.starter = nil
	sc.rng = shared.NewMockRandom(0.5)
	sc.session = nil
	sc.clearResult()
}

func (sc *sessionContext) clearResult() {
	sc.err = nil
	sc.message = ""
	sc.mined = nil
	sc.sale = nil
}

// frontierOutpost mirrors the Frontier Trading Post of the default world
func frontierOutpost() (*market.Outpost, error) {
	return market.NewOutpost(
		"Frontier Trading Post",
		market.OutpostTypeMiningStation,
		map[shared.ResourceKind]float64{
			shared.ResourceIron:            2.5,
			shared.ResourceCopper:          4.0,
			shared.ResourceTitanium:        9.0,
			shared.ResourceGold:            16.0,
			shared.ResourceRareEarth:       28.0,
			shared.ResourceQuantumCrystals: 110.0,
		},
		map[shared.ResourceKind]float64{
			shared.ResourceIron:     1.2,
			shared.ResourceCopper:   1.1,
			shared.ResourceTitanium: 0.9,
		},
	)
}

// parsePools parses "IRON=100,COPPER=50"
func parsePools(raw string) (map[shared.ResourceKind]int, error) {
	pools := make(map[shared.ResourceKind]int)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return pools, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed pool %q", pair)
		}
		kind, err := shared.ParseResourceKind(parts[0])
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("malformed quantity in %q: %w", pair, err)
		}
		pools[kind] = qty
	}
	return pools, nil
}

// World setup

func (sc *sessionContext) aWorldWithTheFollowingBodies(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("world table needs a header and at least one body")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	cell := func(row *messages.PickleTableRow, name string) string {
		i, ok := columns[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row.Cells[i].Value)
	}

	sc.bodies = nil
	for _, row := range table.Rows[1:] {
		distance, err := strconv.ParseFloat(cell(row, "distance"), 64)
		if err != nil {
			return fmt.Errorf("invalid distance: %w", err)
		}
		difficulty, err := strconv.ParseFloat(cell(row, "difficulty"), 64)
		if err != nil {
			return fmt.Errorf("invalid difficulty: %w", err)
		}
		pools, err := parsePools(cell(row, "resources"))
		if err != nil {
			return err
		}

		var outpost *market.Outpost
		if cell(row, "outpost") == "yes" {
			if outpost, err = frontierOutpost(); err != nil {
				return err
			}
		}

		body, err := system.NewCelestialBody(
			cell(row, "name"),
			distance,
			system.BodyType(cell(row, "type")),
			difficulty,
			pools,
			outpost,
			outpost != nil,
		)
		if err != nil {
			return err
		}
		sc.bodies = append(sc.bodies, body)
	}
	return nil
}

func (sc *sessionContext) miningRollsAre(roll float64) error {
	sc.rng = shared.NewMockRandom(roll)
	return nil
}

func (sc *sessionContext) theStarterShipHasCargoCapacityAndFuel(capacity, fuel int) error {
	profile := navigation.StatProfile{
		CargoCapacity:    capacity,
		MiningEfficiency: 10.0,
		Speed:            5.0,
		FuelCapacity:     100,
		CurrentFuel:      fuel,
	}
	if fuel > profile.FuelCapacity {
		profile.FuelCapacity = fuel
	}
	sc.starter = &profile
	return nil
}

func (sc *sessionContext) aGameStartedWithCredits(credits float64) error {
	world, err := system.NewWorld(sc.bodies)
	if err != nil {
		return err
	}

	tables, err := content.Default()
	if err != nil {
		return err
	}
	catalog := tables.Catalog
	if sc.starter != nil {
		starter := catalog.StarterShip()
		starter.Profile = *sc.starter
		if catalog, err = shipyard.NewCatalog(starter, catalog.Upgrades(), catalog.Blueprints()); err != nil {
			return err
		}
	}

	sc.session, err = game.NewSession(
		game.Settings{PlayerName: "Tester", StartingCredits: credits},
		world,
		catalog,
		sc.rng,
		shared.NewMockClock(helpers.FixtureTime),
	)
	return err
}

// Actions

func (sc *sessionContext) record(message string, err error) {
	sc.err = err
	sc.message = message
	if err != nil {
		sc.message = err.Error()
	}
}

func (sc *sessionContext) requireSession() error {
	if sc.session == nil {
		return fmt.Errorf("no game started")
	}
	return nil
}

func (sc *sessionContext) iMine(resource string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()

	kind, err := shared.ParseResourceKind(resource)
	if err != nil {
		sc.record("", err)
		return nil
	}
	result, err := sc.session.Mine(kind)
	if err != nil {
		sc.record("", err)
		return nil
	}
	sc.mined = result
	sc.record(result.Message, nil)
	return nil
}

func (sc *sessionContext) iMineTimes(resource string, times int) error {
	for i := 0; i < times; i++ {
		if err := sc.iMine(resource); err != nil {
			return err
		}
		if sc.err != nil {
			return fmt.Errorf("mining attempt %d failed: %w", i+1, sc.err)
		}
	}
	return nil
}

func (sc *sessionContext) iTravelToBody(index int) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()

	result, err := sc.session.TravelTo(index)
	if err != nil {
		sc.record("", err)
		return nil
	}
	sc.record(result.Message, nil)
	return nil
}

func (sc *sessionContext) iSellAllCargo() error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()

	result, err := sc.session.SellAll()
	if err != nil {
		sc.record("", err)
		return nil
	}
	sc.sale = result
	sc.record(result.Message, nil)
	return nil
}

func (sc *sessionContext) iSell(quantity int, resource string) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()

	kind, err := shared.ParseResourceKind(resource)
	if err != nil {
		sc.record("", err)
		return nil
	}
	result, err := sc.session.Sell(kind, quantity)
	if err != nil {
		sc.record("", err)
		return nil
	}
	sc.sale = result
	sc.record(result.Message, nil)
	return nil
}

func (sc *sessionContext) iBuyUpgrade(index int) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()

	result, err := sc.session.BuyUpgrade(index)
	if err != nil {
		sc.record("", err)
		return nil
	}
	sc.record(result.Message, nil)
	return nil
}

func (sc *sessionContext) iBuyShip(index int) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()

	result, err := sc.session.BuyShip(index)
	if err != nil {
		sc.record("", err)
		return nil
	}
	sc.record(result.Message, nil)
	return nil
}

func (sc *sessionContext) iSwitchToShip(index int) error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()

	result, err := sc.session.SwitchActiveShip(index)
	if err != nil {
		sc.record("", err)
		return nil
	}
	sc.record(result.Message, nil)
	return nil
}

func (sc *sessionContext) iEndTheTurn() error {
	if err := sc.requireSession(); err != nil {
		return err
	}
	sc.clearResult()
	sc.record(sc.session.EndTurn().Message, nil)
	return nil
}

// Outcome assertions

func (sc *sessionContext) theActionShouldSucceed() error {
	if sc.err != nil {
		return fmt.Errorf("expected success, got error: %v", sc.err)
	}
	return nil
}

func (sc *sessionContext) theActionShouldFailWith(message string) error {
	if sc.err == nil {
		return fmt.Errorf("expected failure %q, but the action succeeded", message)
	}
	if sc.err.Error() != message {
		return fmt.Errorf("expected error %q, got %q", message, sc.err.Error())
	}
	if !shared.IsDomainError(sc.err) {
		return fmt.Errorf("expected a domain error, got %T", sc.err)
	}
	return nil
}

func (sc *sessionContext) theActionShouldFailMentioning(fragment string) error {
	if sc.err == nil {
		return fmt.Errorf("expected failure mentioning %q, but the action succeeded", fragment)
	}
	if !strings.Contains(sc.err.Error(), fragment) {
		return fmt.Errorf("expected error to mention %q, got %q", fragment, sc.err.Error())
	}
	return nil
}

func (sc *sessionContext) theMessageShouldBe(expected string) error {
	if sc.message != expected {
		return fmt.Errorf("expected message %q, got %q", expected, sc.message)
	}
	return nil
}

func (sc *sessionContext) theMiningResultShouldBe(mined, loaded, refunded int) error {
	if sc.mined == nil {
		return fmt.Errorf("no mining result recorded")
	}
	if sc.mined.Mined != mined || sc.mined.Loaded != loaded || sc.mined.Refunded != refunded {
		return fmt.Errorf("expected %d/%d/%d mined/loaded/refunded, got %d/%d/%d",
			mined, loaded, refunded, sc.mined.Mined, sc.mined.Loaded, sc.mined.Refunded)
	}
	return nil
}

func (sc *sessionContext) theMiningResultShouldBePartial(not string) error {
	if sc.mined == nil {
		return fmt.Errorf("no mining result recorded")
	}
	want := not == ""
	if sc.mined.Partial != want {
		return fmt.Errorf("expected partial=%v, got %v", want, sc.mined.Partial)
	}
	return nil
}

func (sc *sessionContext) theSaleShouldBePartial(not string) error {
	if sc.sale == nil {
		return fmt.Errorf("no sale recorded")
	}
	want := not == ""
	if sc.sale.Partial != want {
		return fmt.Errorf("expected partial=%v, got %v", want, sc.sale.Partial)
	}
	return nil
}

func (sc *sessionContext) theSaleShouldHaveEarnedCredits(expected float64) error {
	if sc.sale == nil {
		return fmt.Errorf("no sale recorded")
	}
	if math.Abs(sc.sale.Earnings-expected) > creditTolerance {
		return fmt.Errorf("expected earnings %.2f, got %.2f", expected, sc.sale.Earnings)
	}
	return nil
}

// State assertions

func (sc *sessionContext) theActiveShipShouldHold(units int, resource string) error {
	kind, err := shared.ParseResourceKind(resource)
	if err != nil {
		return err
	}
	for _, item := range sc.session.Status().Ship.Cargo {
		if item.Kind == kind {
			if item.Units != units {
				return fmt.Errorf("expected %d %s in the hold, got %d", units, kind, item.Units)
			}
			return nil
		}
	}
	if units != 0 {
		return fmt.Errorf("expected %d %s in the hold, found none", units, kind)
	}
	return nil
}

func (sc *sessionContext) theActiveShipCargoShouldBeEmpty() error {
	if used := sc.session.Status().Ship.CargoUsed; used != 0 {
		return fmt.Errorf("expected an empty hold, got %d units", used)
	}
	return nil
}

func (sc *sessionContext) bodyShouldHaveLeft(name string, units int, resource string) error {
	kind, err := shared.ParseResourceKind(resource)
	if err != nil {
		return err
	}
	for _, body := range sc.bodies {
		if body.Name() == name {
			if got := body.Remaining(kind); got != units {
				return fmt.Errorf("expected %s to have %d %s left, got %d", name, units, kind, got)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown body %q", name)
}

func (sc *sessionContext) theTotalAcrossBodiesAndCargoShouldBe(resource string, total int) error {
	kind, err := shared.ParseResourceKind(resource)
	if err != nil {
		return err
	}
	if got := helpers.ResourceTotal(sc.bodies, sc.session, kind); got != total {
		return fmt.Errorf("expected %d %s in pools and holds, got %d", total, kind, got)
	}
	return nil
}

func (sc *sessionContext) theActiveShipShouldHaveFuel(fuel int) error {
	if got := sc.session.Status().Ship.CurrentFuel; got != fuel {
		return fmt.Errorf("expected %d fuel, got %d", fuel, got)
	}
	return nil
}

func (sc *sessionContext) theActiveShipShouldHaveFuelOutOf(fuel, capacity int) error {
	ship := sc.session.Status().Ship
	if ship.CurrentFuel != fuel || ship.FuelCapacity != capacity {
		return fmt.Errorf("expected fuel %d/%d, got %d/%d", fuel, capacity, ship.CurrentFuel, ship.FuelCapacity)
	}
	return nil
}

func (sc *sessionContext) theActiveShipShouldHaveCargoCapacity(capacity int) error {
	if got := sc.session.Status().Ship.CargoCapacity; got != capacity {
		return fmt.Errorf("expected cargo capacity %d, got %d", capacity, got)
	}
	return nil
}

func (sc *sessionContext) theActiveShipShouldBe(name string) error {
	if got := sc.session.Status().Ship.Name; got != name {
		return fmt.Errorf("expected active ship %q, got %q", name, got)
	}
	return nil
}

func (sc *sessionContext) theFleetShouldHaveShips(count int) error {
	if got := len(sc.session.Fleet()); got != count {
		return fmt.Errorf("expected %d ships, got %d", count, got)
	}
	return nil
}

func (sc *sessionContext) iShouldBeAt(name string) error {
	if got := sc.session.Status().Location; got != name {
		return fmt.Errorf("expected to be at %q, got %q", name, got)
	}
	return nil
}

func (sc *sessionContext) thePlayerShouldHaveCredits(credits float64) error {
	if got := sc.session.Credits(); math.Abs(got-credits) > creditTolerance {
		return fmt.Errorf("expected %.2f credits, got %.2f", credits, got)
	}
	return nil
}

func (sc *sessionContext) theTurnShouldBe(turn int) error {
	if got := sc.session.Turn(); got != turn {
		return fmt.Errorf("expected turn %d, got %d", turn, got)
	}
	return nil
}

// InitializeSessionScenario registers the domain-level game session steps
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	sc := &sessionContext{}

	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		sc.reset()
		return c, nil
	})

	ctx.Step(`^a world with the following bodies:$`, sc.aWorldWithTheFollowingBodies)
	ctx.Step(`^mining rolls are ([\d.]+)$`, sc.miningRollsAre)
	ctx.Step(`^the starter ship has cargo capacity (\d+) and fuel (\d+)$`, sc.theStarterShipHasCargoCapacityAndFuel)
	ctx.Step(`^a game started with ([\d.]+) credits$`, sc.aGameStartedWithCredits)

	ctx.Step(`^I mine "([^"]*)"$`, sc.iMine)
	ctx.Step(`^I mine "([^"]*)" (\d+) times$`, sc.iMineTimes)
	ctx.Step(`^I travel to body (-?\d+)$`, sc.iTravelToBody)
	ctx.Step(`^I sell all cargo$`, sc.iSellAllCargo)
	ctx.Step(`^I sell (-?\d+) "([^"]*)"$`, sc.iSell)
	ctx.Step(`^I buy upgrade (-?\d+)$`, sc.iBuyUpgrade)
	ctx.Step(`^I buy ship (-?\d+)$`, sc.iBuyShip)
	ctx.Step(`^I switch to ship (-?\d+)$`, sc.iSwitchToShip)
	ctx.Step(`^I end the turn$`, sc.iEndTheTurn)

	ctx.Step(`^the action should succeed$`, sc.theActionShouldSucceed)
	ctx.Step(`^the action should fail with "([^"]*)"$`, sc.theActionShouldFailWith)
	ctx.Step(`^the action should fail mentioning "([^"]*)"$`, sc.theActionShouldFailMentioning)
	ctx.Step(`^the message should be "([^"]*)"$`, sc.theMessageShouldBe)
	ctx.Step(`^the mining result should be (\d+) mined, (\d+) loaded and (\d+) refunded$`, sc.theMiningResultShouldBe)
	ctx.Step(`^the mining result should (not )?be partial$`, sc.theMiningResultShouldBePartial)
	ctx.Step(`^the sale should (not )?be partial$`, sc.theSaleShouldBePartial)
	ctx.Step(`^the sale should have earned ([\d.]+) credits$`, sc.theSaleShouldHaveEarnedCredits)

	ctx.Step(`^the active ship should hold (\d+) "([^"]*)"$`, sc.theActiveShipShouldHold)
	ctx.Step(`^the active ship cargo should be empty$`, sc.theActiveShipCargoShouldBeEmpty)
	ctx.Step(`^"([^"]*)" should have (\d+) "([^"]*)" left$`, sc.bodyShouldHaveLeft)
	ctx.Step(`^the total "([^"]*)" across bodies and cargo should be (\d+)$`, sc.theTotalAcrossBodiesAndCargoShouldBe)
	ctx.Step(`^the active ship should have (\d+) fuel$`, sc.theActiveShipShouldHaveFuel)
	ctx.Step(`^the active ship should have (\d+) fuel out of (\d+)$`, sc.theActiveShipShouldHaveFuelOutOf)
	ctx.Step(`^the active ship should have cargo capacity (\d+)$`, sc.theActiveShipShouldHaveCargoCapacity)
	ctx.Step(`^the active ship should be "([^"]*)"$`, sc.theActiveShipShouldBe)
	ctx.Step(`^the fleet should have (\d+) ships$`, sc.theFleetShouldHaveShips)
	ctx.Step(`^I should be at "([^"]*)"$`, sc.iShouldBeAt)
	ctx.Step(`^the player should have ([\d.]+) credits$`, sc.thePlayerShouldHaveCredits)
	ctx.Step(`^the turn should be (\d+)$`, sc.theTurnShouldBe)
}
