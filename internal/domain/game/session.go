package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/player"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
)

// Defaults used when a session is created without explicit settings
const (
	DefaultPlayerName      = "Commander"
	DefaultStartingCredits = 1000.0
)

// Settings configures a new session
type Settings struct {
	PlayerName      string
	StartingCredits float64
}

// Session is the aggregate root of one game: the player, the world and the
// shop catalog, plus the random source used for mining.
//
// Every operation validates before it mutates, so a failed operation leaves
// the session exactly as it was. All operations and read models hold the
// session mutex; callers on different goroutines are serialized.
type Session struct {
	mu sync.Mutex

	id          shared.SessionID
	player      *player.Player
	world       *system.World
	catalog     *shipyard.Catalog
	rng         shared.RandomSource
	fuelService *navigation.ShipFuelService
	turn        int
	startedAt   time.Time
}

// NewSession creates a session with the starter ship at the world's start
func NewSession(
	settings Settings,
	world *system.World,
	catalog *shipyard.Catalog,
	rng shared.RandomSource,
	clock shared.Clock,
) (*Session, error) {
	if world == nil {
		return nil, shared.NewValidationError("world", "session needs a world")
	}
	if catalog == nil {
		return nil, shared.NewValidationError("catalog", "session needs a shop catalog")
	}
	if rng == nil {
		return nil, shared.NewValidationError("rng", "session needs a random source")
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if settings.PlayerName == "" {
		settings.PlayerName = DefaultPlayerName
	}

	starterBlueprint := catalog.StarterShip()
	starter, err := navigation.NewShip(starterBlueprint.Name, starterBlueprint.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build starter ship: %w", err)
	}

	p, err := player.NewPlayer(settings.PlayerName, settings.StartingCredits, starter, world.Start())
	if err != nil {
		return nil, err
	}

	return &Session{
		id:          shared.NewSessionID(),
		player:      p,
		world:       world,
		catalog:     catalog,
		rng:         rng,
		fuelService: navigation.NewShipFuelService(),
		turn:        1,
		startedAt:   clock.Now(),
	}, nil
}

func (s *Session) ID() shared.SessionID {
	return s.id
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Turn returns the current turn number (starts at 1)
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Credits returns the player's balance
func (s *Session) Credits() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Credits()
}

// Mine extracts kind at the current location into the active ship's hold.
//
// Units the hold cannot take are returned to the body's pool, so the total
// of pool + cargo is unchanged by the operation. A full hold still mines and
// refunds everything; that result is successful and flagged partial.
func (s *Session) Mine(kind shared.ResourceKind) (*MineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location := s.player.Location()
	ship := s.player.ActiveShip()

	if !location.HasResource(kind) {
		return nil, shared.NewResourceUnavailableError(kind)
	}

	mined := location.MineResource(kind, ship.MiningEfficiency(), s.rng)
	if mined == 0 {
		return nil, shared.NewMiningFailedError(kind)
	}

	loaded := ship.Cargo().Add(kind, mined)
	refunded := mined - loaded
	location.ReturnResource(kind, refunded)

	result := &MineResult{
		Kind:      kind,
		Location:  location.Name(),
		Mined:     mined,
		Loaded:    loaded,
		Refunded:  refunded,
		Remaining: location.Remaining(kind),
	}
	if refunded > 0 {
		result.Partial = true
		result.Message = fmt.Sprintf("Cargo full! Only loaded %d units of %s", loaded, kind.DisplayName())
	} else {
		result.Message = fmt.Sprintf("Mined %d units of %s!", loaded, kind.DisplayName())
	}
	return result, nil
}

// TravelTo moves the player to the body at index, burning
// floor(|d(target) - d(current)| * 10) fuel from the active ship
func (s *Session) TravelTo(index int) (*TravelResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	destination, err := s.world.BodyAt(index)
	if err != nil {
		return nil, err
	}

	current := s.player.Location()
	if destination == current {
		return nil, shared.NewInvalidDestinationError(index, "Already at this location")
	}

	ship := s.player.ActiveShip()
	used, err := s.fuelService.Burn(ship, current.Distance(), destination.Distance())
	if err != nil {
		return nil, err
	}

	if err := s.player.MoveTo(s.world, destination); err != nil {
		_ = ship.Refuel(used)
		return nil, err
	}

	return &TravelResult{
		From:          current.Name(),
		To:            destination.Name(),
		Destination:   index,
		FuelUsed:      used,
		RemainingFuel: ship.CurrentFuel(),
		Message:       fmt.Sprintf("Traveled to %s! Used %d fuel.", destination.Name(), used),
	}, nil
}

// localOutpost returns the outpost at the current location or a NoOutpostError
func (s *Session) localOutpost() (*market.Outpost, error) {
	location := s.player.Location()
	outpost, ok := location.Outpost()
	if !ok {
		return nil, shared.NewNoOutpostError(location.Name())
	}
	return outpost, nil
}

// SellAll sells the active ship's entire hold at the local outpost
func (s *Session) SellAll() (*SaleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outpost, err := s.localOutpost()
	if err != nil {
		return nil, err
	}

	cargo := s.player.ActiveShip().Cargo()
	if cargo.IsEmpty() {
		return nil, shared.NewNoCargoError("No cargo to trade")
	}

	result := &SaleResult{
		Outpost:       outpost.Name(),
		BalanceBefore: s.player.Credits(),
	}
	for _, item := range cargo.Snapshot() {
		removed := cargo.Remove(item.Kind, item.Units)
		price := outpost.SellPrice(item.Kind)
		value := float64(removed) * price
		result.Lines = append(result.Lines, market.QuoteLine{
			Kind:      item.Kind,
			Amount:    removed,
			UnitPrice: price,
			Value:     value,
		})
		result.Items = append(result.Items, fmt.Sprintf("%d %s", removed, item.Kind.DisplayName()))
		result.Earnings += value
	}

	if err := s.player.Earn(result.Earnings); err != nil {
		return nil, err
	}
	result.BalanceAfter = s.player.Credits()
	result.Message = fmt.Sprintf("Sold all cargo at %s for %.0f credits!", outpost.Name(), result.Earnings)
	return result, nil
}

// Sell sells quantity units of kind at the local outpost. A quantity of zero
// or less sells everything held of that kind; asking for more than is held
// sells what is held and flags the result partial.
func (s *Session) Sell(kind shared.ResourceKind, quantity int) (*SaleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outpost, err := s.localOutpost()
	if err != nil {
		return nil, err
	}

	cargo := s.player.ActiveShip().Cargo()
	if cargo.IsEmpty() {
		return nil, shared.NewNoCargoError("No cargo to trade")
	}

	held := cargo.Quantity(kind)
	if held == 0 {
		return nil, shared.NewNoCargoError("No cargo of this type")
	}

	requested := quantity
	if requested <= 0 {
		requested = held
	}

	removed := cargo.Remove(kind, requested)
	price := outpost.SellPrice(kind)
	earnings := float64(removed) * price

	balanceBefore := s.player.Credits()
	if err := s.player.Earn(earnings); err != nil {
		cargo.Add(kind, removed)
		return nil, err
	}

	return &SaleResult{
		Outpost: outpost.Name(),
		Lines: []market.QuoteLine{{
			Kind:      kind,
			Amount:    removed,
			UnitPrice: price,
			Value:     earnings,
		}},
		Items:         []string{fmt.Sprintf("%d %s", removed, kind.DisplayName())},
		Earnings:      earnings,
		BalanceBefore: balanceBefore,
		BalanceAfter:  s.player.Credits(),
		Partial:       removed < requested,
		Message:       fmt.Sprintf("Sold %d %s at %s for %.0f credits!", removed, kind.DisplayName(), outpost.Name(), earnings),
	}, nil
}

// BuyUpgrade buys the catalog upgrade at index and applies it to the active ship
func (s *Session) BuyUpgrade(index int) (*PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	upgrade, err := s.catalog.Upgrade(index)
	if err != nil {
		return nil, err
	}

	balanceBefore := s.player.Credits()
	if err := s.player.Spend(upgrade.Cost); err != nil {
		return nil, err
	}

	ship := s.player.ActiveShip()
	if err := ship.ApplyBonuses(upgrade.Bonus); err != nil {
		_ = s.player.Earn(upgrade.Cost)
		return nil, err
	}

	return &PurchaseResult{
		ItemType:      shipyard.ItemTypeUpgrade,
		ItemIndex:     index,
		Name:          upgrade.Name,
		Cost:          upgrade.Cost,
		BalanceBefore: balanceBefore,
		BalanceAfter:  s.player.Credits(),
		ShipName:      ship.Name(),
		NewShipIndex:  -1,
		Message:       fmt.Sprintf("Purchased %s! Credits remaining: %.0f", upgrade.Name, s.player.Credits()),
	}, nil
}

// BuyShip buys the catalog ship at index. The new ship joins the fleet but
// does not become active.
func (s *Session) BuyShip(index int) (*PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blueprint, err := s.catalog.Blueprint(index)
	if err != nil {
		return nil, err
	}

	if !s.player.CanAfford(blueprint.Cost) {
		return nil, shared.NewInsufficientCreditsError(blueprint.Cost, s.player.Credits())
	}

	ship, err := blueprint.Build()
	if err != nil {
		return nil, err
	}

	balanceBefore := s.player.Credits()
	if err := s.player.Spend(blueprint.Cost); err != nil {
		return nil, err
	}
	if err := s.player.AddShip(ship); err != nil {
		_ = s.player.Earn(blueprint.Cost)
		return nil, err
	}

	return &PurchaseResult{
		ItemType:      shipyard.ItemTypeShip,
		ItemIndex:     index,
		Name:          blueprint.Name,
		Cost:          blueprint.Cost,
		BalanceBefore: balanceBefore,
		BalanceAfter:  s.player.Credits(),
		ShipName:      ship.Name(),
		NewShipIndex:  s.player.FleetSize() - 1,
		Message:       fmt.Sprintf("Purchased %s! Credits remaining: %.0f", ship.Name(), s.player.Credits()),
	}, nil
}

// SwitchActiveShip makes the fleet ship at index the active one
func (s *Session) SwitchActiveShip(index int) (*SwitchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.player.SwitchActiveShip(index); err != nil {
		return nil, err
	}

	ship := s.player.ActiveShip()
	return &SwitchResult{
		Index:   index,
		Ship:    ship.Name(),
		Message: fmt.Sprintf("Switched to %s!", ship.Name()),
	}, nil
}

// EndTurn advances the turn counter
func (s *Session) EndTurn() *TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turn++
	return &TurnResult{
		Turn:    s.turn,
		Message: fmt.Sprintf("Turn %d begins!", s.turn),
	}
}
