package game

import (
	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
)

func (s *Session) shipView(index int, ship *navigation.Ship) ShipView {
	return ShipView{
		Index:            index,
		Name:             ship.Name(),
		CargoUsed:        ship.Cargo().Units(),
		CargoCapacity:    ship.CargoCapacity(),
		Cargo:            ship.Cargo().Snapshot(),
		MiningEfficiency: ship.MiningEfficiency(),
		Speed:            ship.Speed(),
		CurrentFuel:      ship.CurrentFuel(),
		FuelCapacity:     ship.FuelCapacity(),
		Active:           index == s.player.ActiveShipIndex(),
	}
}

// Status returns a snapshot of the player, location and active ship
func (s *Session) Status() StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()

	activeIndex := s.player.ActiveShipIndex()
	return StatusView{
		SessionID:       s.id.String(),
		Turn:            s.turn,
		PlayerName:      s.player.Name(),
		Credits:         s.player.Credits(),
		Location:        s.player.Location().Name(),
		LocationIndex:   s.world.IndexOf(s.player.Location()),
		Ship:            s.shipView(activeIndex, s.player.ActiveShip()),
		ActiveShipIndex: activeIndex,
		FleetSize:       s.player.FleetSize(),
	}
}

// Location describes the current body. Only resources with units left are listed;
// ReferenceValue prices them at base value, not at any outpost.
func (s *Session) Location() LocationView {
	s.mu.Lock()
	defer s.mu.Unlock()

	body := s.player.Location()
	view := LocationView{
		Index:            s.world.IndexOf(body),
		Name:             body.Name(),
		Type:             string(body.Type()),
		Distance:         body.Distance(),
		MiningDifficulty: body.MiningDifficulty(),
		HasOutpost:       body.HasOutpost(),
		HasShipShop:      body.HasShipShop(),
	}
	for _, item := range body.Resources() {
		if item.Units > 0 {
			view.Resources = append(view.Resources, item)
			view.ReferenceValue += float64(item.Units) * item.Kind.BaseValue()
		}
	}
	if outpost, ok := body.Outpost(); ok {
		view.OutpostName = outpost.Name()
		view.OutpostType = string(outpost.Type())
	}
	return view
}

// Destinations lists every other body with its fuel cost from here
func (s *Session) Destinations() []DestinationView {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.player.Location()
	ship := s.player.ActiveShip()

	var destinations []DestinationView
	for i, body := range s.world.Bodies() {
		if body == current {
			continue
		}
		cost := s.fuelService.FuelCost(current.Distance(), body.Distance())
		view := DestinationView{
			Index:        i,
			Name:         body.Name(),
			Distance:     body.Distance(),
			BodyType:     string(body.Type()),
			HasOutpost:   body.HasOutpost(),
			HasShipShop:  body.HasShipShop(),
			FuelCost:     cost,
			CanTravel:    s.fuelService.CanReach(ship, current.Distance(), body.Distance()),
			HasResources: body.Minable(),
		}
		if outpost, ok := body.Outpost(); ok {
			view.OutpostName = outpost.Name()
		}
		destinations = append(destinations, view)
	}
	return destinations
}

// TradeQuote prices the active ship's cargo at the local outpost without selling
func (s *Session) TradeQuote() (*TradeQuoteView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outpost, err := s.localOutpost()
	if err != nil {
		return nil, err
	}

	return &TradeQuoteView{
		OutpostName:  outpost.Name(),
		OutpostType:  string(outpost.Type()),
		LocationName: s.player.Location().Name(),
		Quote:        outpost.Quote(s.player.ActiveShip().Cargo()),
	}, nil
}

// Shop lists the catalog with affordability against the current balance
func (s *Session) Shop() ShopView {
	s.mu.Lock()
	defer s.mu.Unlock()

	credits := s.player.Credits()
	view := ShopView{
		Credits:     credits,
		CurrentShip: s.player.ActiveShip().Name(),
		HasShipShop: s.player.Location().HasShipShop(),
	}

	for i, u := range s.catalog.Upgrades() {
		bonus := make(map[navigation.Stat]float64, len(u.Bonus))
		for stat, v := range u.Bonus {
			bonus[stat] = v
		}
		view.Upgrades = append(view.Upgrades, ShopItemView{
			Index:       i,
			Name:        u.Name,
			Description: u.Description,
			Cost:        u.Cost,
			Affordable:  shipyard.CanAfford(credits, u.Cost),
			Bonus:       bonus,
		})
	}

	for i, b := range s.catalog.Blueprints() {
		stats := b.Profile
		stats.CurrentFuel = stats.FuelCapacity
		view.Ships = append(view.Ships, ShopItemView{
			Index:       i,
			Name:        b.Name,
			Description: b.Description,
			Cost:        b.Cost,
			Affordable:  shipyard.CanAfford(credits, b.Cost),
			Stats:       &stats,
		})
	}

	for _, ship := range s.player.Fleet() {
		view.PlayerShips = append(view.PlayerShips, ship.Name())
	}
	return view
}

// Fleet lists every owned ship
func (s *Session) Fleet() []ShipView {
	s.mu.Lock()
	defer s.mu.Unlock()

	fleet := s.player.Fleet()
	views := make([]ShipView, len(fleet))
	for i, ship := range fleet {
		views[i] = s.shipView(i, ship)
	}
	return views
}
