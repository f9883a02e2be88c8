package game

import (
	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/navigation"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// ShipView is a read-only snapshot of a ship
type ShipView struct {
	Index            int
	Name             string
	CargoUsed        int
	CargoCapacity    int
	Cargo            []shared.CargoItem
	MiningEfficiency float64
	Speed            float64
	CurrentFuel      int
	FuelCapacity     int
	Active           bool
}

// StatusView summarises the session for a status screen
type StatusView struct {
	SessionID       string
	Turn            int
	PlayerName      string
	Credits         float64
	Location        string
	LocationIndex   int
	Ship            ShipView
	ActiveShipIndex int
	FleetSize       int
}

// LocationView describes the current body
type LocationView struct {
	Index            int
	Name             string
	Type             string
	Distance         float64
	MiningDifficulty float64
	Resources        []shared.CargoItem
	ReferenceValue   float64
	HasOutpost       bool
	OutpostName      string
	OutpostType      string
	HasShipShop      bool
}

// DestinationView describes one reachable-or-not body
type DestinationView struct {
	Index        int
	Name         string
	Distance     float64
	BodyType     string
	HasOutpost   bool
	OutpostName  string
	HasShipShop  bool
	FuelCost     int
	CanTravel    bool
	HasResources bool
}

// TradeQuoteView prices the active ship's cargo at the local outpost
type TradeQuoteView struct {
	OutpostName  string
	OutpostType  string
	LocationName string
	Quote        market.Quote
}

// ShopItemView is one purchasable catalog entry
type ShopItemView struct {
	Index       int
	Name        string
	Description string
	Cost        float64
	Affordable  bool
	Bonus       map[navigation.Stat]float64
	Stats       *navigation.StatProfile
}

// ShopView is the shop listing with affordability for the current balance
type ShopView struct {
	Credits     float64
	Upgrades    []ShopItemView
	Ships       []ShopItemView
	PlayerShips []string
	CurrentShip string
	HasShipShop bool
}
