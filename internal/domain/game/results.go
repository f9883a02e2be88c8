package game

import (
	"github.com/andrescamacho/spacemining-go/internal/domain/market"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// MineResult describes a completed mining action.
// Mined = Loaded + Refunded; Partial is set when cargo could not take it all.
type MineResult struct {
	Kind      shared.ResourceKind
	Location  string
	Mined     int
	Loaded    int
	Refunded  int
	Remaining int
	Partial   bool
	Message   string
}

// TravelResult describes a completed trip
type TravelResult struct {
	From          string
	To            string
	Destination   int
	FuelUsed      int
	RemainingFuel int
	Message       string
}

// SaleResult describes cargo sold at an outpost
type SaleResult struct {
	Outpost       string
	Lines         []market.QuoteLine
	Items         []string
	Earnings      float64
	BalanceBefore float64
	BalanceAfter  float64
	Partial       bool
	Message       string
}

// PurchaseResult describes an upgrade or ship bought from the shop
type PurchaseResult struct {
	ItemType      string
	ItemIndex     int
	Name          string
	Cost          float64
	BalanceBefore float64
	BalanceAfter  float64
	ShipName      string
	NewShipIndex  int
	Message       string
}

// SwitchResult describes an active ship change
type SwitchResult struct {
	Index   int
	Ship    string
	Message string
}

// TurnResult describes the end of a turn
type TurnResult struct {
	Turn    int
	Message string
}
