package ledger

import "fmt"

// TransactionType names the game action that moved credits
type TransactionType string

const (
	TransactionTypeSellCargo       TransactionType = "SELL_CARGO"
	TransactionTypePurchaseUpgrade TransactionType = "PURCHASE_UPGRADE"
	TransactionTypePurchaseShip    TransactionType = "PURCHASE_SHIP"
)

// Category groups transaction types for the profit & loss and cash flow reports
type Category string

const (
	CategoryTradingRevenue  Category = "TRADING_REVENUE"
	CategoryShipUpgrades    Category = "SHIP_UPGRADES"
	CategoryShipInvestments Category = "SHIP_INVESTMENTS"
)

// kinds is the one place that says what a transaction type means: the report
// category it rolls into and what its RelatedEntityID names. Report order
// follows this table.
var kinds = []struct {
	txType   TransactionType
	category Category
	entity   string
}{
	{TransactionTypeSellCargo, CategoryTradingRevenue, "outpost"},
	{TransactionTypePurchaseUpgrade, CategoryShipUpgrades, "upgrade"},
	{TransactionTypePurchaseShip, CategoryShipInvestments, "ship"},
}

// AllTransactionTypes lists every journaled action
func AllTransactionTypes() []TransactionType {
	types := make([]TransactionType, len(kinds))
	for i, k := range kinds {
		types[i] = k.txType
	}
	return types
}

// AllCategories lists every report category in report order
func AllCategories() []Category {
	categories := make([]Category, len(kinds))
	for i, k := range kinds {
		categories[i] = k.category
	}
	return categories
}

func (t TransactionType) String() string { return string(t) }

// IsValid reports whether t is a journaled action
func (t TransactionType) IsValid() bool {
	_, ok := t.Category()
	return ok
}

// Category returns the report category of t
func (t TransactionType) Category() (Category, bool) {
	for _, k := range kinds {
		if k.txType == t {
			return k.category, true
		}
	}
	return "", false
}

// Entity returns what the related entity of a t transaction is ("outpost", "upgrade", "ship")
func (t TransactionType) Entity() string {
	for _, k := range kinds {
		if k.txType == t {
			return k.entity
		}
	}
	return ""
}

// ParseTransactionType accepts the stored form, e.g. "SELL_CARGO"
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

func (c Category) String() string { return string(c) }

// IsIncome is true for categories whose transactions add credits
func (c Category) IsIncome() bool {
	return c == CategoryTradingRevenue
}

// ParseCategory accepts the stored form, e.g. "SHIP_UPGRADES"
func ParseCategory(s string) (Category, error) {
	for _, k := range kinds {
		if string(k.category) == s {
			return k.category, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
