package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

func saleEntry() ledger.Entry {
	return ledger.Entry{
		SessionID:       shared.NewSessionID(),
		Timestamp:       time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Turn:            4,
		Type:            ledger.TransactionTypeSellCargo,
		Amount:          88.8,
		BalanceBefore:   1000,
		BalanceAfter:    1088.8,
		Description:     "Sold 12 Iron",
		Metadata:        map[string]interface{}{"partial": false},
		RelatedEntityID: "Frontier Trading Post",
	}
}

func TestNewTransaction_AcceptsASale(t *testing.T) {
	tx, err := ledger.NewTransaction(saleEntry())

	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID().String())
	assert.Equal(t, ledger.CategoryTradingRevenue, tx.Category())
	assert.Equal(t, "outpost", tx.RelatedEntityType())
	assert.True(t, tx.IsIncome())

	metadata := tx.Metadata()
	metadata["partial"] = true
	assert.Equal(t, false, tx.Metadata()["partial"], "metadata is copied out")
}

func TestNewTransaction_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *ledger.Entry)
		field  string
	}{
		{"missing session", func(e *ledger.Entry) { e.SessionID = shared.SessionID{} }, "session_id"},
		{"unknown type", func(e *ledger.Entry) { e.Type = "REFUEL" }, "transaction_type"},
		{"zero amount", func(e *ledger.Entry) { e.Amount = 0; e.BalanceAfter = e.BalanceBefore }, "amount"},
		{"income with negative amount", func(e *ledger.Entry) { e.Amount = -5; e.BalanceAfter = 995 }, "amount"},
		{"broken balance chain", func(e *ledger.Entry) { e.BalanceAfter = 1100 }, "balance_after"},
		{"stamped in the future", func(e *ledger.Entry) { e.Timestamp = time.Now().Add(time.Hour) }, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := saleEntry()
			tt.mutate(&entry)

			_, err := ledger.NewTransaction(entry)

			var invalid *ledger.InvalidEntryError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestNewTransaction_PurchaseCannotOverdraw(t *testing.T) {
	_, err := ledger.NewTransaction(ledger.Entry{
		SessionID:     shared.NewSessionID(),
		Timestamp:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Type:          ledger.TransactionTypePurchaseShip,
		Amount:        -15000,
		BalanceBefore: 1000,
		BalanceAfter:  -14000,
	})

	var invalid *ledger.InvalidEntryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "balance_after", invalid.Field)
}

func TestTransactionKinds(t *testing.T) {
	entities := map[ledger.TransactionType]string{}
	for _, txType := range ledger.AllTransactionTypes() {
		entities[txType] = txType.Entity()
	}
	assert.Equal(t, map[ledger.TransactionType]string{
		ledger.TransactionTypeSellCargo:       "outpost",
		ledger.TransactionTypePurchaseUpgrade: "upgrade",
		ledger.TransactionTypePurchaseShip:    "ship",
	}, entities)

	assert.Equal(t, []ledger.Category{
		ledger.CategoryTradingRevenue,
		ledger.CategoryShipUpgrades,
		ledger.CategoryShipInvestments,
	}, ledger.AllCategories())

	category, err := ledger.ParseCategory("SHIP_UPGRADES")
	require.NoError(t, err)
	assert.False(t, category.IsIncome())

	_, err = ledger.ParseTransactionType("sell_cargo")
	assert.Error(t, err)
	_, err = ledger.ParseTransactionID("not-a-uuid")
	assert.Error(t, err)
	assert.True(t, ledger.IsKnownOrder(ledger.OrderOldestFirst))
	assert.False(t, ledger.IsKnownOrder("amount DESC"))
}
