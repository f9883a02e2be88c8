package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/test/helpers"
)

type entry struct {
	turn   int
	txType ledger.TransactionType
	amount float64
}

// seedJournal writes entries one minute apart, chaining balances from 20000
func seedJournal(t *testing.T, repo ledger.TransactionRepository, sessionID shared.SessionID, entries []entry) {
	t.Helper()
	balance := 20000.0
	for i, e := range entries {
		tx, err := ledger.NewTransaction(ledger.Entry{
			SessionID:     sessionID,
			Timestamp:     helpers.FixtureTime.Add(time.Duration(i) * time.Minute),
			Turn:          e.turn,
			Type:          e.txType,
			Amount:        e.amount,
			BalanceBefore: balance,
			BalanceAfter:  balance + e.amount,
			Description:   "seeded",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), tx))
		balance += e.amount
	}
}

func newRepo(t *testing.T) ledger.TransactionRepository {
	t.Helper()
	return persistence.NewGormTransactionRepository(helpers.NewTestDB(t))
}

var journal = []entry{
	{turn: 1, txType: ledger.TransactionTypeSellCargo, amount: 100},
	{turn: 1, txType: ledger.TransactionTypePurchaseUpgrade, amount: -2000},
	{turn: 2, txType: ledger.TransactionTypeSellCargo, amount: 300},
	{turn: 3, txType: ledger.TransactionTypePurchaseShip, amount: -15000},
	{turn: 3, txType: ledger.TransactionTypeSellCargo, amount: 200},
}

func TestGetProfitLoss(t *testing.T) {
	// Arrange
	repo := newRepo(t)
	sessionID := shared.NewSessionID()
	seedJournal(t, repo, sessionID, journal)
	seedJournal(t, repo, shared.NewSessionID(), []entry{{turn: 1, txType: ledger.TransactionTypeSellCargo, amount: 9999}})

	// Act
	resp, err := queries.NewGetProfitLossHandler(repo).Handle(context.Background(), &queries.GetProfitLossQuery{
		SessionID: sessionID.String(),
	})

	// Assert
	require.NoError(t, err)
	report := resp.(*queries.GetProfitLossResponse)
	assert.Equal(t, 600.0, report.TotalRevenue)
	assert.Equal(t, 17000.0, report.TotalExpenses)
	assert.Equal(t, -16400.0, report.NetProfit)
	assert.Equal(t, 600.0, report.RevenueBreakdown[ledger.CategoryTradingRevenue.String()])
	assert.Equal(t, 2000.0, report.ExpenseBreakdown[ledger.CategoryShipUpgrades.String()])
	assert.Equal(t, 15000.0, report.ExpenseBreakdown[ledger.CategoryShipInvestments.String()])

	assert.Equal(t, 3, report.Sales.Count)
	assert.InDelta(t, 200.0, report.Sales.Mean, 1e-9)
	assert.InDelta(t, 100.0, report.Sales.StdDev, 1e-9)
	assert.Equal(t, 300.0, report.Sales.Largest)
}

func TestGetProfitLoss_EmptyJournal(t *testing.T) {
	repo := newRepo(t)

	resp, err := queries.NewGetProfitLossHandler(repo).Handle(context.Background(), &queries.GetProfitLossQuery{
		SessionID: shared.NewSessionID().String(),
	})

	require.NoError(t, err)
	report := resp.(*queries.GetProfitLossResponse)
	assert.Zero(t, report.NetProfit)
	assert.Zero(t, report.Sales.Count)
	assert.Zero(t, report.Sales.StdDev)
}

func TestGetCashFlow_ByTurn(t *testing.T) {
	repo := newRepo(t)
	sessionID := shared.NewSessionID()
	seedJournal(t, repo, sessionID, journal)

	resp, err := queries.NewGetCashFlowHandler(repo).Handle(context.Background(), &queries.GetCashFlowQuery{
		SessionID: sessionID.String(),
		GroupBy:   queries.GroupByTurn,
	})

	require.NoError(t, err)
	flow := resp.(*queries.GetCashFlowResponse)
	require.Len(t, flow.Groups, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{flow.Groups[0].Key, flow.Groups[1].Key, flow.Groups[2].Key})
	assert.Equal(t, 100.0, flow.Groups[0].TotalInflow)
	assert.Equal(t, 2000.0, flow.Groups[0].TotalOutflow)
	assert.Equal(t, -1900.0, flow.Groups[0].NetFlow)
	assert.Equal(t, 2, flow.Groups[2].Transactions)
}

func TestGetCashFlow_DefaultsToCategory(t *testing.T) {
	repo := newRepo(t)
	sessionID := shared.NewSessionID()
	seedJournal(t, repo, sessionID, journal[:3])

	resp, err := queries.NewGetCashFlowHandler(repo).Handle(context.Background(), &queries.GetCashFlowQuery{
		SessionID: sessionID.String(),
	})

	require.NoError(t, err)
	flow := resp.(*queries.GetCashFlowResponse)
	assert.Equal(t, queries.GroupByCategory, flow.GroupBy)
	require.Len(t, flow.Groups, 2, "empty categories are omitted")
	assert.Equal(t, ledger.CategoryTradingRevenue.String(), flow.Groups[0].Key)
	assert.Equal(t, 400.0, flow.Groups[0].TotalInflow)

	_, err = queries.NewGetCashFlowHandler(repo).Handle(context.Background(), &queries.GetCashFlowQuery{
		SessionID: sessionID.String(),
		GroupBy:   "planet",
	})
	assert.Error(t, err)
}

func TestGetTransactions_FiltersAndPages(t *testing.T) {
	repo := newRepo(t)
	sessionID := shared.NewSessionID()
	seedJournal(t, repo, sessionID, journal)
	handler := queries.NewGetTransactionsHandler(repo)

	sales := ledger.TransactionTypeSellCargo.String()
	resp, err := handler.Handle(context.Background(), &queries.GetTransactionsQuery{
		SessionID:       sessionID.String(),
		TransactionType: &sales,
		Limit:           2,
		OrderBy:         ledger.OrderOldestFirst,
	})
	require.NoError(t, err)
	list := resp.(*queries.GetTransactionsResponse)
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Transactions, 2)
	assert.Equal(t, 100.0, list.Transactions[0].Amount)
	assert.Equal(t, 300.0, list.Transactions[1].Amount)

	start := helpers.FixtureTime.Add(2 * time.Minute)
	resp, err = handler.Handle(context.Background(), &queries.GetTransactionsQuery{
		SessionID: sessionID.String(),
		StartDate: &start,
		OrderBy:   ledger.OrderNewestFirst,
	})
	require.NoError(t, err)
	list = resp.(*queries.GetTransactionsResponse)
	require.Len(t, list.Transactions, 3)
	assert.Equal(t, 3, list.Transactions[0].Turn)
	assert.Equal(t, ledger.TransactionTypePurchaseShip.String(), list.Transactions[1].Type)
}

func TestGetTransactions_RejectsBadInput(t *testing.T) {
	handler := queries.NewGetTransactionsHandler(newRepo(t))
	ctx := context.Background()

	_, err := handler.Handle(ctx, &queries.GetTransactionsQuery{SessionID: "not-a-session"})
	assert.Error(t, err)

	bogus := "LOTTERY"
	_, err = handler.Handle(ctx, &queries.GetTransactionsQuery{
		SessionID:       shared.NewSessionID().String(),
		TransactionType: &bogus,
	})
	assert.Error(t, err)

	_, err = handler.Handle(ctx, &queries.GetTransactionsQuery{
		SessionID: shared.NewSessionID().String(),
		OrderBy:   "amount DESC",
	})
	assert.Error(t, err)
}
