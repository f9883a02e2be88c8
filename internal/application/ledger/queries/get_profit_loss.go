package queries

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// GetProfitLossQuery represents a query to generate a profit & loss statement for a session
type GetProfitLossQuery struct {
	SessionID string `json:"session_id"`
}

// GetProfitLossResponse represents the profit & loss statement result
type GetProfitLossResponse struct {
	SessionID        string             `json:"session_id"`
	TotalRevenue     float64            `json:"total_revenue"`
	TotalExpenses    float64            `json:"total_expenses"`
	NetProfit        float64            `json:"net_profit"`
	RevenueBreakdown map[string]float64 `json:"revenue_breakdown"`
	ExpenseBreakdown map[string]float64 `json:"expense_breakdown"`
	Sales            SaleStatistics     `json:"sales"`
}

// SaleStatistics summarises the distribution of sale amounts
type SaleStatistics struct {
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Largest float64 `json:"largest"`
}

// GetProfitLossHandler handles the GetProfitLoss query
type GetProfitLossHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProfitLossHandler creates a new GetProfitLossHandler
func NewGetProfitLossHandler(transactionRepo ledger.TransactionRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetProfitLoss query
func (h *GetProfitLossHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProfitLossQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfitLossQuery")
	}

	sessionID, err := shared.ParseSessionID(query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	// Limit 0 - all transactions of the session
	transactions, err := h.transactionRepo.FindBySession(ctx, sessionID, ledger.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return calculateProfitLoss(query.SessionID, transactions), nil
}

func calculateProfitLoss(sessionID string, transactions []*ledger.Transaction) *GetProfitLossResponse {
	response := &GetProfitLossResponse{
		SessionID:        sessionID,
		RevenueBreakdown: make(map[string]float64),
		ExpenseBreakdown: make(map[string]float64),
	}

	var sales []float64
	for _, tx := range transactions {
		category := tx.Category().String()
		amount := tx.Amount()

		if tx.IsIncome() {
			response.RevenueBreakdown[category] += amount
			response.TotalRevenue += amount
			if tx.TransactionType() == ledger.TransactionTypeSellCargo {
				sales = append(sales, amount)
			}
		} else {
			// expenses are reported as positive values
			response.ExpenseBreakdown[category] += -amount
			response.TotalExpenses += -amount
		}
	}

	response.NetProfit = response.TotalRevenue - response.TotalExpenses

	response.Sales.Count = len(sales)
	if len(sales) > 0 {
		response.Sales.Mean = stat.Mean(sales, nil)
		response.Sales.Largest = floats.Max(sales)
	}
	if len(sales) > 1 {
		response.Sales.StdDev = stat.StdDev(sales, nil)
	}

	return response
}
