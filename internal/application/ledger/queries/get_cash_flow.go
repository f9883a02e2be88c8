package queries

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// Cash flow groupings
const (
	GroupByCategory = "category"
	GroupByTurn     = "turn"
)

// GetCashFlowQuery represents a query to generate a cash flow statement
type GetCashFlowQuery struct {
	SessionID string `json:"session_id"`
	GroupBy   string `json:"group_by"` // "category" (default) or "turn"
}

// GetCashFlowResponse represents the cash flow statement result
type GetCashFlowResponse struct {
	GroupBy string      `json:"group_by"`
	Groups  []*CashFlow `json:"groups"`
}

// CashFlow represents cash flow for one category or one turn
type CashFlow struct {
	Key          string  `json:"key"`
	TotalInflow  float64 `json:"total_inflow"`
	TotalOutflow float64 `json:"total_outflow"`
	NetFlow      float64 `json:"net_flow"`
	Transactions int     `json:"transactions"`
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(transactionRepo ledger.TransactionRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	if query.GroupBy == "" {
		query.GroupBy = GroupByCategory
	}
	if query.GroupBy != GroupByCategory && query.GroupBy != GroupByTurn {
		return nil, fmt.Errorf("unsupported grouping: %s", query.GroupBy)
	}

	sessionID, err := shared.ParseSessionID(query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	transactions, err := h.transactionRepo.FindBySession(ctx, sessionID, ledger.QueryOptions{OrderBy: ledger.OrderOldestFirst})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return calculateCashFlow(query.GroupBy, transactions), nil
}

func calculateCashFlow(groupBy string, transactions []*ledger.Transaction) *GetCashFlowResponse {
	flows := make(map[string]*CashFlow)
	var order []string

	if groupBy == GroupByCategory {
		for _, cat := range ledger.AllCategories() {
			flows[cat.String()] = &CashFlow{Key: cat.String()}
			order = append(order, cat.String())
		}
	}

	for _, tx := range transactions {
		key := tx.Category().String()
		if groupBy == GroupByTurn {
			key = strconv.Itoa(tx.Turn())
		}

		flow, ok := flows[key]
		if !ok {
			flow = &CashFlow{Key: key}
			flows[key] = flow
			order = append(order, key)
		}

		flow.Transactions++
		if tx.Amount() > 0 {
			flow.TotalInflow += tx.Amount()
		} else {
			flow.TotalOutflow += -tx.Amount()
		}
		flow.NetFlow = flow.TotalInflow - flow.TotalOutflow
	}

	if groupBy == GroupByTurn {
		sort.SliceStable(order, func(i, j int) bool {
			a, _ := strconv.Atoi(order[i])
			b, _ := strconv.Atoi(order[j])
			return a < b
		})
	}

	groups := make([]*CashFlow, 0, len(order))
	for _, key := range order {
		if flows[key].Transactions > 0 {
			groups = append(groups, flows[key])
		}
	}

	return &GetCashFlowResponse{
		GroupBy: groupBy,
		Groups:  groups,
	}
}
