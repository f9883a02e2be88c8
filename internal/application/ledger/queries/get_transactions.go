package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// GetTransactionsQuery lists a session's journal. Category, type and order
// arrive as text and are checked before touching the repository.
type GetTransactionsQuery struct {
	SessionID         string     `json:"session_id"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	Category          *string    `json:"category,omitempty"`
	TransactionType   *string    `json:"type,omitempty"`
	RelatedEntityType *string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string    `json:"related_entity_id,omitempty"`
	Limit             int        `json:"limit"`
	Offset            int        `json:"offset"`
	OrderBy           string     `json:"order_by,omitempty"`
}

// GetTransactionsResponse holds one page; Total counts every match ignoring the page
type GetTransactionsResponse struct {
	Transactions []*TransactionDTO `json:"transactions"`
	Total        int               `json:"total"`
}

// TransactionDTO is a journal entry as served to transports; the csv tags
// define the columns of "ledger export"
type TransactionDTO struct {
	ID                string                 `json:"id" csv:"id"`
	SessionID         string                 `json:"session_id" csv:"session_id"`
	Timestamp         time.Time              `json:"timestamp" csv:"timestamp"`
	Turn              int                    `json:"turn" csv:"turn"`
	Type              string                 `json:"type" csv:"type"`
	Category          string                 `json:"category" csv:"category"`
	Amount            float64                `json:"amount" csv:"amount"`
	BalanceBefore     float64                `json:"balance_before" csv:"balance_before"`
	BalanceAfter      float64                `json:"balance_after" csv:"balance_after"`
	Description       string                 `json:"description" csv:"description"`
	Metadata          map[string]interface{} `json:"metadata,omitempty" csv:"-"`
	RelatedEntityType string                 `json:"related_entity_type,omitempty" csv:"related_entity_type"`
	RelatedEntityID   string                 `json:"related_entity_id,omitempty" csv:"related_entity_id"`
}

// GetTransactionsHandler pages through one session's journal
type GetTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
}

func NewGetTransactionsHandler(transactionRepo ledger.TransactionRepository) *GetTransactionsHandler {
	return &GetTransactionsHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetTransactions query
func (h *GetTransactionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery")
	}

	sessionID, err := shared.ParseSessionID(query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	opts, err := toQueryOptions(query)
	if err != nil {
		return nil, fmt.Errorf("invalid journal filter: %w", err)
	}

	transactions, err := h.transactionRepo.FindBySession(ctx, sessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	total, err := h.transactionRepo.CountBySession(ctx, sessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	resp := &GetTransactionsResponse{Transactions: make([]*TransactionDTO, 0, len(transactions)), Total: total}
	for _, tx := range transactions {
		resp.Transactions = append(resp.Transactions, ToTransactionDTO(tx))
	}
	return resp, nil
}

// toQueryOptions validates the textual filters of query and starts from the default page
func toQueryOptions(query *GetTransactionsQuery) (ledger.QueryOptions, error) {
	opts := ledger.DefaultQueryOptions()
	opts.StartDate, opts.EndDate = query.StartDate, query.EndDate
	opts.RelatedEntityType, opts.RelatedEntityID = query.RelatedEntityType, query.RelatedEntityID
	opts.Offset = query.Offset
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}

	if query.Category != nil {
		category, err := ledger.ParseCategory(*query.Category)
		if err != nil {
			return opts, err
		}
		opts.Category = &category
	}

	if query.TransactionType != nil {
		txType, err := ledger.ParseTransactionType(*query.TransactionType)
		if err != nil {
			return opts, err
		}
		opts.TransactionType = &txType
	}

	if query.OrderBy != "" {
		if !ledger.IsKnownOrder(query.OrderBy) {
			return opts, fmt.Errorf("unsupported order %q: use %q or %q", query.OrderBy, ledger.OrderNewestFirst, ledger.OrderOldestFirst)
		}
		opts.OrderBy = query.OrderBy
	}

	return opts, nil
}

// ToTransactionDTO converts a journal entry for transport
func ToTransactionDTO(tx *ledger.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:                tx.ID().String(),
		SessionID:         tx.SessionID().String(),
		Timestamp:         tx.Timestamp(),
		Turn:              tx.Turn(),
		Type:              tx.TransactionType().String(),
		Category:          tx.Category().String(),
		Amount:            tx.Amount(),
		BalanceBefore:     tx.BalanceBefore(),
		BalanceAfter:      tx.BalanceAfter(),
		Description:       tx.Description(),
		Metadata:          tx.Metadata(),
		RelatedEntityType: tx.RelatedEntityType(),
		RelatedEntityID:   tx.RelatedEntityID(),
	}
}
