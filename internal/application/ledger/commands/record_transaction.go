package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// RecordTransactionCommand appends one credit change of a session to the journal.
// The related entity kind (outpost, upgrade, ship) follows from TransactionType.
type RecordTransactionCommand struct {
	SessionID       string
	Turn            int
	TransactionType string
	Amount          float64
	BalanceBefore   float64
	BalanceAfter    float64
	Description     string
	Metadata        map[string]interface{}
	RelatedEntityID string

	// Stamped with the handler clock when nil
	Timestamp *time.Time
}

// RecordTransactionResponse identifies the stored entry
type RecordTransactionResponse struct {
	TransactionID string
	Category      string
	Timestamp     time.Time
}

// RecordTransactionHandler validates entries and hands them to the repository
type RecordTransactionHandler struct {
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
}

func NewRecordTransactionHandler(transactionRepo ledger.TransactionRepository, clock shared.Clock) *RecordTransactionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RecordTransactionHandler{transactionRepo: transactionRepo, clock: clock}
}

// Handle executes the RecordTransaction command
func (h *RecordTransactionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordTransactionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordTransactionCommand")
	}

	entry, err := h.toEntry(cmd)
	if err != nil {
		return nil, err
	}

	transaction, err := ledger.NewTransaction(entry)
	if err != nil {
		return nil, err
	}
	if err := h.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	metrics.RecordTransaction(transaction.TransactionType().String(), transaction.Category().String(),
		transaction.Amount(), transaction.BalanceAfter())

	return &RecordTransactionResponse{
		TransactionID: transaction.ID().String(),
		Category:      transaction.Category().String(),
		Timestamp:     transaction.Timestamp(),
	}, nil
}

func (h *RecordTransactionHandler) toEntry(cmd *RecordTransactionCommand) (ledger.Entry, error) {
	sessionID, err := shared.ParseSessionID(cmd.SessionID)
	if err != nil {
		return ledger.Entry{}, err
	}
	txType, err := ledger.ParseTransactionType(cmd.TransactionType)
	if err != nil {
		return ledger.Entry{}, err
	}

	timestamp := h.clock.Now()
	if cmd.Timestamp != nil {
		timestamp = *cmd.Timestamp
	}

	return ledger.Entry{
		SessionID:       sessionID,
		Timestamp:       timestamp,
		Turn:            cmd.Turn,
		Type:            txType,
		Amount:          cmd.Amount,
		BalanceBefore:   cmd.BalanceBefore,
		BalanceAfter:    cmd.BalanceAfter,
		Description:     cmd.Description,
		Metadata:        cmd.Metadata,
		RelatedEntityID: cmd.RelatedEntityID,
	}, nil
}
