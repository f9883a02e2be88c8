package game

import (
	"context"
	"fmt"

	ledgerCmd "github.com/andrescamacho/spacemining-go/internal/application/ledger/commands"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
)

// LedgerRecorder journals credit changes of a session through the mediator
type LedgerRecorder interface {
	RecordSale(ctx context.Context, session *game.Session, result *game.SaleResult) error
	RecordPurchase(ctx context.Context, session *game.Session, result *game.PurchaseResult) error
}

// MediatorLedgerRecorder sends RecordTransactionCommand for every credit change
type MediatorLedgerRecorder struct {
	mediator mediator.Mediator
}

// NewMediatorLedgerRecorder creates a new ledger recorder
func NewMediatorLedgerRecorder(m mediator.Mediator) *MediatorLedgerRecorder {
	return &MediatorLedgerRecorder{mediator: m}
}

// RecordSale journals cargo sold at an outpost
func (r *MediatorLedgerRecorder) RecordSale(ctx context.Context, session *game.Session, result *game.SaleResult) error {
	if result.Earnings <= 0 {
		// outposts without a price for the sold kind pay nothing; nothing to journal
		return nil
	}

	items := make(map[string]interface{}, len(result.Lines))
	for _, line := range result.Lines {
		items[line.Kind.String()] = line.Amount
	}

	_, err := r.mediator.Send(ctx, &ledgerCmd.RecordTransactionCommand{
		SessionID:       session.ID().String(),
		Turn:            session.Turn(),
		TransactionType: string(ledger.TransactionTypeSellCargo),
		Amount:          result.Earnings,
		BalanceBefore:   result.BalanceBefore,
		BalanceAfter:    result.BalanceAfter,
		Description:     result.Message,
		RelatedEntityID: result.Outpost,
		Metadata: map[string]interface{}{
			"items":   items,
			"partial": result.Partial,
		},
	})
	return err
}

// RecordPurchase journals an upgrade or ship bought from the shop
func (r *MediatorLedgerRecorder) RecordPurchase(ctx context.Context, session *game.Session, result *game.PurchaseResult) error {
	txType := ledger.TransactionTypePurchaseUpgrade
	if result.ItemType == shipyard.ItemTypeShip {
		txType = ledger.TransactionTypePurchaseShip
	}

	_, err := r.mediator.Send(ctx, &ledgerCmd.RecordTransactionCommand{
		SessionID:       session.ID().String(),
		Turn:            session.Turn(),
		TransactionType: string(txType),
		Amount:          -result.Cost,
		BalanceBefore:   result.BalanceBefore,
		BalanceAfter:    result.BalanceAfter,
		Description:     fmt.Sprintf("Purchased %s for %.0f credits", result.Name, result.Cost),
		RelatedEntityID: result.Name,
		Metadata: map[string]interface{}{
			"item_index": result.ItemIndex,
			"ship":       result.ShipName,
		},
	})
	return err
}

// NoOpLedgerRecorder drops every entry (ledger disabled)
type NoOpLedgerRecorder struct{}

func (NoOpLedgerRecorder) RecordSale(ctx context.Context, session *game.Session, result *game.SaleResult) error {
	return nil
}

func (NoOpLedgerRecorder) RecordPurchase(ctx context.Context, session *game.Session, result *game.PurchaseResult) error {
	return nil
}
