package commands

import (
	"context"

	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// PurchaseShipCommand buys the catalog ship at ItemIndex. The new ship joins
// the fleet without becoming active.
type PurchaseShipCommand struct {
	ItemIndex int `json:"item_index"`
}

// PurchaseShipHandler handles the PurchaseShip command
type PurchaseShipHandler struct {
	sessions gameApp.SessionProvider
	effects  purchaseEffects
}

// NewPurchaseShipHandler creates a new PurchaseShipHandler
func NewPurchaseShipHandler(
	sessions gameApp.SessionProvider,
	recorder gameApp.LedgerRecorder,
	publisher common.EventPublisher,
) *PurchaseShipHandler {
	return &PurchaseShipHandler{
		sessions: sessions,
		effects:  newPurchaseEffects(recorder, publisher),
	}
}

// Handle executes the PurchaseShip command
func (h *PurchaseShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PurchaseShipCommand)
	if !ok {
		return nil, purchaseRequestError("PurchaseShipCommand")
	}

	session, err := h.sessions.Current()
	if err != nil {
		return purchaseFailed(err)
	}

	result, err := session.BuyShip(cmd.ItemIndex)
	if err != nil {
		return purchaseFailed(err)
	}

	return h.effects.apply(ctx, session, result), nil
}
