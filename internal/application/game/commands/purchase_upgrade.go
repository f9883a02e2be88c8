package commands

import (
	"context"

	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// PurchaseUpgradeCommand buys the catalog upgrade at ItemIndex for the active ship
type PurchaseUpgradeCommand struct {
	ItemIndex int `json:"item_index"`
}

// PurchaseUpgradeHandler handles the PurchaseUpgrade command
type PurchaseUpgradeHandler struct {
	sessions gameApp.SessionProvider
	effects  purchaseEffects
}

// NewPurchaseUpgradeHandler creates a new PurchaseUpgradeHandler
func NewPurchaseUpgradeHandler(
	sessions gameApp.SessionProvider,
	recorder gameApp.LedgerRecorder,
	publisher common.EventPublisher,
) *PurchaseUpgradeHandler {
	return &PurchaseUpgradeHandler{
		sessions: sessions,
		effects:  newPurchaseEffects(recorder, publisher),
	}
}

// Handle executes the PurchaseUpgrade command
func (h *PurchaseUpgradeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PurchaseUpgradeCommand)
	if !ok {
		return nil, purchaseRequestError("PurchaseUpgradeCommand")
	}

	session, err := h.sessions.Current()
	if err != nil {
		return purchaseFailed(err)
	}

	result, err := session.BuyUpgrade(cmd.ItemIndex)
	if err != nil {
		return purchaseFailed(err)
	}

	return h.effects.apply(ctx, session, result), nil
}
