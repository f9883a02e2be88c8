package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
)

// PurchaseResponse represents the result of a shop purchase
type PurchaseResponse struct {
	gameApp.Outcome
	ItemType     string  `json:"item_type,omitempty"`
	Item         string  `json:"item,omitempty"`
	Cost         float64 `json:"cost"`
	Credits      float64 `json:"credits"`
	Ship         string  `json:"ship,omitempty"`
	NewShipIndex *int    `json:"new_ship_index,omitempty"`
}

// purchaseEffects journals, measures and broadcasts a completed purchase
type purchaseEffects struct {
	recorder  gameApp.LedgerRecorder
	publisher common.EventPublisher
}

func newPurchaseEffects(recorder gameApp.LedgerRecorder, publisher common.EventPublisher) purchaseEffects {
	if recorder == nil {
		recorder = gameApp.NoOpLedgerRecorder{}
	}
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}
	return purchaseEffects{recorder: recorder, publisher: publisher}
}

func (e purchaseEffects) apply(ctx context.Context, session *game.Session, result *game.PurchaseResult) *PurchaseResponse {
	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Purchase completed", map[string]interface{}{
		"item_type": result.ItemType,
		"item":      result.Name,
		"cost":      result.Cost,
		"credits":   result.BalanceAfter,
	})

	if err := e.recorder.RecordPurchase(ctx, session, result); err != nil {
		// Log error but don't fail the operation
		logger.Log("ERROR", "Failed to record purchase in ledger", map[string]interface{}{
			"error": err.Error(),
			"item":  result.Name,
			"cost":  result.Cost,
		})
	}

	metrics.RecordPurchase(result.ItemType, result.Name, result.Cost)
	e.publisher.Publish(game.PurchaseEvent(session.ID().String(), session.Turn(), result))

	response := &PurchaseResponse{
		Outcome:  gameApp.Succeeded(result.Message),
		ItemType: result.ItemType,
		Item:     result.Name,
		Cost:     result.Cost,
		Credits:  result.BalanceAfter,
		Ship:     result.ShipName,
	}
	if result.NewShipIndex >= 0 {
		index := result.NewShipIndex
		response.NewShipIndex = &index
	}
	return response
}

func purchaseFailed(err error) (*PurchaseResponse, error) {
	outcome, err := gameApp.Failed(err)
	if err != nil {
		return nil, err
	}
	return &PurchaseResponse{Outcome: outcome}, nil
}

func purchaseRequestError(expected string) error {
	return fmt.Errorf("invalid request type: expected *%s", expected)
}
