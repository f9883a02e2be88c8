package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// SellCargoCommand sells cargo at the local outpost. SellAll sells the whole
// hold; otherwise Quantity units of ResourceType are sold (0 sells all held
// of that kind).
type SellCargoCommand struct {
	ResourceType string `json:"resource_type"`
	Quantity     int    `json:"quantity"`
	SellAll      bool   `json:"sell_all"`
}

// SellCargoResponse represents the result of a sale
type SellCargoResponse struct {
	gameApp.Outcome
	Outpost  string                 `json:"outpost,omitempty"`
	Items    []string               `json:"items,omitempty"`
	Lines    []gameApp.PriceLineDTO `json:"lines,omitempty"`
	Earnings float64                `json:"earnings"`
	Credits  float64                `json:"credits"`
	Partial  bool                   `json:"partial"`
}

// SellCargoHandler handles the SellCargo command
type SellCargoHandler struct {
	sessions  gameApp.SessionProvider
	recorder  gameApp.LedgerRecorder
	publisher common.EventPublisher
}

// NewSellCargoHandler creates a new SellCargoHandler
func NewSellCargoHandler(
	sessions gameApp.SessionProvider,
	recorder gameApp.LedgerRecorder,
	publisher common.EventPublisher,
) *SellCargoHandler {
	if recorder == nil {
		recorder = gameApp.NoOpLedgerRecorder{}
	}
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}
	return &SellCargoHandler{
		sessions:  sessions,
		recorder:  recorder,
		publisher: publisher,
	}
}

// Handle executes the SellCargo command
func (h *SellCargoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SellCargoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SellCargoCommand")
	}

	logger := common.LoggerFromContext(ctx)

	result, session, err := h.sell(cmd)
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &SellCargoResponse{Outcome: outcome}, nil
	}

	logger.Log("INFO", "Cargo sold", map[string]interface{}{
		"outpost":  result.Outpost,
		"items":    result.Items,
		"earnings": result.Earnings,
	})

	if err := h.recorder.RecordSale(ctx, session, result); err != nil {
		// Log error but don't fail the operation
		logger.Log("ERROR", "Failed to record sale in ledger", map[string]interface{}{
			"error":    err.Error(),
			"outpost":  result.Outpost,
			"earnings": result.Earnings,
		})
	}

	lines := make([]gameApp.PriceLineDTO, len(result.Lines))
	for i, line := range result.Lines {
		metrics.RecordSale(line.Kind.String(), result.Outpost, line.Amount, line.Value)
		lines[i] = gameApp.PriceLineDTO{
			Resource: line.Kind.DisplayName(),
			Amount:   line.Amount,
			Price:    line.UnitPrice,
			Value:    line.Value,
		}
	}
	h.publisher.Publish(game.CargoSoldEvent(session.ID().String(), session.Turn(), result))

	return &SellCargoResponse{
		Outcome:  gameApp.Succeeded(result.Message),
		Outpost:  result.Outpost,
		Items:    result.Items,
		Lines:    lines,
		Earnings: result.Earnings,
		Credits:  result.BalanceAfter,
		Partial:  result.Partial,
	}, nil
}

func (h *SellCargoHandler) sell(cmd *SellCargoCommand) (*game.SaleResult, *game.Session, error) {
	session, err := h.sessions.Current()
	if err != nil {
		return nil, nil, err
	}

	if cmd.SellAll {
		result, err := session.SellAll()
		if err != nil {
			return nil, nil, err
		}
		return result, session, nil
	}

	kind, err := shared.ParseResourceKind(cmd.ResourceType)
	if err != nil {
		return nil, nil, err
	}

	result, err := session.Sell(kind, cmd.Quantity)
	if err != nil {
		return nil, nil, err
	}
	return result, session, nil
}
