package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
)

// TravelCommand moves the player to the body at DestinationIndex
type TravelCommand struct {
	DestinationIndex int `json:"destination_index"`
}

// TravelResponse represents the result of a trip
type TravelResponse struct {
	gameApp.Outcome
	From          string `json:"from,omitempty"`
	To            string `json:"to,omitempty"`
	FuelUsed      int    `json:"fuel_used"`
	RemainingFuel int    `json:"remaining_fuel"`
}

// TravelHandler handles the Travel command
type TravelHandler struct {
	sessions  gameApp.SessionProvider
	publisher common.EventPublisher
}

// NewTravelHandler creates a new TravelHandler
func NewTravelHandler(sessions gameApp.SessionProvider, publisher common.EventPublisher) *TravelHandler {
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}
	return &TravelHandler{
		sessions:  sessions,
		publisher: publisher,
	}
}

// Handle executes the Travel command
func (h *TravelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*TravelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TravelCommand")
	}

	session, err := h.sessions.Current()
	var result *game.TravelResult
	if err == nil {
		result, err = session.TravelTo(cmd.DestinationIndex)
	}
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &TravelResponse{Outcome: outcome}, nil
	}

	common.LoggerFromContext(ctx).Log("INFO", "Ship traveled", map[string]interface{}{
		"from":      result.From,
		"to":        result.To,
		"fuel_used": result.FuelUsed,
	})
	metrics.RecordTravel(result.From, result.To, result.FuelUsed)
	h.publisher.Publish(game.ShipTraveledEvent(session.ID().String(), session.Turn(), result))

	return &TravelResponse{
		Outcome:       gameApp.Succeeded(result.Message),
		From:          result.From,
		To:            result.To,
		FuelUsed:      result.FuelUsed,
		RemainingFuel: result.RemainingFuel,
	}, nil
}
