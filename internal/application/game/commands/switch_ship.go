package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
)

// SwitchShipCommand makes the fleet ship at ShipIndex the active one
type SwitchShipCommand struct {
	ShipIndex int `json:"ship_index"`
}

// SwitchShipResponse represents the result of switching ships
type SwitchShipResponse struct {
	gameApp.Outcome
	ShipIndex int    `json:"ship_index"`
	Ship      string `json:"ship,omitempty"`
}

// SwitchShipHandler handles the SwitchShip command
type SwitchShipHandler struct {
	sessions  gameApp.SessionProvider
	publisher common.EventPublisher
}

// NewSwitchShipHandler creates a new SwitchShipHandler
func NewSwitchShipHandler(sessions gameApp.SessionProvider, publisher common.EventPublisher) *SwitchShipHandler {
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}
	return &SwitchShipHandler{
		sessions:  sessions,
		publisher: publisher,
	}
}

// Handle executes the SwitchShip command
func (h *SwitchShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SwitchShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SwitchShipCommand")
	}

	session, err := h.sessions.Current()
	var result *game.SwitchResult
	if err == nil {
		result, err = session.SwitchActiveShip(cmd.ShipIndex)
	}
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &SwitchShipResponse{Outcome: outcome, ShipIndex: cmd.ShipIndex}, nil
	}

	common.LoggerFromContext(ctx).Log("INFO", "Active ship changed", map[string]interface{}{
		"ship_index": result.Index,
		"ship":       result.Ship,
	})
	h.publisher.Publish(game.ActiveShipChangedEvent(session.ID().String(), session.Turn(), result))

	return &SwitchShipResponse{
		Outcome:   gameApp.Succeeded(result.Message),
		ShipIndex: result.Index,
		Ship:      result.Ship,
	}, nil
}
