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

// EndTurnCommand advances the turn counter
type EndTurnCommand struct{}

// EndTurnResponse carries the new turn number
type EndTurnResponse struct {
	gameApp.Outcome
	Turn int `json:"turn"`
}

// EndTurnHandler handles the EndTurn command
type EndTurnHandler struct {
	sessions  gameApp.SessionProvider
	publisher common.EventPublisher
}

// NewEndTurnHandler creates a new EndTurnHandler
func NewEndTurnHandler(sessions gameApp.SessionProvider, publisher common.EventPublisher) *EndTurnHandler {
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}
	return &EndTurnHandler{
		sessions:  sessions,
		publisher: publisher,
	}
}

// Handle executes the EndTurn command
func (h *EndTurnHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*EndTurnCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *EndTurnCommand")
	}

	session, err := h.sessions.Current()
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &EndTurnResponse{Outcome: outcome}, nil
	}

	result := session.EndTurn()

	common.LoggerFromContext(ctx).Log("DEBUG", "Turn ended", map[string]interface{}{
		"session_id": session.ID().String(),
		"turn":       result.Turn,
	})
	metrics.RecordTurn(session.Credits())
	h.publisher.Publish(game.TurnEndedEvent(session.ID().String(), result))

	return &EndTurnResponse{
		Outcome: gameApp.Succeeded(result.Message),
		Turn:    result.Turn,
	}, nil
}
