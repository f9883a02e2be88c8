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

// InitGameCommand starts a new game, replacing the current one.
// Nil fields fall back to the configured defaults.
type InitGameCommand struct {
	PlayerName      string   `json:"player_name"`
	StartingCredits *float64 `json:"starting_credits"`
	Seed            *uint64  `json:"seed"`
}

// InitGameResponse carries the status of the new session
type InitGameResponse struct {
	gameApp.Outcome
	SessionID string             `json:"session_id,omitempty"`
	Status    *gameApp.StatusDTO `json:"status,omitempty"`
}

// InitGameHandler handles the InitGame command
type InitGameHandler struct {
	sessions  *gameApp.SessionManager
	publisher common.EventPublisher
}

// NewInitGameHandler creates a new InitGameHandler
func NewInitGameHandler(sessions *gameApp.SessionManager, publisher common.EventPublisher) *InitGameHandler {
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}
	return &InitGameHandler{
		sessions:  sessions,
		publisher: publisher,
	}
}

// Handle executes the InitGame command
func (h *InitGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*InitGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InitGameCommand")
	}

	logger := common.LoggerFromContext(ctx)

	session, err := h.sessions.InitGame(gameApp.InitOptions{
		PlayerName:      cmd.PlayerName,
		StartingCredits: cmd.StartingCredits,
		Seed:            cmd.Seed,
	})
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &InitGameResponse{Outcome: outcome}, nil
	}

	status := session.Status()
	logger.Log("INFO", "Game initialized", map[string]interface{}{
		"session_id":       status.SessionID,
		"player_name":      status.PlayerName,
		"starting_credits": status.Credits,
	})
	metrics.RecordSessionStarted(status.Credits)
	h.publisher.Publish(game.GameStartedEvent(session))

	return &InitGameResponse{
		Outcome:   gameApp.Succeeded(fmt.Sprintf("Game initialized with %.0f starting credits", status.Credits)),
		SessionID: status.SessionID,
		Status:    gameApp.ToStatusDTO(status),
	}, nil
}
