package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// GetGameStateQuery reports whether a game is running
type GetGameStateQuery struct{}

// GetGameStateResponse is successful only when a session exists
type GetGameStateResponse struct {
	gameApp.Outcome
	SessionID string `json:"session_id,omitempty"`
	Turn      int    `json:"turn,omitempty"`
}

// GetGameStateHandler handles the GetGameState query
type GetGameStateHandler struct {
	sessions gameApp.SessionProvider
}

// NewGetGameStateHandler creates a new GetGameStateHandler
func NewGetGameStateHandler(sessions gameApp.SessionProvider) *GetGameStateHandler {
	return &GetGameStateHandler{sessions: sessions}
}

// Handle executes the GetGameState query
func (h *GetGameStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetGameStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetGameStateQuery")
	}

	session, err := h.sessions.Current()
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &GetGameStateResponse{Outcome: outcome}, nil
	}

	return &GetGameStateResponse{
		Outcome:   gameApp.Succeeded("Game already initialized"),
		SessionID: session.ID().String(),
		Turn:      session.Turn(),
	}, nil
}
