package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// GetStatusQuery reads the player, location and active ship
type GetStatusQuery struct{}

// GetStatusResponse represents the status screen
type GetStatusResponse struct {
	gameApp.Outcome
	Status *gameApp.StatusDTO `json:"status,omitempty"`
}

// GetStatusHandler handles the GetStatus query
type GetStatusHandler struct {
	sessions gameApp.SessionProvider
}

// NewGetStatusHandler creates a new GetStatusHandler
func NewGetStatusHandler(sessions gameApp.SessionProvider) *GetStatusHandler {
	return &GetStatusHandler{sessions: sessions}
}

// Handle executes the GetStatus query
func (h *GetStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetStatusQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStatusQuery")
	}

	session, err := h.sessions.Current()
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &GetStatusResponse{Outcome: outcome}, nil
	}

	return &GetStatusResponse{
		Outcome: gameApp.Succeeded(""),
		Status:  gameApp.ToStatusDTO(session.Status()),
	}, nil
}
