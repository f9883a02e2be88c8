package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// GetLocationQuery reads the current body
type GetLocationQuery struct{}

// GetLocationResponse describes the current body
type GetLocationResponse struct {
	gameApp.Outcome
	Location *gameApp.LocationDTO `json:"location,omitempty"`
}

// GetLocationHandler handles the GetLocation query
type GetLocationHandler struct {
	sessions gameApp.SessionProvider
}

// NewGetLocationHandler creates a new GetLocationHandler
func NewGetLocationHandler(sessions gameApp.SessionProvider) *GetLocationHandler {
	return &GetLocationHandler{sessions: sessions}
}

// Handle executes the GetLocation query
func (h *GetLocationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetLocationQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetLocationQuery")
	}

	session, err := h.sessions.Current()
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &GetLocationResponse{Outcome: outcome}, nil
	}

	return &GetLocationResponse{
		Outcome:  gameApp.Succeeded(""),
		Location: gameApp.ToLocationDTO(session.Location()),
	}, nil
}
