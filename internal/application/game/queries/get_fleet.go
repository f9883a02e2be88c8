package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// GetFleetQuery lists every owned ship
type GetFleetQuery struct{}

// GetFleetResponse lists the fleet in purchase order
type GetFleetResponse struct {
	gameApp.Outcome
	Ships []gameApp.ShipDTO `json:"ships"`
}

// GetFleetHandler handles the GetFleet query
type GetFleetHandler struct {
	sessions gameApp.SessionProvider
}

// NewGetFleetHandler creates a new GetFleetHandler
func NewGetFleetHandler(sessions gameApp.SessionProvider) *GetFleetHandler {
	return &GetFleetHandler{sessions: sessions}
}

// Handle executes the GetFleet query
func (h *GetFleetHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetFleetQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFleetQuery")
	}

	session, err := h.sessions.Current()
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &GetFleetResponse{Outcome: outcome, Ships: []gameApp.ShipDTO{}}, nil
	}

	fleet := session.Fleet()
	ships := make([]gameApp.ShipDTO, len(fleet))
	for i, v := range fleet {
		ships[i] = gameApp.ToShipDTO(v)
	}

	return &GetFleetResponse{
		Outcome: gameApp.Succeeded(""),
		Ships:   ships,
	}, nil
}
