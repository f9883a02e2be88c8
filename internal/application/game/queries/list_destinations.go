package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// ListDestinationsQuery lists every other body with its fuel cost from here
type ListDestinationsQuery struct{}

// ListDestinationsResponse is the travel menu
type ListDestinationsResponse struct {
	gameApp.Outcome
	Destinations []gameApp.DestinationDTO `json:"destinations"`
}

// ListDestinationsHandler handles the ListDestinations query
type ListDestinationsHandler struct {
	sessions gameApp.SessionProvider
}

// NewListDestinationsHandler creates a new ListDestinationsHandler
func NewListDestinationsHandler(sessions gameApp.SessionProvider) *ListDestinationsHandler {
	return &ListDestinationsHandler{sessions: sessions}
}

// Handle executes the ListDestinations query
func (h *ListDestinationsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListDestinationsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListDestinationsQuery")
	}

	session, err := h.sessions.Current()
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &ListDestinationsResponse{Outcome: outcome, Destinations: []gameApp.DestinationDTO{}}, nil
	}

	return &ListDestinationsResponse{
		Outcome:      gameApp.Succeeded(""),
		Destinations: gameApp.ToDestinationDTOs(session.Destinations()),
	}, nil
}
