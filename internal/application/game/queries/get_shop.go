package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// GetShopQuery lists upgrades and ships with affordability
type GetShopQuery struct{}

// GetShopResponse is the shop listing
type GetShopResponse struct {
	gameApp.Outcome
	Shop *gameApp.ShopDTO `json:"shop,omitempty"`
}

// GetShopHandler handles the GetShop query
type GetShopHandler struct {
	sessions gameApp.SessionProvider
}

// NewGetShopHandler creates a new GetShopHandler
func NewGetShopHandler(sessions gameApp.SessionProvider) *GetShopHandler {
	return &GetShopHandler{sessions: sessions}
}

// Handle executes the GetShop query
func (h *GetShopHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetShopQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetShopQuery")
	}

	session, err := h.sessions.Current()
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &GetShopResponse{Outcome: outcome}, nil
	}

	return &GetShopResponse{
		Outcome: gameApp.Succeeded(""),
		Shop:    gameApp.ToShopDTO(session.Shop()),
	}, nil
}
