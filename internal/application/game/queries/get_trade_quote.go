package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// GetTradeQuoteQuery prices the active ship's cargo at the local outpost
type GetTradeQuoteQuery struct{}

// GetTradeQuoteResponse carries the quote, if there is an outpost here
type GetTradeQuoteResponse struct {
	gameApp.Outcome
	Quote *gameApp.TradeQuoteDTO `json:"quote,omitempty"`
}

// GetTradeQuoteHandler handles the GetTradeQuote query
type GetTradeQuoteHandler struct {
	sessions gameApp.SessionProvider
}

// NewGetTradeQuoteHandler creates a new GetTradeQuoteHandler
func NewGetTradeQuoteHandler(sessions gameApp.SessionProvider) *GetTradeQuoteHandler {
	return &GetTradeQuoteHandler{sessions: sessions}
}

// Handle executes the GetTradeQuote query
func (h *GetTradeQuoteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetTradeQuoteQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTradeQuoteQuery")
	}

	session, err := h.sessions.Current()
	if err != nil {
		return tradeQuoteFailed(err)
	}

	view, err := session.TradeQuote()
	if err != nil {
		return tradeQuoteFailed(err)
	}

	return &GetTradeQuoteResponse{
		Outcome: gameApp.Succeeded(""),
		Quote:   gameApp.ToTradeQuoteDTO(view),
	}, nil
}

func tradeQuoteFailed(err error) (*GetTradeQuoteResponse, error) {
	outcome, err := gameApp.Failed(err)
	if err != nil {
		return nil, err
	}
	return &GetTradeQuoteResponse{Outcome: outcome}, nil
}
