package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// MineResourceCommand mines one resource at the current location
type MineResourceCommand struct {
	ResourceType string `json:"resource_type"` // symbol ("RARE_EARTH") or display name ("Rare Earth")
}

// MineResourceResponse represents the result of a mining action
type MineResourceResponse struct {
	gameApp.Outcome
	Resource  string `json:"resource,omitempty"`
	Mined     int    `json:"mined"`
	Loaded    int    `json:"loaded"`
	Refunded  int    `json:"refunded"`
	Remaining int    `json:"remaining"`
	Partial   bool   `json:"partial"`
}

// MineResourceHandler handles the MineResource command
type MineResourceHandler struct {
	sessions  gameApp.SessionProvider
	publisher common.EventPublisher
}

// NewMineResourceHandler creates a new MineResourceHandler
func NewMineResourceHandler(sessions gameApp.SessionProvider, publisher common.EventPublisher) *MineResourceHandler {
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}
	return &MineResourceHandler{
		sessions:  sessions,
		publisher: publisher,
	}
}

// Handle executes the MineResource command
func (h *MineResourceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*MineResourceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *MineResourceCommand")
	}

	result, session, err := h.mine(cmd)
	if err != nil {
		outcome, err := gameApp.Failed(err)
		if err != nil {
			return nil, err
		}
		return &MineResourceResponse{Outcome: outcome}, nil
	}

	common.LoggerFromContext(ctx).Log("INFO", "Resource mined", map[string]interface{}{
		"resource": result.Kind.String(),
		"location": result.Location,
		"mined":    result.Mined,
		"loaded":   result.Loaded,
		"refunded": result.Refunded,
	})
	metrics.RecordMining(result.Kind.String(), result.Location, result.Mined, result.Loaded, result.Refunded)
	h.publisher.Publish(game.ResourceMinedEvent(session.ID().String(), session.Turn(), result))

	return &MineResourceResponse{
		Outcome:   gameApp.Succeeded(result.Message),
		Resource:  result.Kind.DisplayName(),
		Mined:     result.Mined,
		Loaded:    result.Loaded,
		Refunded:  result.Refunded,
		Remaining: result.Remaining,
		Partial:   result.Partial,
	}, nil
}

func (h *MineResourceHandler) mine(cmd *MineResourceCommand) (*game.MineResult, *game.Session, error) {
	session, err := h.sessions.Current()
	if err != nil {
		return nil, nil, err
	}

	kind, err := shared.ParseResourceKind(cmd.ResourceType)
	if err != nil {
		return nil, nil, err
	}

	result, err := session.Mine(kind)
	if err != nil {
		return nil, nil, err
	}
	return result, session, nil
}
