package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
	ledgerQueries "github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
)

const maxBodyBytes = 64 << 10

// Request bodies. Indexes are pointers so a missing field is a 400 rather
// than silently meaning zero.

type travelRequest struct {
	DestinationIndex *int `json:"destination_index"`
}

type shopBuyRequest struct {
	ItemType  string `json:"item_type"`
	ItemIndex *int   `json:"item_index"`
}

type switchShipRequest struct {
	ShipIndex *int `json:"ship_index"`
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameQueries.GetGameStateQuery{})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameQueries.GetStatusQuery{})
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameQueries.GetLocationQuery{})
}

func (s *Server) handleTradeQuote(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameQueries.GetTradeQuoteQuery{})
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameQueries.ListDestinationsQuery{})
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameQueries.GetShopQuery{})
}

func (s *Server) handleFleet(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameQueries.GetFleetQuery{})
}

func (s *Server) handleInitGame(w http.ResponseWriter, r *http.Request) {
	cmd := &gameCommands.InitGameCommand{}
	if err := decodeBody(r, cmd, true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, cmd)
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	cmd := &gameCommands.MineResourceCommand{}
	if err := decodeBody(r, cmd, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, cmd)
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	var req travelRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DestinationIndex == nil {
		writeError(w, http.StatusBadRequest, "destination_index is required")
		return
	}
	s.dispatch(w, r, &gameCommands.TravelCommand{DestinationIndex: *req.DestinationIndex})
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	cmd := &gameCommands.SellCargoCommand{}
	if err := decodeBody(r, cmd, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, cmd)
}

func (s *Server) handleShopBuy(w http.ResponseWriter, r *http.Request) {
	var req shopBuyRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ItemIndex == nil {
		writeError(w, http.StatusBadRequest, "item_index is required")
		return
	}

	switch req.ItemType {
	case shipyard.ItemTypeUpgrade:
		s.dispatch(w, r, &gameCommands.PurchaseUpgradeCommand{ItemIndex: *req.ItemIndex})
	case shipyard.ItemTypeShip:
		s.dispatch(w, r, &gameCommands.PurchaseShipCommand{ItemIndex: *req.ItemIndex})
	default:
		writeJSON(w, http.StatusOK, gameApp.Outcome{Success: false, Message: "Invalid item type"})
	}
}

func (s *Server) handleSwitchShip(w http.ResponseWriter, r *http.Request) {
	var req switchShipRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ShipIndex == nil {
		writeError(w, http.StatusBadRequest, "ship_index is required")
		return
	}
	s.dispatch(w, r, &gameCommands.SwitchShipCommand{ShipIndex: *req.ShipIndex})
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, &gameCommands.EndTurnCommand{})
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	query, err := transactionsQueryFromURL(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.scopeToSession(&query.SessionID) {
		writeNotInitialized(w)
		return
	}
	s.dispatch(w, r, query)
}

func (s *Server) handleProfitLoss(w http.ResponseWriter, r *http.Request) {
	query := &ledgerQueries.GetProfitLossQuery{SessionID: r.URL.Query().Get("session_id")}
	if !s.scopeToSession(&query.SessionID) {
		writeNotInitialized(w)
		return
	}
	s.dispatch(w, r, query)
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := &ledgerQueries.GetCashFlowQuery{
		SessionID: params.Get("session_id"),
		GroupBy:   params.Get("group_by"),
	}
	if !s.scopeToSession(&query.SessionID) {
		writeNotInitialized(w)
		return
	}
	s.dispatch(w, r, query)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		writeError(w, http.StatusServiceUnavailable, "event stream disabled")
		return
	}
	s.hub.ServeWs(w, r)
}

// dispatch sends request through the mediator and writes the response.
// Mediator errors are infrastructure failures and map to 5xx.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, request mediator.Request) {
	ctx := common.WithLogger(r.Context(), s.logger)

	response, err := s.mediator.Send(ctx, request)
	if err != nil {
		status := statusForError(err)
		s.logger.Log("ERROR", "HTTP request failed", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// scopeToSession fills an empty session id with the active session.
// It reports false when neither is available.
func (s *Server) scopeToSession(sessionID *string) bool {
	if *sessionID != "" {
		return true
	}
	if s.sessions == nil {
		return false
	}
	id, ok := s.sessions.CurrentSessionID()
	if !ok {
		return false
	}
	*sessionID = id
	return true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, mediator.ErrNoHandler):
		return http.StatusNotImplemented
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into v. An empty body is accepted only when
// optional is set.
func decodeBody(r *http.Request, v interface{}, optional bool) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return fmt.Errorf("request body is required")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func transactionsQueryFromURL(r *http.Request) (*ledgerQueries.GetTransactionsQuery, error) {
	params := r.URL.Query()
	query := &ledgerQueries.GetTransactionsQuery{
		SessionID: params.Get("session_id"),
		OrderBy:   params.Get("order_by"),
	}

	for name, target := range map[string]*int{"limit": &query.Limit, "offset": &query.Offset} {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer", name)
		}
		*target = n
	}

	for name, target := range map[string]**string{
		"category":            &query.Category,
		"type":                &query.TransactionType,
		"related_entity_type": &query.RelatedEntityType,
		"related_entity_id":   &query.RelatedEntityID,
	} {
		if raw := params.Get(name); raw != "" {
			value := raw
			*target = &value
		}
	}

	for name, target := range map[string]**time.Time{"start_date": &query.StartDate, "end_date": &query.EndDate} {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an RFC3339 timestamp", name)
		}
		*target = &t
	}

	return query, nil
}

func writeNotInitialized(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, gameApp.Outcome{
		Success: false,
		Message: shared.NewGameNotInitializedError().Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
