package game

// Event names published to observers (websocket clients, logs)
const (
	EventGameStarted       = "game_started"
	EventResourceMined     = "resource_mined"
	EventShipTraveled      = "ship_traveled"
	EventCargoSold         = "cargo_sold"
	EventUpgradePurchased  = "upgrade_purchased"
	EventShipPurchased     = "ship_purchased"
	EventActiveShipChanged = "active_ship_changed"
	EventTurnEnded         = "turn_ended"
)

// Event is a fact about a session that already happened
type Event struct {
	Name      string
	SessionID string
	Turn      int
	Payload   map[string]interface{}
}

// GameStartedEvent is published when a new session replaces the current one
func GameStartedEvent(s *Session) Event {
	status := s.Status()
	return Event{
		Name:      EventGameStarted,
		SessionID: status.SessionID,
		Turn:      status.Turn,
		Payload: map[string]interface{}{
			"player_name": status.PlayerName,
			"credits":     status.Credits,
			"location":    status.Location,
			"ship":        status.Ship.Name,
		},
	}
}

// ResourceMinedEvent is published after a successful mining action
func ResourceMinedEvent(sessionID string, turn int, r *MineResult) Event {
	return Event{
		Name:      EventResourceMined,
		SessionID: sessionID,
		Turn:      turn,
		Payload: map[string]interface{}{
			"resource": r.Kind.DisplayName(),
			"location": r.Location,
			"mined":    r.Mined,
			"loaded":   r.Loaded,
			"refunded": r.Refunded,
			"partial":  r.Partial,
		},
	}
}

// ShipTraveledEvent is published after a trip
func ShipTraveledEvent(sessionID string, turn int, r *TravelResult) Event {
	return Event{
		Name:      EventShipTraveled,
		SessionID: sessionID,
		Turn:      turn,
		Payload: map[string]interface{}{
			"from":           r.From,
			"to":             r.To,
			"fuel_used":      r.FuelUsed,
			"remaining_fuel": r.RemainingFuel,
		},
	}
}

// CargoSoldEvent is published after a sale
func CargoSoldEvent(sessionID string, turn int, r *SaleResult) Event {
	return Event{
		Name:      EventCargoSold,
		SessionID: sessionID,
		Turn:      turn,
		Payload: map[string]interface{}{
			"outpost":  r.Outpost,
			"items":    r.Items,
			"earnings": r.Earnings,
			"credits":  r.BalanceAfter,
		},
	}
}

// PurchaseEvent is published after an upgrade or ship purchase
func PurchaseEvent(sessionID string, turn int, r *PurchaseResult) Event {
	name := EventUpgradePurchased
	if r.NewShipIndex >= 0 {
		name = EventShipPurchased
	}
	return Event{
		Name:      name,
		SessionID: sessionID,
		Turn:      turn,
		Payload: map[string]interface{}{
			"item":    r.Name,
			"cost":    r.Cost,
			"ship":    r.ShipName,
			"credits": r.BalanceAfter,
		},
	}
}

// ActiveShipChangedEvent is published after switching ships
func ActiveShipChangedEvent(sessionID string, turn int, r *SwitchResult) Event {
	return Event{
		Name:      EventActiveShipChanged,
		SessionID: sessionID,
		Turn:      turn,
		Payload: map[string]interface{}{
			"index": r.Index,
			"ship":  r.Ship,
		},
	}
}

// TurnEndedEvent is published when a new turn begins
func TurnEndedEvent(sessionID string, r *TurnResult) Event {
	return Event{
		Name:      EventTurnEnded,
		SessionID: sessionID,
		Turn:      r.Turn,
		Payload: map[string]interface{}{
			"turn": r.Turn,
		},
	}
}
