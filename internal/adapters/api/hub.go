package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	clientBufferSize    = 64
	broadcastBufferSize = 256
)

// StreamMessage is the envelope pushed to event stream clients
type StreamMessage struct {
	Type      string                 `json:"type"`
	SessionID string                 `json:"session_id"`
	Turn      int                    `json:"turn"`
	Payload   map[string]interface{} `json:"payload"`
}

// Client is one websocket connection on the event stream
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans game events out to every connected websocket client.
// Client bookkeeping happens only on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	upgrader websocket.Upgrader
	logger   common.GameLogger
}

// NewHub creates a hub accepting websocket upgrades from allowedOrigins
// ("*" accepts any origin)
func NewHub(allowedOrigins []string, logger common.GameLogger) *Hub {
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}

	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(allowedOrigins, r.Header.Get("Origin"))
		},
	}
	return h
}

// Run services registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			metrics.SetEventStreamClients(0)
			return

		case client := <-h.register:
			h.clients[client] = true
			metrics.SetEventStreamClients(len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.SetEventStreamClients(len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer
					close(client.send)
					delete(h.clients, client)
				}
			}
			metrics.SetEventStreamClients(len(h.clients))
		}
	}
}

// Publish implements common.EventPublisher. It never blocks the caller;
// events are dropped when the broadcast buffer is full.
func (h *Hub) Publish(event game.Event) {
	data, err := json.Marshal(StreamMessage{
		Type:      event.Name,
		SessionID: event.SessionID,
		Turn:      event.Turn,
		Payload:   event.Payload,
	})
	if err != nil {
		h.logger.Log("ERROR", "Failed to encode game event", map[string]interface{}{
			"event": event.Name,
			"error": err.Error(),
		})
		return
	}

	select {
	case h.broadcast <- data:
		metrics.RecordEventBroadcast(event.Name)
	default:
		h.logger.Log("WARNING", "Event stream buffer full, dropping event", map[string]interface{}{
			"event": event.Name,
		})
	}
}

// ServeWs upgrades the request and attaches the connection to the hub
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Log("WARNING", "Websocket upgrade failed", map[string]interface{}{
			"remote_addr": r.RemoteAddr,
			"error":       err.Error(),
		})
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, clientBufferSize)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pongs and close frames are processed.
// The stream is server-to-client only; inbound messages are discarded.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
