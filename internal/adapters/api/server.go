// Package api serves the game over an HTTP JSON API.
// Every route is a thin mapping onto a mediator command or query; domain
// failures come back as 200 responses with success=false, mirroring the
// gRPC daemon.
package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
)

// SessionIDSource resolves the active session for ledger requests
type SessionIDSource interface {
	CurrentSessionID() (string, bool)
}

// Server is the HTTP JSON API
type Server struct {
	mediator       mediator.Mediator
	sessions       SessionIDSource
	hub            *Hub
	logger         common.GameLogger
	limiter        *RateLimiter
	allowedOrigins []string

	handler    http.Handler
	httpServer *http.Server
}

// NewServer wires every route. hub may be nil, in which case the event
// stream endpoint answers 503.
func NewServer(
	cfg config.ServerConfig,
	m mediator.Mediator,
	sessions SessionIDSource,
	hub *Hub,
	logger common.GameLogger,
) *Server {
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}

	s := &Server{
		mediator:       m,
		sessions:       sessions,
		hub:            hub,
		logger:         logger,
		limiter:        NewRateLimiter(float64(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux := http.NewServeMux()

	// Reads
	mux.HandleFunc("GET /api/init_game", s.handleGameState)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/location", s.handleLocation)
	mux.HandleFunc("GET /api/outposts", s.handleTradeQuote)
	mux.HandleFunc("GET /api/destinations", s.handleDestinations)
	mux.HandleFunc("GET /api/shop", s.handleShop)
	mux.HandleFunc("GET /api/fleet", s.handleFleet)

	// Actions
	mux.HandleFunc("POST /api/init_game", s.handleInitGame)
	mux.HandleFunc("POST /api/mine", s.handleMine)
	mux.HandleFunc("POST /api/travel", s.handleTravel)
	mux.HandleFunc("POST /api/trade", s.handleTrade)
	mux.HandleFunc("POST /api/shop/buy", s.handleShopBuy)
	mux.HandleFunc("POST /api/ship/switch", s.handleSwitchShip)
	mux.HandleFunc("POST /api/turn/end", s.handleEndTurn)
	mux.HandleFunc("POST /api/end_turn", s.handleEndTurn)

	// Ledger
	mux.HandleFunc("GET /api/ledger", s.handleLedger)
	mux.HandleFunc("GET /api/ledger/report", s.handleProfitLoss)
	mux.HandleFunc("GET /api/ledger/cashflow", s.handleCashFlow)

	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.handler = s.instrument(s.cors(s.limiter.Middleware(mux)))
	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return s
}

// Handler returns the fully wrapped router
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves in the background until Shutdown is called
func (s *Server) Start() {
	go func() {
		s.logger.Log("INFO", "HTTP API listening", map[string]interface{}{"address": s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Log("ERROR", "HTTP API server error", map[string]interface{}{"error": err.Error()})
		}
	}()
}

// Serve serves on an existing listener and blocks until Shutdown
func (s *Server) Serve(listener net.Listener) error {
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http api: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// cors answers preflight requests and stamps CORS headers for allowed origins
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(s.allowedOrigins, origin) {
			if containsWildcard(s.allowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument logs and records metrics for every request
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = "unmatched"
		}
		duration := time.Since(start)
		metrics.RecordAPIRequest(r.Method, endpoint, rec.status, duration.Seconds())

		level := "DEBUG"
		if rec.status >= http.StatusInternalServerError {
			level = "ERROR"
		}
		s.logger.Log(level, "HTTP request", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": duration.Milliseconds(),
		})
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func containsWildcard(allowed []string) bool {
	for _, o := range allowed {
		if o == "*" {
			return true
		}
	}
	return false
}

// statusRecorder captures the response status. It stays hijackable so the
// websocket upgrade works through the middleware chain.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
