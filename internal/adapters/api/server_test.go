package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/adapters/api"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	"github.com/andrescamacho/spacemining-go/internal/application/setup"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/logging"
	"github.com/andrescamacho/spacemining-go/test/helpers"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Address:        ":0",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		RateLimit:      config.RateLimitConfig{Requests: 1000, Burst: 1000},
		AllowedOrigins: []string{"*"},
	}
}

func newTestServer(t *testing.T, cfg config.ServerConfig) (*httptest.Server, *helpers.GameFixture) {
	t.Helper()
	fixture := helpers.NewGameFixture(t)
	logger := logging.New(&bytes.Buffer{}, "debug", "text")

	srv := api.NewServer(cfg, fixture.Mediator, fixture.Sessions, nil, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, fixture
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp.StatusCode, decoded
}

func TestServer_ReadsBeforeInit(t *testing.T) {
	ts, _ := newTestServer(t, testServerConfig())

	for _, path := range []string{"/api/status", "/api/location", "/api/outposts", "/api/shop", "/api/destinations", "/api/fleet", "/api/ledger"} {
		code, body := doJSON(t, ts, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, code, path)
		assert.Equal(t, false, body["success"], path)
		assert.Equal(t, "Game not initialized", body["message"], path)
	}

	_, state := doJSON(t, ts, http.MethodGet, "/api/init_game", "")
	assert.Equal(t, false, state["success"])
	assert.Equal(t, "Game not initialized", state["message"])
}

func TestServer_InitGameThenPlay(t *testing.T) {
	ts, fixture := newTestServer(t, testServerConfig())

	code, initResp := doJSON(t, ts, http.MethodPost, "/api/init_game", `{"starting_credits": 2500, "player_name": "Ripley"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, initResp["success"], initResp["message"])
	assert.Equal(t, "Game initialized with 2500 starting credits", initResp["message"])

	_, state := doJSON(t, ts, http.MethodGet, "/api/init_game", "")
	assert.Equal(t, true, state["success"])
	assert.Equal(t, "Game already initialized", state["message"])

	_, mined := doJSON(t, ts, http.MethodPost, "/api/mine", `{"resource_type": "Iron"}`)
	require.Equal(t, true, mined["success"], mined["message"])
	loaded := mined["loaded"].(float64)
	assert.Positive(t, loaded)

	_, travel := doJSON(t, ts, http.MethodPost, "/api/travel", `{"destination_index": 1}`)
	require.Equal(t, true, travel["success"], travel["message"])
	assert.Equal(t, 15.0, travel["fuel_used"])

	_, quote := doJSON(t, ts, http.MethodGet, "/api/outposts", "")
	require.Equal(t, true, quote["success"])
	quoteBody := quote["quote"].(map[string]interface{})
	assert.Equal(t, "Frontier Trading Post", quoteBody["name"])
	assert.InDelta(t, loaded*3.0, quoteBody["total_value"].(float64), 1e-9)

	_, sold := doJSON(t, ts, http.MethodPost, "/api/trade", `{"sell_all": true}`)
	require.Equal(t, true, sold["success"], sold["message"])
	assert.InDelta(t, 2500+loaded*3.0, sold["credits"].(float64), 1e-9)

	_, ledgerResp := doJSON(t, ts, http.MethodGet, "/api/ledger?limit=10", "")
	assert.Equal(t, 1.0, ledgerResp["total"])

	_, report := doJSON(t, ts, http.MethodGet, "/api/ledger/report", "")
	assert.InDelta(t, loaded*3.0, report["total_revenue"].(float64), 1e-9)

	_, turn := doJSON(t, ts, http.MethodPost, "/api/turn/end", "")
	assert.Equal(t, 2.0, turn["turn"])
	_, turn = doJSON(t, ts, http.MethodPost, "/api/end_turn", "")
	assert.Equal(t, 3.0, turn["turn"])

	assert.Contains(t, fixture.Publisher.Names(), game.EventCargoSold)
}

func TestServer_ShopBuyAndSwitch(t *testing.T) {
	ts, fixture := newTestServer(t, testServerConfig())
	fixture.StartSession(t, 20000)

	_, upgrade := doJSON(t, ts, http.MethodPost, "/api/shop/buy", `{"item_type": "upgrade", "item_index": 0}`)
	require.Equal(t, true, upgrade["success"], upgrade["message"])
	assert.Equal(t, "Purchased Cargo Expansion! Credits remaining: 18000", upgrade["message"])

	_, ship := doJSON(t, ts, http.MethodPost, "/api/shop/buy", `{"item_type": "ship", "item_index": 0}`)
	require.Equal(t, true, ship["success"], ship["message"])

	_, switched := doJSON(t, ts, http.MethodPost, "/api/ship/switch", `{"ship_index": 1}`)
	require.Equal(t, true, switched["success"], switched["message"])

	_, fleet := doJSON(t, ts, http.MethodGet, "/api/fleet", "")
	ships := fleet["ships"].([]interface{})
	require.Len(t, ships, 2)
	assert.Equal(t, true, ships[1].(map[string]interface{})["active"])

	_, invalid := doJSON(t, ts, http.MethodPost, "/api/shop/buy", `{"item_type": "weapon", "item_index": 0}`)
	assert.Equal(t, false, invalid["success"])
	assert.Equal(t, "Invalid item type", invalid["message"])

	_, badIndex := doJSON(t, ts, http.MethodPost, "/api/shop/buy", `{"item_type": "upgrade", "item_index": 99}`)
	assert.Equal(t, false, badIndex["success"])
	assert.Equal(t, "Invalid upgrade", badIndex["message"])
}

func TestServer_DomainFailuresAreOK(t *testing.T) {
	ts, fixture := newTestServer(t, testServerConfig())
	fixture.StartSession(t, 1000)

	code, sold := doJSON(t, ts, http.MethodPost, "/api/trade", `{"sell_all": true}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, sold["success"])
	assert.Contains(t, sold["message"], "No trading outpost at this location")

	_, travel := doJSON(t, ts, http.MethodPost, "/api/travel", `{"destination_index": 0}`)
	assert.Equal(t, false, travel["success"])
	assert.Equal(t, "Already at this location", travel["message"])
}

func TestServer_MalformedBodies(t *testing.T) {
	ts, fixture := newTestServer(t, testServerConfig())
	fixture.StartSession(t, 1000)

	cases := map[string]string{
		"/api/mine":        `{"resource_type": `,
		"/api/travel":      `{}`,
		"/api/shop/buy":    `{"item_type": "ship"}`,
		"/api/ship/switch": ``,
	}
	for path, body := range cases {
		code, resp := doJSON(t, ts, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, code, path)
		assert.NotEmpty(t, resp["error"], path)
	}

	code, _ := doJSON(t, ts, http.MethodGet, "/api/ledger?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_CORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t, testServerConfig())

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/mine", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestServer_CORSRestrictedOrigins(t *testing.T) {
	cfg := testServerConfig()
	cfg.AllowedOrigins = []string{"http://game.example"}
	ts, _ := newTestServer(t, cfg)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://game.example")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://game.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimit = config.RateLimitConfig{Requests: 1, Burst: 2}
	ts, _ := newTestServer(t, cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		code, _ := doJSON(t, ts, http.MethodGet, "/health", "")
		codes = append(codes, code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestServer_EventStreamDisabledWithoutHub(t *testing.T) {
	ts, _ := newTestServer(t, testServerConfig())

	code, body := doJSON(t, ts, http.MethodGet, "/api/events", "")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "event stream disabled", body["error"])
}

func TestServer_EventStream(t *testing.T) {
	fixture := helpers.NewGameFixture(t)
	logger := logging.New(&bytes.Buffer{}, "debug", "text")

	hub := api.NewHub([]string{"*"}, logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	// Re-wire the mediator so handlers publish to the hub as well
	publisher := common.MultiPublisher{fixture.Publisher, hub}
	registry := setup.NewHandlerRegistry(fixture.Sessions, fixture.TransactionRepo, publisher, fixture.Clock)
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	srv := api.NewServer(testServerConfig(), m, fixture.Sessions, hub, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	messages := make(chan []byte, 16)
	go func() {
		defer close(messages)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			messages <- data
		}
	}()

	// Registration happens on the hub goroutine after the handshake, so keep
	// starting games until an event arrives.
	var msg api.StreamMessage
	require.Eventually(t, func() bool {
		code, _ := doJSON(t, ts, http.MethodPost, "/api/init_game", `{}`)
		if code != http.StatusOK {
			return false
		}
		select {
		case data, ok := <-messages:
			return ok && json.Unmarshal(data, &msg) == nil
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, game.EventGameStarted, msg.Type)
	assert.NotEmpty(t, msg.SessionID)
	assert.Equal(t, game.DefaultPlayerName, msg.Payload["player_name"])
}
