package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

type outcomeResponse struct {
	success bool
}

func (r *outcomeResponse) IsSuccess() bool { return r.success }

type mineCommand struct{}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "mineCommand", extractCommandName(&mineCommand{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}

func TestPrometheusMiddleware_RecordsStatuses(t *testing.T) {
	InitRegistry()
	defer Reset()

	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := PrometheusMiddleware(collector)

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return &outcomeResponse{success: true}, nil
	}
	rejected := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return &outcomeResponse{success: false}, nil
	}
	failed := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("database down")
	}

	_, _ = mw(context.Background(), &mineCommand{}, ok)
	_, _ = mw(context.Background(), &mineCommand{}, ok)
	_, _ = mw(context.Background(), &mineCommand{}, rejected)
	_, _ = mw(context.Background(), &mineCommand{}, failed)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.executions.WithLabelValues("mineCommand", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.executions.WithLabelValues("mineCommand", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.executions.WithLabelValues("mineCommand", "error")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), &mineCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestEconomyMetrics_GlobalRecorders(t *testing.T) {
	InitRegistry()
	defer Reset()

	collector := NewEconomyMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalEconomyCollector(collector)

	RecordSessionStarted(1000)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.sessionsStarted))
	assert.Equal(t, 1000.0, testutil.ToFloat64(collector.creditsAtTurn))

	RecordMining("IRON", "Kepler-442b", 12, 10, 2)
	RecordMining("IRON", "Kepler-442b", 8, 8, 0)
	RecordTravel("Kepler-442b", "Frontier Station", 15)
	RecordSale("IRON", "Frontier Trading Post", 18, 54)
	RecordPurchase("upgrade", "Cargo Expansion", 2000)
	RecordTurn(1054)

	assert.Equal(t, 20.0, testutil.ToFloat64(collector.resourcesMined.WithLabelValues("IRON", "Kepler-442b")))
	assert.Equal(t, 18.0, testutil.ToFloat64(collector.resourcesLoaded.WithLabelValues("IRON")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.resourcesRefunded.WithLabelValues("IRON")))
	assert.Equal(t, 15.0, testutil.ToFloat64(collector.fuelConsumed))
	assert.Equal(t, 54.0, testutil.ToFloat64(collector.salesRevenue.WithLabelValues("IRON")))
	assert.Equal(t, 2000.0, testutil.ToFloat64(collector.creditsSpent.WithLabelValues("upgrade")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.turnsTotal))
	assert.Equal(t, 1054.0, testutil.ToFloat64(collector.creditsAtTurn))
}

func TestFinancialMetrics_RecordTransaction(t *testing.T) {
	InitRegistry()
	defer Reset()

	collector := NewFinancialMetricsCollector(nil, nil)
	require.NoError(t, collector.Register())
	SetGlobalFinancialCollector(collector)

	RecordTransaction("PURCHASE_UPGRADE", "SHIP_UPGRADES", -2000, 500)

	assert.Equal(t, 500.0, testutil.ToFloat64(collector.balance))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.journaled.WithLabelValues("PURCHASE_UPGRADE", "SHIP_UPGRADES")))
}

func TestAPIMetrics_GlobalRecorders(t *testing.T) {
	InitRegistry()
	defer Reset()

	collector := NewAPIMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalAPICollector(collector)

	RecordAPIRequest("POST", "/api/mine", 200, 0.002)
	RecordAPIRequest("POST", "/api/mine", 200, 0.003)
	RecordAPIRequest("POST", "/api/mine", 400, 0.001)
	RecordRateLimited("/api/mine")
	SetEventStreamClients(3)
	RecordEventBroadcast("resource_mined")

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.requests.WithLabelValues("POST", "/api/mine", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requests.WithLabelValues("POST", "/api/mine", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.rateLimited.WithLabelValues("/api/mine")))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.streamClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.broadcasts.WithLabelValues("resource_mined")))
}

func TestGlobalRecorders_NoCollectorIsNoOp(t *testing.T) {
	Reset()

	assert.NotPanics(t, func() {
		RecordMining("IRON", "x", 1, 1, 0)
		RecordTransaction("SELL_CARGO", "TRADING_REVENUE", 1, 1)
		RecordAPIRequest("GET", "/api/status", 200, 0.001)
		SetEventStreamClients(1)
	})
	assert.False(t, IsEnabled())
}

func TestNewServer_RequiresRegistry(t *testing.T) {
	Reset()

	_, err := NewServer("localhost", 9090, "/metrics")

	assert.Error(t, err)
}
