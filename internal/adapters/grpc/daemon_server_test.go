package grpc_test

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
	ledgerQueries "github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/logging"
	"github.com/andrescamacho/spacemining-go/test/helpers"
)

const bufSize = 1024 * 1024

func startDaemon(t *testing.T) (*daemon.DaemonClientGRPC, *helpers.GameFixture) {
	t.Helper()
	fixture := helpers.NewGameFixture(t)
	logger := logging.New(&bytes.Buffer{}, "debug", "text")

	listener := bufconn.Listen(bufSize)
	server := daemon.NewDaemonServerWithListener(fixture.Mediator, fixture.Sessions, logger, listener)

	errChan := make(chan error, 1)
	go func() { errChan <- server.Start() }()
	t.Cleanup(func() {
		server.Stop()
		select {
		case <-errChan:
		case <-time.After(5 * time.Second):
		}
	})

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	client := daemon.NewDaemonClientFromConn(conn)
	t.Cleanup(func() { _ = client.Close() })
	return client, fixture
}

func TestDaemon_OperationsBeforeInit(t *testing.T) {
	client, _ := startDaemon(t)
	ctx := context.Background()

	var status gameQueries.GetStatusResponse
	require.NoError(t, client.Call(ctx, daemon.MethodGetStatus, &gameQueries.GetStatusQuery{}, &status))

	assert.False(t, status.Success)
	assert.Equal(t, "Game not initialized", status.Message)

	var report map[string]interface{}
	require.NoError(t, client.Call(ctx, daemon.MethodGetProfitLoss, nil, &report))
	assert.Equal(t, false, report["success"])
}

func TestDaemon_InitMineAndStatus(t *testing.T) {
	client, _ := startDaemon(t)
	ctx := context.Background()

	credits := 500.0
	var initResp gameCommands.InitGameResponse
	require.NoError(t, client.Call(ctx, daemon.MethodInitGame, &gameCommands.InitGameCommand{
		PlayerName:      "Ripley",
		StartingCredits: &credits,
	}, &initResp))
	require.True(t, initResp.Success, initResp.Message)
	assert.Equal(t, "Game initialized with 500 starting credits", initResp.Message)
	require.NotNil(t, initResp.Status)
	assert.Equal(t, "Ripley", initResp.Status.PlayerName)
	assert.Equal(t, "Kepler-442b", initResp.Status.Location)

	var mined gameCommands.MineResourceResponse
	require.NoError(t, client.Call(ctx, daemon.MethodMine, &gameCommands.MineResourceCommand{ResourceType: "Iron"}, &mined))
	require.True(t, mined.Success, mined.Message)
	assert.Equal(t, "Iron", mined.Resource)
	assert.Positive(t, mined.Loaded)

	var status gameQueries.GetStatusResponse
	require.NoError(t, client.Call(ctx, daemon.MethodGetStatus, nil, &status))
	require.True(t, status.Success)
	assert.Equal(t, mined.Loaded, status.Status.CargoUsed)
	assert.Equal(t, 500.0, status.Status.Credits)
}

func TestDaemon_DomainFailureIsNotATransportError(t *testing.T) {
	client, _ := startDaemon(t)
	ctx := context.Background()
	require.NoError(t, client.Call(ctx, daemon.MethodInitGame, &gameCommands.InitGameCommand{}, nil))

	var sold gameCommands.SellCargoResponse
	err := client.Call(ctx, daemon.MethodSell, &gameCommands.SellCargoCommand{SellAll: true}, &sold)

	require.NoError(t, err)
	assert.False(t, sold.Success)
	assert.Contains(t, sold.Message, "No trading outpost at this location")
}

func TestDaemon_LedgerScopedToCurrentSession(t *testing.T) {
	client, fixture := startDaemon(t)
	ctx := context.Background()
	require.NoError(t, client.Call(ctx, daemon.MethodInitGame, &gameCommands.InitGameCommand{}, nil))

	var mined gameCommands.MineResourceResponse
	require.NoError(t, client.Call(ctx, daemon.MethodMine, &gameCommands.MineResourceCommand{ResourceType: "IRON"}, &mined))
	require.True(t, mined.Success, mined.Message)

	var travel gameCommands.TravelResponse
	require.NoError(t, client.Call(ctx, daemon.MethodTravel, &gameCommands.TravelCommand{DestinationIndex: 1}, &travel))
	require.True(t, travel.Success, travel.Message)
	assert.Equal(t, 15, travel.FuelUsed)

	var sold gameCommands.SellCargoResponse
	require.NoError(t, client.Call(ctx, daemon.MethodSell, &gameCommands.SellCargoCommand{SellAll: true}, &sold))
	require.True(t, sold.Success, sold.Message)

	var txs ledgerQueries.GetTransactionsResponse
	require.NoError(t, client.Call(ctx, daemon.MethodListTransactions, &ledgerQueries.GetTransactionsQuery{}, &txs))
	require.Equal(t, 1, txs.Total)
	sessionID, _ := fixture.Sessions.CurrentSessionID()
	assert.Equal(t, sessionID, txs.Transactions[0].SessionID)
	assert.InDelta(t, sold.Earnings, txs.Transactions[0].Amount, 1e-9)
}

func TestDaemon_LogsAndHealth(t *testing.T) {
	client, _ := startDaemon(t)
	ctx := context.Background()
	require.NoError(t, client.Call(ctx, daemon.MethodInitGame, &gameCommands.InitGameCommand{}, nil))

	status, err := client.HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SERVING", status)

	logs, err := client.Logs(ctx, 10, "")
	require.NoError(t, err)
	assert.NotEmpty(t, logs.Entries)
}

func TestDaemon_UnknownMethod(t *testing.T) {
	client, _ := startDaemon(t)

	err := client.Call(context.Background(), "Teleport", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unimplemented")
}
