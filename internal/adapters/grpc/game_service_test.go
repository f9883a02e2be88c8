package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
)

func TestGameServiceDesc_MethodsInStableOrder(t *testing.T) {
	// Arrange
	want := []string{
		MethodBuyShip, MethodBuyUpgrade, MethodEndTurn, MethodGetCashFlow,
		MethodGetFleet, MethodGetGameState, MethodGetLocation, MethodGetLogs,
		MethodGetProfitLoss, MethodGetShop, MethodGetStatus, MethodGetTradeQuote,
		MethodInitGame, MethodListDestinations, MethodListTransactions, MethodMine,
		MethodSell, MethodSwitchShip, MethodTravel,
	}

	// Act
	first := methodNames(gameServiceDesc().Methods)
	second := methodNames(gameServiceDesc().Methods)

	// Assert
	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
	assert.Equal(t, "spacemining/v1/game_service.proto", gameServiceDesc().Metadata)
}

func methodNames(methods []grpc.MethodDesc) []string {
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.MethodName)
	}
	return names
}
