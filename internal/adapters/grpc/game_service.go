package grpc

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
	ledgerQueries "github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "spacemining.v1.GameService"

// Method names of the GameService
const (
	MethodInitGame         = "InitGame"
	MethodGetGameState     = "GetGameState"
	MethodGetStatus        = "GetStatus"
	MethodGetLocation      = "GetLocation"
	MethodListDestinations = "ListDestinations"
	MethodMine             = "Mine"
	MethodTravel           = "Travel"
	MethodGetTradeQuote    = "GetTradeQuote"
	MethodSell             = "Sell"
	MethodGetShop          = "GetShop"
	MethodBuyUpgrade       = "BuyUpgrade"
	MethodBuyShip          = "BuyShip"
	MethodGetFleet         = "GetFleet"
	MethodSwitchShip       = "SwitchShip"
	MethodEndTurn          = "EndTurn"
	MethodListTransactions = "ListTransactions"
	MethodGetProfitLoss    = "GetProfitLoss"
	MethodGetCashFlow      = "GetCashFlow"
	MethodGetLogs          = "GetLogs"
)

// route binds a method name to the mediator request it decodes into.
// Session-scoped requests get the active session id when the caller sent none.
type route struct {
	newRequest    func() mediator.Request
	sessionScoped bool
}

var routes = map[string]route{
	MethodInitGame:         {newRequest: func() mediator.Request { return &gameCommands.InitGameCommand{} }},
	MethodGetGameState:     {newRequest: func() mediator.Request { return &gameQueries.GetGameStateQuery{} }},
	MethodGetStatus:        {newRequest: func() mediator.Request { return &gameQueries.GetStatusQuery{} }},
	MethodGetLocation:      {newRequest: func() mediator.Request { return &gameQueries.GetLocationQuery{} }},
	MethodListDestinations: {newRequest: func() mediator.Request { return &gameQueries.ListDestinationsQuery{} }},
	MethodMine:             {newRequest: func() mediator.Request { return &gameCommands.MineResourceCommand{} }},
	MethodTravel:           {newRequest: func() mediator.Request { return &gameCommands.TravelCommand{} }},
	MethodGetTradeQuote:    {newRequest: func() mediator.Request { return &gameQueries.GetTradeQuoteQuery{} }},
	MethodSell:             {newRequest: func() mediator.Request { return &gameCommands.SellCargoCommand{} }},
	MethodGetShop:          {newRequest: func() mediator.Request { return &gameQueries.GetShopQuery{} }},
	MethodBuyUpgrade:       {newRequest: func() mediator.Request { return &gameCommands.PurchaseUpgradeCommand{} }},
	MethodBuyShip:          {newRequest: func() mediator.Request { return &gameCommands.PurchaseShipCommand{} }},
	MethodGetFleet:         {newRequest: func() mediator.Request { return &gameQueries.GetFleetQuery{} }},
	MethodSwitchShip:       {newRequest: func() mediator.Request { return &gameCommands.SwitchShipCommand{} }},
	MethodEndTurn:          {newRequest: func() mediator.Request { return &gameCommands.EndTurnCommand{} }},
	MethodListTransactions: {newRequest: func() mediator.Request { return &ledgerQueries.GetTransactionsQuery{} }, sessionScoped: true},
	MethodGetProfitLoss:    {newRequest: func() mediator.Request { return &ledgerQueries.GetProfitLossQuery{} }, sessionScoped: true},
	MethodGetCashFlow:      {newRequest: func() mediator.Request { return &ledgerQueries.GetCashFlowQuery{} }, sessionScoped: true},
}

// GameServiceServer is implemented by the daemon. Every method carries a
// google.protobuf.Struct in and out holding the JSON shape of the request
// and response.
type GameServiceServer interface {
	Dispatch(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error)
}

// gameServiceDesc builds the service descriptor for every known method
func gameServiceDesc() *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*GameServiceServer)(nil),
		Streams:     []grpc.StreamDesc{},
		Metadata:    "spacemining/v1/game_service.proto",
	}

	names := make([]string, 0, len(routes)+1)
	for name := range routes {
		names = append(names, name)
	}
	names = append(names, MethodGetLogs)
	sort.Strings(names)

	for _, name := range names {
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: name,
			Handler:    unaryHandler(name),
		})
	}
	return desc
}

func unaryHandler(method string) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return srv.(GameServiceServer).Dispatch(ctx, method, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.(GameServiceServer).Dispatch(ctx, method, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", ServiceName, method)
}

// toStatus maps an application error onto a gRPC status
func toStatus(err error) error {
	switch {
	case errors.Is(err, mediator.ErrNoHandler):
		return status.Error(codes.Unimplemented, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
