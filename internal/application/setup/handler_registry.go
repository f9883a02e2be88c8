package setup

import (
	"reflect"

	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
	ledgerCommands "github.com/andrescamacho/spacemining-go/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	sessions        *gameApp.SessionManager
	transactionRepo ledger.TransactionRepository
	publisher       common.EventPublisher
	clock           shared.Clock
	middlewares     []mediator.Middleware
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// A nil transaction repository disables the ledger.
func NewHandlerRegistry(
	sessions *gameApp.SessionManager,
	transactionRepo ledger.TransactionRepository,
	publisher common.EventPublisher,
	clock shared.Clock,
	middlewares ...mediator.Middleware,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if publisher == nil {
		publisher = common.NoOpPublisher{}
	}

	return &HandlerRegistry{
		sessions:        sessions,
		transactionRepo: transactionRepo,
		publisher:       publisher,
		clock:           clock,
		middlewares:     middlewares,
	}
}

type registration struct {
	request mediator.Request
	handler mediator.RequestHandler
}

func register(m mediator.Mediator, registrations []registration) error {
	for _, r := range registrations {
		if err := m.Register(reflect.TypeOf(r.request), r.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGameHandlers registers every game command and query handler.
//
// Credit-changing commands journal through RecordTransactionCommand, so the
// ledger handlers must be registered on the same mediator when the ledger is
// enabled.
func (r *HandlerRegistry) RegisterGameHandlers(m mediator.Mediator) error {
	var recorder gameApp.LedgerRecorder = gameApp.NoOpLedgerRecorder{}
	if r.transactionRepo != nil {
		recorder = gameApp.NewMediatorLedgerRecorder(m)
	}

	return register(m, []registration{
		{&gameCommands.InitGameCommand{}, gameCommands.NewInitGameHandler(r.sessions, r.publisher)},
		{&gameCommands.MineResourceCommand{}, gameCommands.NewMineResourceHandler(r.sessions, r.publisher)},
		{&gameCommands.TravelCommand{}, gameCommands.NewTravelHandler(r.sessions, r.publisher)},
		{&gameCommands.SellCargoCommand{}, gameCommands.NewSellCargoHandler(r.sessions, recorder, r.publisher)},
		{&gameCommands.PurchaseUpgradeCommand{}, gameCommands.NewPurchaseUpgradeHandler(r.sessions, recorder, r.publisher)},
		{&gameCommands.PurchaseShipCommand{}, gameCommands.NewPurchaseShipHandler(r.sessions, recorder, r.publisher)},
		{&gameCommands.SwitchShipCommand{}, gameCommands.NewSwitchShipHandler(r.sessions, r.publisher)},
		{&gameCommands.EndTurnCommand{}, gameCommands.NewEndTurnHandler(r.sessions, r.publisher)},

		{&gameQueries.GetGameStateQuery{}, gameQueries.NewGetGameStateHandler(r.sessions)},
		{&gameQueries.GetStatusQuery{}, gameQueries.NewGetStatusHandler(r.sessions)},
		{&gameQueries.GetLocationQuery{}, gameQueries.NewGetLocationHandler(r.sessions)},
		{&gameQueries.ListDestinationsQuery{}, gameQueries.NewListDestinationsHandler(r.sessions)},
		{&gameQueries.GetTradeQuoteQuery{}, gameQueries.NewGetTradeQuoteHandler(r.sessions)},
		{&gameQueries.GetShopQuery{}, gameQueries.NewGetShopHandler(r.sessions)},
		{&gameQueries.GetFleetQuery{}, gameQueries.NewGetFleetHandler(r.sessions)},
	})
}

// RegisterLedgerHandlers registers all ledger command and query handlers with the mediator
//
// This method registers:
//   - RecordTransactionCommand → RecordTransactionHandler (journals sales and purchases)
//   - GetTransactionsQuery → GetTransactionsHandler (for transaction queries)
//   - GetProfitLossQuery → GetProfitLossHandler (for P&L reports)
//   - GetCashFlowQuery → GetCashFlowHandler (for cash flow reports)
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{&ledgerCommands.RecordTransactionCommand{}, ledgerCommands.NewRecordTransactionHandler(r.transactionRepo, r.clock)},
		{&ledgerQueries.GetTransactionsQuery{}, ledgerQueries.NewGetTransactionsHandler(r.transactionRepo)},
		{&ledgerQueries.GetProfitLossQuery{}, ledgerQueries.NewGetProfitLossHandler(r.transactionRepo)},
		{&ledgerQueries.GetCashFlowQuery{}, ledgerQueries.NewGetCashFlowHandler(r.transactionRepo)},
	})
}

// CreateConfiguredMediator creates a new mediator with every handler registered
//
// This is a convenience method that creates a mediator, installs the
// middlewares in order and registers the game and (if enabled) ledger handlers.
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()

	for _, mw := range r.middlewares {
		m.RegisterMiddleware(mw)
	}

	if r.transactionRepo != nil {
		if err := r.RegisterLedgerHandlers(m); err != nil {
			return nil, err
		}
	}

	if err := r.RegisterGameHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
