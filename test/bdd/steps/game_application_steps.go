package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/spacemining-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	gameCmd "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQuery "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
	ledgerQuery "github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/application/setup"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/content"
	"github.com/andrescamacho/spacemining-go/test/helpers"
	"github.com/cucumber/godog"
)

// outcome is implemented by every game response through the embedded Outcome
type outcome interface {
	IsSuccess() bool
	OutcomeMessage() string
}

type gameApplicationContext struct {
	mediator  mediator.Mediator
	sessions  *gameApp.SessionManager
	publisher *common.RecordingPublisher

	response        outcome
	err             error
	previousSession string
	cashFlow        *ledgerQuery.GetCashFlowResponse
}

func (gc *gameApplicationContext) reset() {
	gc.mediator = nil
	gc.sessions = nil
	gc.publisher = nil
	gc.response = nil
	gc.err = nil
	gc.previousSession = ""
	gc.cashFlow = nil
}

func (gc *gameApplicationContext) theGameApplicationIsRunning() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	tables, err := content.Default()
	if err != nil {
		return err
	}
	clock := shared.NewMockClock(helpers.FixtureTime)
	gc.sessions = gameApp.NewSessionManager(tables.Generator, tables.Catalog, clock, game.Settings{
		PlayerName:      game.DefaultPlayerName,
		StartingCredits: game.DefaultStartingCredits,
	}, helpers.FixtureSeed)
	gc.publisher = &common.RecordingPublisher{}

	repo := persistence.NewGormTransactionRepository(helpers.SharedTestDB)
	registry := setup.NewHandlerRegistry(gc.sessions, repo, gc.publisher, clock)
	gc.mediator, err = registry.CreateConfiguredMediator()
	return err
}

// send dispatches request and keeps the outcome for the assertions
func (gc *gameApplicationContext) send(request mediator.Request) error {
	gc.response = nil
	gc.err = nil

	resp, err := gc.mediator.Send(context.Background(), request)
	if err != nil {
		gc.err = err
		return nil
	}
	out, ok := resp.(outcome)
	if !ok {
		return fmt.Errorf("response %T carries no outcome", resp)
	}
	gc.response = out
	return nil
}

func (gc *gameApplicationContext) currentSessionID() (string, error) {
	id, ok := gc.sessions.CurrentSessionID()
	if !ok {
		return "", fmt.Errorf("no game initialized")
	}
	return id, nil
}

// Commands

func (gc *gameApplicationContext) aNewGameIsInitialized(player string, credits float64, seed int) error {
	if id, ok := gc.sessions.CurrentSessionID(); ok {
		gc.previousSession = id
	}
	s := uint64(seed)
	return gc.send(&gameCmd.InitGameCommand{PlayerName: player, StartingCredits: &credits, Seed: &s})
}

func (gc *gameApplicationContext) theGameStatusIsRequested() error {
	return gc.send(&gameQuery.GetStatusQuery{})
}

func (gc *gameApplicationContext) theGameMines(resource string) error {
	return gc.send(&gameCmd.MineResourceCommand{ResourceType: resource})
}

func (gc *gameApplicationContext) theGameTravelsToBody(index int) error {
	return gc.send(&gameCmd.TravelCommand{DestinationIndex: index})
}

func (gc *gameApplicationContext) theGameSellsAllCargo() error {
	return gc.send(&gameCmd.SellCargoCommand{SellAll: true})
}

func (gc *gameApplicationContext) theGameBuysUpgrade(index int) error {
	return gc.send(&gameCmd.PurchaseUpgradeCommand{ItemIndex: index})
}

func (gc *gameApplicationContext) theGameBuysShip(index int) error {
	return gc.send(&gameCmd.PurchaseShipCommand{ItemIndex: index})
}

func (gc *gameApplicationContext) theGameEndsTheTurn() error {
	return gc.send(&gameCmd.EndTurnCommand{})
}

func (gc *gameApplicationContext) theCashFlowIsRequestedByCategory() error {
	sessionID, err := gc.currentSessionID()
	if err != nil {
		return err
	}
	resp, err := gc.mediator.Send(context.Background(), &ledgerQuery.GetCashFlowQuery{
		SessionID: sessionID,
		GroupBy:   ledgerQuery.GroupByCategory,
	})
	if err != nil {
		return err
	}
	flow, ok := resp.(*ledgerQuery.GetCashFlowResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", resp)
	}
	gc.cashFlow = flow
	return nil
}

// Outcome assertions

func (gc *gameApplicationContext) theGameResponseShouldSucceed() error {
	if gc.err != nil {
		return fmt.Errorf("request failed: %w", gc.err)
	}
	if gc.response == nil || !gc.response.IsSuccess() {
		return fmt.Errorf("expected success, got %q", gc.responseMessage())
	}
	return nil
}

func (gc *gameApplicationContext) theGameResponseShouldFailWith(message string) error {
	if gc.err != nil {
		return fmt.Errorf("expected a rejected outcome, got infrastructure error: %w", gc.err)
	}
	if gc.response == nil || gc.response.IsSuccess() {
		return fmt.Errorf("expected failure %q, but the request succeeded", message)
	}
	if got := gc.response.OutcomeMessage(); got != message {
		return fmt.Errorf("expected message %q, got %q", message, got)
	}
	return nil
}

func (gc *gameApplicationContext) responseMessage() string {
	if gc.response == nil {
		return ""
	}
	return gc.response.OutcomeMessage()
}

func (gc *gameApplicationContext) theGameResponseMessageShouldBe(message string) error {
	if got := gc.responseMessage(); got != message {
		return fmt.Errorf("expected message %q, got %q", message, got)
	}
	return nil
}

func (gc *gameApplicationContext) theGameResponseMessageShouldMention(fragment string) error {
	if got := gc.responseMessage(); !strings.Contains(got, fragment) {
		return fmt.Errorf("expected message to mention %q, got %q", fragment, got)
	}
	return nil
}

func (gc *gameApplicationContext) theCurrentGameShouldBelongTo(player string, credits float64) error {
	session, err := gc.sessions.Current()
	if err != nil {
		return err
	}
	status := session.Status()
	if status.PlayerName != player {
		return fmt.Errorf("expected player %q, got %q", player, status.PlayerName)
	}
	if math.Abs(status.Credits-credits) > creditTolerance {
		return fmt.Errorf("expected %.2f credits, got %.2f", credits, status.Credits)
	}
	return nil
}

func (gc *gameApplicationContext) theSessionShouldHaveChanged() error {
	current, err := gc.currentSessionID()
	if err != nil {
		return err
	}
	if gc.previousSession == "" || current == gc.previousSession {
		return fmt.Errorf("expected a new session, still on %q", current)
	}
	return nil
}

// Event assertions

func (gc *gameApplicationContext) anEventShouldHaveBeenPublished(name string) error {
	for _, published := range gc.publisher.Names() {
		if published == name {
			return nil
		}
	}
	return fmt.Errorf("expected a %q event, got %v", name, gc.publisher.Names())
}

func (gc *gameApplicationContext) onlyAnEventShouldHaveBeenPublished(name string) error {
	names := gc.publisher.Names()
	if len(names) != 1 || names[0] != name {
		return fmt.Errorf("expected only a %q event, got %v", name, names)
	}
	return nil
}

func (gc *gameApplicationContext) noGameEventsShouldHaveBeenPublished() error {
	if names := gc.publisher.Names(); len(names) != 0 {
		return fmt.Errorf("expected no events, got %v", names)
	}
	return nil
}

// Journal assertions

func (gc *gameApplicationContext) journal() (*ledgerQuery.GetTransactionsResponse, error) {
	sessionID, err := gc.currentSessionID()
	if err != nil {
		return nil, err
	}
	resp, err := gc.mediator.Send(context.Background(), &ledgerQuery.GetTransactionsQuery{
		SessionID: sessionID,
		OrderBy:   "timestamp DESC",
	})
	if err != nil {
		return nil, err
	}
	list, ok := resp.(*ledgerQuery.GetTransactionsResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return list, nil
}

func (gc *gameApplicationContext) latestEntry() (*ledgerQuery.TransactionDTO, error) {
	list, err := gc.journal()
	if err != nil {
		return nil, err
	}
	if len(list.Transactions) == 0 {
		return nil, fmt.Errorf("the journal is empty")
	}
	return list.Transactions[0], nil
}

func (gc *gameApplicationContext) theJournalShouldHoldTransactions(count int) error {
	list, err := gc.journal()
	if err != nil {
		return err
	}
	if list.Total != count || len(list.Transactions) != count {
		return fmt.Errorf("expected %d journal entries, got %d (total %d)", count, len(list.Transactions), list.Total)
	}
	return nil
}

func (gc *gameApplicationContext) theLatestJournalEntryShouldBe(txType, category string, amount, balanceAfter float64) error {
	entry, err := gc.latestEntry()
	if err != nil {
		return err
	}
	if entry.Type != txType || entry.Category != category {
		return fmt.Errorf("expected %s/%s, got %s/%s", txType, category, entry.Type, entry.Category)
	}
	if math.Abs(entry.Amount-amount) > creditTolerance {
		return fmt.Errorf("expected amount %.2f, got %.2f", amount, entry.Amount)
	}
	if math.Abs(entry.BalanceAfter-balanceAfter) > creditTolerance {
		return fmt.Errorf("expected balance after %.2f, got %.2f", balanceAfter, entry.BalanceAfter)
	}
	if math.Abs(entry.BalanceBefore+entry.Amount-entry.BalanceAfter) > creditTolerance {
		return fmt.Errorf("balance before %.2f plus amount %.2f does not give %.2f",
			entry.BalanceBefore, entry.Amount, entry.BalanceAfter)
	}
	return nil
}

func (gc *gameApplicationContext) theLatestJournalEntryShouldHavePositiveAmount(txType, category string) error {
	entry, err := gc.latestEntry()
	if err != nil {
		return err
	}
	if entry.Type != txType || entry.Category != category {
		return fmt.Errorf("expected %s/%s, got %s/%s", txType, category, entry.Type, entry.Category)
	}
	if entry.Amount <= 0 {
		return fmt.Errorf("expected a positive amount, got %.2f", entry.Amount)
	}
	return nil
}

func (gc *gameApplicationContext) theLatestJournalEntryShouldBeFromTurn(turn int) error {
	entry, err := gc.latestEntry()
	if err != nil {
		return err
	}
	if entry.Turn != turn {
		return fmt.Errorf("expected turn %d, got %d", turn, entry.Turn)
	}
	return nil
}

func (gc *gameApplicationContext) profitLoss() (*ledgerQuery.GetProfitLossResponse, error) {
	sessionID, err := gc.currentSessionID()
	if err != nil {
		return nil, err
	}
	resp, err := gc.mediator.Send(context.Background(), &ledgerQuery.GetProfitLossQuery{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	report, ok := resp.(*ledgerQuery.GetProfitLossResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return report, nil
}

func (gc *gameApplicationContext) theProfitAndLossShouldShow(revenue, expenses float64) error {
	report, err := gc.profitLoss()
	if err != nil {
		return err
	}
	if math.Abs(report.TotalRevenue-revenue) > creditTolerance || math.Abs(report.TotalExpenses-expenses) > creditTolerance {
		return fmt.Errorf("expected revenue %.2f and expenses %.2f, got %.2f and %.2f",
			revenue, expenses, report.TotalRevenue, report.TotalExpenses)
	}
	if math.Abs(report.NetProfit-(revenue-expenses)) > creditTolerance {
		return fmt.Errorf("expected net profit %.2f, got %.2f", revenue-expenses, report.NetProfit)
	}
	return nil
}

func (gc *gameApplicationContext) theProfitAndLossShouldShowANetProfit() error {
	report, err := gc.profitLoss()
	if err != nil {
		return err
	}
	if report.NetProfit <= 0 {
		return fmt.Errorf("expected a net profit, got %.2f", report.NetProfit)
	}
	return nil
}

func (gc *gameApplicationContext) theCashFlowShouldShowOutflow(outflow float64) error {
	if gc.cashFlow == nil {
		return fmt.Errorf("no cash flow requested")
	}
	total := 0.0
	for _, group := range gc.cashFlow.Groups {
		total += group.TotalOutflow
	}
	if math.Abs(total-outflow) > creditTolerance {
		return fmt.Errorf("expected outflow %.2f, got %.2f", outflow, total)
	}
	return nil
}

func (gc *gameApplicationContext) theCashFlowShouldHaveGroups(count int) error {
	if gc.cashFlow == nil {
		return fmt.Errorf("no cash flow requested")
	}
	if got := len(gc.cashFlow.Groups); got != count {
		return fmt.Errorf("expected %d cash flow groups, got %d", count, got)
	}
	return nil
}

// InitializeGameApplicationScenario registers the mediator-level game and journal steps
func InitializeGameApplicationScenario(ctx *godog.ScenarioContext) {
	gc := &gameApplicationContext{}

	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		gc.reset()
		return c, nil
	})

	ctx.Step(`^the game application is running$`, gc.theGameApplicationIsRunning)
	ctx.Step(`^a new game is initialized for "([^"]*)" with (-?[\d.]+) credits and seed (\d+)$`, gc.aNewGameIsInitialized)
	ctx.Step(`^the game status is requested$`, gc.theGameStatusIsRequested)
	ctx.Step(`^the game mines "([^"]*)"$`, gc.theGameMines)
	ctx.Step(`^the game travels to body (-?\d+)$`, gc.theGameTravelsToBody)
	ctx.Step(`^the game sells all cargo$`, gc.theGameSellsAllCargo)
	ctx.Step(`^the game buys upgrade (-?\d+)$`, gc.theGameBuysUpgrade)
	ctx.Step(`^the game buys ship (-?\d+)$`, gc.theGameBuysShip)
	ctx.Step(`^the game ends the turn$`, gc.theGameEndsTheTurn)
	ctx.Step(`^the cash flow is requested by category$`, gc.theCashFlowIsRequestedByCategory)

	ctx.Step(`^the game response should succeed$`, gc.theGameResponseShouldSucceed)
	ctx.Step(`^the game response should fail with "([^"]*)"$`, gc.theGameResponseShouldFailWith)
	ctx.Step(`^the game response message should be "([^"]*)"$`, gc.theGameResponseMessageShouldBe)
	ctx.Step(`^the game response message should mention "([^"]*)"$`, gc.theGameResponseMessageShouldMention)
	ctx.Step(`^the current game should belong to "([^"]*)" with ([\d.]+) credits$`, gc.theCurrentGameShouldBelongTo)
	ctx.Step(`^the session should have changed$`, gc.theSessionShouldHaveChanged)

	ctx.Step(`^a "([^"]*)" event should have been published$`, gc.anEventShouldHaveBeenPublished)
	ctx.Step(`^only a "([^"]*)" event should have been published$`, gc.onlyAnEventShouldHaveBeenPublished)
	ctx.Step(`^no game events should have been published$`, gc.noGameEventsShouldHaveBeenPublished)

	ctx.Step(`^the journal should hold (\d+) transactions$`, gc.theJournalShouldHoldTransactions)
	ctx.Step(`^the latest journal entry should be a "([^"]*)" in "([^"]*)" of (-?[\d.]+) leaving ([\d.]+)$`, gc.theLatestJournalEntryShouldBe)
	ctx.Step(`^the latest journal entry should be a "([^"]*)" in "([^"]*)" with a positive amount$`, gc.theLatestJournalEntryShouldHavePositiveAmount)
	ctx.Step(`^the latest journal entry should be from turn (\d+)$`, gc.theLatestJournalEntryShouldBeFromTurn)
	ctx.Step(`^the profit and loss should show ([\d.]+) revenue and ([\d.]+) expenses$`, gc.theProfitAndLossShouldShow)
	ctx.Step(`^the profit and loss should show a net profit$`, gc.theProfitAndLossShouldShowANetProfit)
	ctx.Step(`^the cash flow should show ([\d.]+) outflow$`, gc.theCashFlowShouldShowOutflow)
	ctx.Step(`^the cash flow should have (\d+) groups$`, gc.theCashFlowShouldHaveGroups)
}
