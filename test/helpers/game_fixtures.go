package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/application/setup"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/content"
)

// FixtureSeed is the seed used by game fixtures unless a test picks its own
const FixtureSeed uint64 = 42

// GameFixture bundles a fully wired application stack for adapter and BDD tests
type GameFixture struct {
	Mediator        mediator.Mediator
	Sessions        *gameApp.SessionManager
	Publisher       *common.RecordingPublisher
	TransactionRepo ledger.TransactionRepository
	Clock           *shared.MockClock
}

// NewSessionManager builds a session manager over the embedded content tables
func NewSessionManager(t testing.TB, clock shared.Clock) *gameApp.SessionManager {
	t.Helper()
	tables, err := content.Default()
	require.NoError(t, err)

	return gameApp.NewSessionManager(tables.Generator, tables.Catalog, clock, game.Settings{
		PlayerName:      game.DefaultPlayerName,
		StartingCredits: game.DefaultStartingCredits,
	}, FixtureSeed)
}

// NewGameFixture wires the mediator with the ledger stored in a fresh
// in-memory database
func NewGameFixture(t *testing.T) *GameFixture {
	t.Helper()
	return NewGameFixtureWithRepo(t, persistence.NewGormTransactionRepository(NewTestDB(t)))
}

// NewGameFixtureWithRepo wires the mediator around repo; nil disables the ledger
func NewGameFixtureWithRepo(t testing.TB, repo ledger.TransactionRepository) *GameFixture {
	t.Helper()
	clock := shared.NewMockClock(FixtureTime)
	sessions := NewSessionManager(t, clock)
	publisher := &common.RecordingPublisher{}

	registry := setup.NewHandlerRegistry(sessions, repo, publisher, clock)
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	return &GameFixture{
		Mediator:        m,
		Sessions:        sessions,
		Publisher:       publisher,
		TransactionRepo: repo,
		Clock:           clock,
	}
}

// StartSession initializes a game with credits and the fixture seed
func (f *GameFixture) StartSession(t testing.TB, credits float64) *game.Session {
	t.Helper()
	seed := FixtureSeed
	session, err := f.Sessions.InitGame(gameApp.InitOptions{StartingCredits: &credits, Seed: &seed})
	require.NoError(t, err)
	return session
}
