package game

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/domain/shipyard"
	"github.com/andrescamacho/spacemining-go/internal/domain/system"
)

// SessionProvider resolves the active session for handlers
type SessionProvider interface {
	Current() (*game.Session, error)
}

// SessionManager owns the single active game session. InitGame replaces it;
// every other operation resolves it through Current.
type SessionManager struct {
	mu      sync.RWMutex
	current *game.Session

	generator   *system.Generator
	catalog     *shipyard.Catalog
	clock       shared.Clock
	defaults    game.Settings
	defaultSeed uint64
}

// NewSessionManager creates a manager with no active session
func NewSessionManager(
	generator *system.Generator,
	catalog *shipyard.Catalog,
	clock shared.Clock,
	defaults game.Settings,
	defaultSeed uint64,
) *SessionManager {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if defaults.PlayerName == "" {
		defaults.PlayerName = game.DefaultPlayerName
	}

	return &SessionManager{
		generator:   generator,
		catalog:     catalog,
		clock:       clock,
		defaults:    defaults,
		defaultSeed: defaultSeed,
	}
}

// InitOptions overrides the configured defaults for one new game
type InitOptions struct {
	PlayerName      string
	StartingCredits *float64
	Seed            *uint64
}

// InitGame generates a fresh world and replaces the current session
func (m *SessionManager) InitGame(opts InitOptions) (*game.Session, error) {
	settings := m.defaults
	if opts.PlayerName != "" {
		settings.PlayerName = opts.PlayerName
	}
	if opts.StartingCredits != nil {
		settings.StartingCredits = *opts.StartingCredits
	}
	if settings.StartingCredits < 0 {
		return nil, shared.NewDomainError("Starting credits cannot be negative")
	}

	seed := m.defaultSeed
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := shared.NewSeededRandom(seed)

	world, err := m.generator.Generate(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate world: %w", err)
	}

	session, err := game.NewSession(settings, world, m.catalog, rng, m.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	return session, nil
}

// Current returns the active session or a GameNotInitializedError
func (m *SessionManager) Current() (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, shared.NewGameNotInitializedError()
	}
	return m.current, nil
}

// CurrentSessionID returns the id of the active session, if any
func (m *SessionManager) CurrentSessionID() (string, bool) {
	session, err := m.Current()
	if err != nil {
		return "", false
	}
	return session.ID().String(), true
}

// Catalog returns the shop catalog shared by every session
func (m *SessionManager) Catalog() *shipyard.Catalog {
	return m.catalog
}
