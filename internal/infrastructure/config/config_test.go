package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_DefaultsWhenFileIsEmpty(t *testing.T) {
	path := writeConfigFile(t, "")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "spacemining.db", cfg.Database.Path)
	assert.Equal(t, "Commander", cfg.Game.PlayerName)
	assert.Equal(t, 1000.0, cfg.Game.StartingCredits)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Daemon.RequestTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
game:
  player_name: Ripley
  starting_credits: 5000
  seed: 42
server:
  address: "127.0.0.1:9000"
logging:
  level: debug
  format: json
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "Ripley", cfg.Game.PlayerName)
	assert.Equal(t, 5000.0, cfg.Game.StartingCredits)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "game:\n  player_name: Ripley\n")
	t.Setenv("SME_GAME_PLAYER_NAME", "Dallas")
	t.Setenv("SME_GAME_STARTING_CREDITS", "250")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "Dallas", cfg.Game.PlayerName)
	assert.Equal(t, 250.0, cfg.Game.StartingCredits)
}

func TestLoadConfig_NestedEnvironmentKeys(t *testing.T) {
	path := writeConfigFile(t, "")
	t.Setenv("SME_DATABASE_POOL_MAX_OPEN", "25")
	t.Setenv("SME_SERVER_RATE_LIMIT_BURST", "40")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Database.Pool.MaxOpen)
	assert.Equal(t, 40, cfg.Server.RateLimit.Burst)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown log level", "logging:\n  level: verbose\n"},
		{"unknown database type", "database:\n  type: mysql\n"},
		{"negative credits", "game:\n  starting_credits: -10\n"},
		{"file output without path", "logging:\n  output: file\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			_, err := config.LoadConfig(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestSetDefaults_PostgresFields(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Type: "postgres"}}

	config.SetDefaults(cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Empty(t, cfg.Database.Path)
	require.NoError(t, config.ValidateConfig(cfg))
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	handler, err := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "prefs", "prefs.yaml"))
	require.NoError(t, err)

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.PlayerName)

	require.NoError(t, handler.SetPlayerName("Ripley"))
	require.NoError(t, handler.SetSocketPath("/tmp/game.sock"))

	loaded, err := handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "Ripley", loaded.PlayerName)
	assert.Equal(t, "/tmp/game.sock", loaded.SocketPath)

	require.NoError(t, handler.Clear())
	cleared, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, cleared.SocketPath)
}
