package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfig holds CLI preferences kept in ~/.spacemining/prefs.yaml.
// Command-line flags always win over these values.
type UserConfig struct {
	PlayerName string `yaml:"player_name,omitempty"`
	SocketPath string `yaml:"socket_path,omitempty"`
}

// UserConfigHandler reads and rewrites one preferences file
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler opens the preferences file in the user's home directory
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".spacemining", "prefs.yaml"))
}

// NewUserConfigHandlerAt opens the preferences file at configPath, creating its directory
func NewUserConfigHandlerAt(configPath string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}
	return &UserConfigHandler{configPath: configPath}, nil
}

// Load returns the stored preferences; a missing file yields empty ones
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	prefs := &UserConfig{}
	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", h.configPath, err)
	}
	return prefs, nil
}

// Save replaces the preferences file
func (h *UserConfigHandler) Save(prefs *UserConfig) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

func (h *UserConfigHandler) update(apply func(*UserConfig)) error {
	prefs, err := h.Load()
	if err != nil {
		return err
	}
	apply(prefs)
	return h.Save(prefs)
}

// SetPlayerName stores the name "game new" uses without --player
func (h *UserConfigHandler) SetPlayerName(name string) error {
	return h.update(func(p *UserConfig) { p.PlayerName = name })
}

// SetSocketPath stores the daemon socket used without --socket
func (h *UserConfigHandler) SetSocketPath(path string) error {
	return h.update(func(p *UserConfig) { p.SocketPath = path })
}

// Clear forgets every preference
func (h *UserConfigHandler) Clear() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the preferences file location
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
