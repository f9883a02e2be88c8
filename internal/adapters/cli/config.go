package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Space Mining configuration settings.

Daemon configuration is loaded from multiple sources with priority:
1. Environment variables (SME_* prefix)
2. Config file (config.yaml)
3. Default values

CLI preferences (player name, daemon socket) are stored in
~/.spacemining/prefs.yaml, or the file given with --config.

Examples:
  spacemining config show
  spacemining config set-player Ada
  spacemining config set-socket /run/spacemining.sock
  spacemining config clear`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlayerCommand())
	cmd.AddCommand(newConfigSetSocketCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the daemon configuration as this machine would resolve it,
followed by the CLI preferences.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			handler, err := userConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			prefs, err := handler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				prefs = &config.UserConfig{}
			}

			printConfig(out, cfg, prefs, handler.GetConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "daemon-config", "", "Daemon config file to resolve")

	return cmd
}

func printConfig(out io.Writer, cfg *config.Config, prefs *config.UserConfig, prefsPath string) {
	fmt.Fprintln(out, "Space Mining Configuration")
	fmt.Fprintln(out, "==========================")

	fmt.Fprintln(out, "CLI Preferences:")
	fmt.Fprintf(out, "  Config file:      %s\n", prefsPath)
	fmt.Fprintf(out, "  Player name:      %s\n", valueOrUnset(prefs.PlayerName))
	fmt.Fprintf(out, "  Socket path:      %s\n", valueOrUnset(prefs.SocketPath))

	fmt.Fprintln(out, "\nGame:")
	fmt.Fprintf(out, "  Player name:      %s\n", cfg.Game.PlayerName)
	fmt.Fprintf(out, "  Starting credits: %s\n", formatCredits(cfg.Game.StartingCredits))
	if cfg.Game.Seed != 0 {
		fmt.Fprintf(out, "  Seed:             %d\n", cfg.Game.Seed)
	} else {
		fmt.Fprintln(out, "  Seed:             (random)")
	}
	fmt.Fprintf(out, "  World file:       %s\n", valueOrDefault(cfg.Game.WorldFile, "(built-in)"))
	fmt.Fprintf(out, "  Catalog file:     %s\n", valueOrDefault(cfg.Game.CatalogFile, "(built-in)"))

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
	}
	fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

	fmt.Fprintln(out, "\nHTTP API:")
	fmt.Fprintf(out, "  Address:          %s\n", cfg.Server.Address)
	fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n", cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)
	fmt.Fprintf(out, "  Allowed origins:  %v\n", cfg.Server.AllowedOrigins)

	fmt.Fprintln(out, "\nDaemon:")
	fmt.Fprintf(out, "  Socket Path:      %s\n", cfg.Daemon.SocketPath)
	fmt.Fprintf(out, "  Request Timeout:  %s\n", cfg.Daemon.RequestTimeout)
	fmt.Fprintf(out, "  Shutdown Timeout: %s\n", cfg.Daemon.ShutdownTimeout)

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %s\n", yesNo(cfg.Metrics.Enabled))
	if cfg.Metrics.Enabled {
		fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	}

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
}

func newConfigSetPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-player <name>",
		Short: "Set the default player name",
		Long:  `Set the player name "game new" uses when --player is not given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := userConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetPlayerName(args[0]); err != nil {
				return fmt.Errorf("failed to set default player: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default player set to %s\n", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "  Config saved to: %s\n", handler.GetConfigPath())
			return nil
		},
	}
}

func newConfigSetSocketCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-socket <path>",
		Short: "Set the default daemon socket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := userConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetSocketPath(args[0]); err != nil {
				return fmt.Errorf("failed to set socket path: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Daemon socket set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear CLI preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := userConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.Clear(); err != nil {
				return fmt.Errorf("failed to clear preferences: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferences cleared")
			return nil
		},
	}
}

// maskPassword replaces the password of a connection URL with "xxxxx"
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}

func valueOrUnset(v string) string {
	return valueOrDefault(v, "(not set)")
}

func valueOrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
