package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
)

const defaultSocketPath = "/tmp/spacemining-daemon.sock"

var (
	// Global flags
	socketPath     string
	userConfigPath string
	requestTimeout time.Duration
	outputJSON     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spacemining",
		Short: "Space Mining Empire CLI - Play against the game daemon",
		Long: `Space Mining Empire CLI drives a game hosted by the spacemining daemon.
The CLI communicates with the daemon via Unix socket.

Examples:
  spacemining game new --credits 1000
  spacemining game status
  spacemining mine Iron
  spacemining game destinations
  spacemining travel 1
  spacemining trade sell-all
  spacemining shop buy-upgrade 0
  spacemining ledger report`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// An explicit --socket wins over the saved preference
			if cmd.Flags().Changed("socket") {
				return nil
			}
			prefs, err := loadUserConfig()
			if err != nil {
				return nil
			}
			if prefs.SocketPath != "" {
				socketPath = prefs.SocketPath
			}
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", getDefaultSocketPath(),
		"Path to daemon Unix socket")
	rootCmd.PersistentFlags().StringVar(&userConfigPath, "config", "",
		"Path to CLI preferences file (default ~/.spacemining/prefs.yaml)")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 10*time.Second,
		"Deadline for each daemon request")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false,
		"Print raw JSON responses")

	// Add command groups
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewMineCommand())
	rootCmd.AddCommand(NewTravelCommand())
	rootCmd.AddCommand(NewTradeCommand())
	rootCmd.AddCommand(NewShopCommand())
	rootCmd.AddCommand(NewFleetCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewHealthCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// getDefaultSocketPath returns the default socket path
func getDefaultSocketPath() string {
	if path := os.Getenv("SPACEMINING_SOCKET"); path != "" {
		return path
	}
	return defaultSocketPath
}

// userConfigHandler opens the preferences file selected by --config
func userConfigHandler() (*config.UserConfigHandler, error) {
	if userConfigPath != "" {
		return config.NewUserConfigHandlerAt(userConfigPath)
	}
	return config.NewUserConfigHandler()
}

func loadUserConfig() (*config.UserConfig, error) {
	handler, err := userConfigHandler()
	if err != nil {
		return nil, err
	}
	return handler.Load()
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ExecuteArgs runs the CLI with args, writing to out. Used by tests and
// scripted drivers.
func ExecuteArgs(args []string, out io.Writer) error {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}
