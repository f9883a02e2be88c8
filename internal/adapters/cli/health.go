package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewHealthCommand pings the daemon over its socket
func NewHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the daemon is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				status  string
				elapsed time.Duration
			)
			err := withClient(func(ctx context.Context, client DaemonClient) (err error) {
				start := time.Now()
				status, err = client.HealthCheck(ctx)
				elapsed = time.Since(start)
				return err
			})
			if err != nil {
				return fmt.Errorf("daemon at %s is not answering: %w", socketPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Daemon is healthy (%s, %s via %s)\n",
				status, elapsed.Round(time.Microsecond), socketPath)
			return nil
		},
	}
}
