package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// NewLogsCommand creates the logs command
func NewLogsCommand() *cobra.Command {
	var (
		limit int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent daemon log entries",
		Long: `Show the most recent entries of the daemon's log, oldest first.

Examples:
  spacemining logs
  spacemining logs --level ERROR --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client DaemonClient) error {
				response, err := client.Logs(ctx, limit, strings.ToUpper(level))
				if err != nil {
					return fmt.Errorf("failed to fetch logs: %w", err)
				}

				out := cmd.OutOrStdout()
				if outputJSON {
					return printJSON(out, response)
				}

				if len(response.Entries) == 0 {
					fmt.Fprintln(out, "No log entries")
					return nil
				}

				for _, entry := range response.Entries {
					fmt.Fprintf(out, "%s [%s] %s%s\n",
						entry.Timestamp.Format("2006-01-02 15:04:05"),
						entry.Level,
						entry.Message,
						formatMetadata(entry.Metadata),
					)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries")
	cmd.Flags().StringVar(&level, "level", "", "Only show entries of this level")

	return cmd
}

func formatMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	return b.String()
}
