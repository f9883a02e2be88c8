package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
)

// DaemonClient is the subset of the gRPC client the commands use
type DaemonClient interface {
	Call(ctx context.Context, method string, request, response interface{}) error
	Logs(ctx context.Context, limit int, level string) (*daemon.LogsResponse, error)
	HealthCheck(ctx context.Context) (string, error)
	Close() error
}

// NewDaemonClient connects to the daemon socket
var NewDaemonClient = func(socketPath string) (DaemonClient, error) {
	return daemon.NewDaemonClientGRPC(socketPath)
}

// outcomer is implemented by every game response
type outcomer interface {
	IsSuccess() bool
	OutcomeMessage() string
}

// RejectedError is returned when the daemon applied nothing because a game
// rule refused the action. The message is the rule's explanation.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "✗ " + e.Message
}

// withClient dials the daemon, runs fn under the request deadline and
// closes the connection
func withClient(fn func(ctx context.Context, client DaemonClient) error) error {
	client, err := NewDaemonClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return fn(ctx, client)
}

// call sends one request and prints the raw JSON when --json is set.
// A response whose outcome is unsuccessful becomes a RejectedError.
func call(cmd *cobra.Command, method string, request, response interface{}) error {
	err := withClient(func(ctx context.Context, client DaemonClient) error {
		return client.Call(ctx, method, request, response)
	})
	if err != nil {
		return err
	}

	if outputJSON {
		if err := printJSON(cmd.OutOrStdout(), response); err != nil {
			return err
		}
	}

	if o, ok := response.(outcomer); ok && !o.IsSuccess() {
		return &RejectedError{Message: o.OutcomeMessage()}
	}
	return nil
}
