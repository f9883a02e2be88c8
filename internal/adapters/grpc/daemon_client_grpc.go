package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"
)

// DaemonClientGRPC calls the daemon's GameService
type DaemonClientGRPC struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

// NewDaemonClientGRPC connects to the daemon.
// socketPath should be a Unix domain socket path (e.g., "/tmp/spacemining-daemon.sock")
func NewDaemonClientGRPC(socketPath string) (*DaemonClientGRPC, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}

	return NewDaemonClientFromConn(conn), nil
}

// NewDaemonClientFromConn wraps an existing connection
func NewDaemonClientFromConn(conn *grpc.ClientConn) *DaemonClientGRPC {
	return &DaemonClientGRPC{
		conn:   conn,
		health: healthpb.NewHealthClient(conn),
	}
}

// Close closes the gRPC connection
func (c *DaemonClientGRPC) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Call invokes method with request encoded by its json tags and decodes the
// reply into response. A nil request sends an empty payload.
func (c *DaemonClientGRPC) Call(ctx context.Context, method string, request, response interface{}) error {
	in := &structpb.Struct{}
	if request != nil {
		encoded, err := encodePayload(request)
		if err != nil {
			return err
		}
		in = encoded
	}

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, fullMethod(method), in, out); err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	if response == nil {
		return nil
	}
	return decodePayload(out, response)
}

// Logs fetches the daemon's recent log entries
func (c *DaemonClientGRPC) Logs(ctx context.Context, limit int, level string) (*LogsResponse, error) {
	var resp LogsResponse
	if err := c.Call(ctx, MethodGetLogs, &LogsRequest{Limit: limit, Level: level}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HealthCheck returns the daemon's serving status
func (c *DaemonClientGRPC) HealthCheck(ctx context.Context) (string, error) {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return "", fmt.Errorf("health check failed: %w", err)
	}
	return resp.GetStatus().String(), nil
}
