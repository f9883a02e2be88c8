package grpc

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	ledgerQueries "github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/logging"
)

// SessionIDSource resolves the active session for ledger requests
type SessionIDSource interface {
	CurrentSessionID() (string, bool)
}

// LogSource serves the daemon's recent log tail
type LogSource interface {
	Recent(limit int, level string) []logging.LogEntry
}

// LogsRequest is the GetLogs payload
type LogsRequest struct {
	Limit int    `json:"limit"`
	Level string `json:"level"`
}

// LogsResponse is the GetLogs result
type LogsResponse struct {
	Entries []logging.LogEntry `json:"entries"`
}

// DaemonServer serves the GameService over a unix socket.
// Every call is dispatched through the mediator with the daemon logger on
// the context.
type DaemonServer struct {
	mediator mediator.Mediator
	sessions SessionIDSource
	logger   common.GameLogger
	listener net.Listener

	grpcServer *grpc.Server
	health     *health.Server

	// Shutdown coordination
	shutdownChan chan os.Signal
	done         chan struct{}
	stopOnce     sync.Once
}

// NewDaemonServer creates a server listening on socketPath, replacing any
// stale socket file
func NewDaemonServer(
	m mediator.Mediator,
	sessions SessionIDSource,
	logger common.GameLogger,
	socketPath string,
) (*DaemonServer, error) {
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	server := NewDaemonServerWithListener(m, sessions, logger, listener)
	signal.Notify(server.shutdownChan, os.Interrupt, syscall.SIGTERM)
	return server, nil
}

// NewDaemonServerWithListener creates a server on an existing listener
// without installing signal handlers
func NewDaemonServerWithListener(
	m mediator.Mediator,
	sessions SessionIDSource,
	logger common.GameLogger,
	listener net.Listener,
) *DaemonServer {
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}

	s := &DaemonServer{
		mediator:     m,
		sessions:     sessions,
		logger:       logger,
		listener:     listener,
		grpcServer:   grpc.NewServer(),
		health:       health.NewServer(),
		shutdownChan: make(chan os.Signal, 1),
		done:         make(chan struct{}),
	}

	s.grpcServer.RegisterService(gameServiceDesc(), s)
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Start serves until a shutdown signal arrives or Stop is called
func (s *DaemonServer) Start() error {
	fmt.Printf("Daemon server listening on unix socket: %s\n", s.listener.Addr().String())

	go s.handleShutdown()

	errChan := make(chan error, 1)
	go func() {
		if err := s.grpcServer.Serve(s.listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-s.done:
		fmt.Println("Initiating graceful shutdown of gRPC server...")
		s.gracefulStop(30 * time.Second)
		return nil
	}
}

// Stop triggers the same shutdown path as SIGTERM
func (s *DaemonServer) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *DaemonServer) handleShutdown() {
	select {
	case <-s.shutdownChan:
		fmt.Println("\nShutdown signal received, stopping daemon...")
		s.Stop()
	case <-s.done:
	}
}

// gracefulStop drains in-flight calls, forcing the stop after timeout
func (s *DaemonServer) gracefulStop(timeout time.Duration) {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(timeout):
		s.grpcServer.Stop()
	}
}

// Dispatch implements GameServiceServer
func (s *DaemonServer) Dispatch(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	ctx = common.WithLogger(ctx, s.logger)

	if method == MethodGetLogs {
		return s.getLogs(in)
	}

	r, ok := routes[method]
	if !ok {
		return nil, status.Errorf(codes.Unimplemented, "unknown method %s", method)
	}

	request := r.newRequest()
	if err := decodePayload(in, request); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if r.sessionScoped && !s.scopeToSession(request) {
		outcome, _ := gameApp.Failed(shared.NewGameNotInitializedError())
		return encodePayload(outcome)
	}

	response, err := s.mediator.Send(ctx, request)
	if err != nil {
		s.logger.Log("ERROR", fmt.Sprintf("%s failed: %v", method, err), nil)
		return nil, toStatus(err)
	}

	out, err := encodePayload(response)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// scopeToSession fills an empty session id from the active session.
// It reports false when there is neither.
func (s *DaemonServer) scopeToSession(request mediator.Request) bool {
	var sessionID *string
	switch q := request.(type) {
	case *ledgerQueries.GetTransactionsQuery:
		sessionID = &q.SessionID
	case *ledgerQueries.GetProfitLossQuery:
		sessionID = &q.SessionID
	case *ledgerQueries.GetCashFlowQuery:
		sessionID = &q.SessionID
	default:
		return true
	}

	if *sessionID != "" {
		return true
	}
	if s.sessions == nil {
		return false
	}
	current, ok := s.sessions.CurrentSessionID()
	if !ok {
		return false
	}
	*sessionID = current
	return true
}

func (s *DaemonServer) getLogs(in *structpb.Struct) (*structpb.Struct, error) {
	source, ok := s.logger.(LogSource)
	if !ok {
		return nil, status.Error(codes.Unimplemented, "daemon logger does not keep recent entries")
	}

	var req LogsRequest
	if err := decodePayload(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return encodePayload(&LogsResponse{Entries: source.Recent(req.Limit, req.Level)})
}
