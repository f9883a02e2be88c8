package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/adapters/api"
	"github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	"github.com/andrescamacho/spacemining-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacemining-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacemining-go/internal/application/common"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	"github.com/andrescamacho/spacemining-go/internal/application/mediator"
	"github.com/andrescamacho/spacemining-go/internal/application/setup"
	"github.com/andrescamacho/spacemining-go/internal/domain/game"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/content"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/database"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/logging"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search ./config.yaml, ./configs, /etc/spacemining)")
	flag.Parse()

	fmt.Println("Space Mining Empire Daemon v0.1.0")
	fmt.Println("=================================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Logging
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// 2. Database (ledger storage)
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	transactionRepo := persistence.NewGormTransactionRepository(db)

	// 3. Content tables and the session manager
	tables, err := content.Load(cfg.Game)
	if err != nil {
		return fmt.Errorf("failed to load game content: %w", err)
	}
	sessions := gameApp.NewSessionManager(
		tables.Generator,
		tables.Catalog,
		shared.NewRealClock(),
		game.Settings{PlayerName: cfg.Game.PlayerName, StartingCredits: cfg.Game.StartingCredits},
		cfg.Game.Seed,
	)
	fmt.Println("Game content loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Metrics
	middlewares := []mediator.Middleware{common.LoggingMiddleware}
	var metricsServer *metrics.Server
	var financialCollector *metrics.FinancialMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		commandCollector := metrics.NewCommandMetricsCollector()
		economyCollector := metrics.NewEconomyMetricsCollector()
		apiCollector := metrics.NewAPIMetricsCollector()
		for _, c := range []interface{ Register() error }{commandCollector, economyCollector, apiCollector} {
			if err := c.Register(); err != nil {
				return fmt.Errorf("failed to register metrics: %w", err)
			}
		}
		metrics.SetGlobalEconomyCollector(economyCollector)
		metrics.SetGlobalAPICollector(apiCollector)
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandCollector))

		metricsServer, err = metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		metricsServer.Start()
	}

	// 5. Event stream hub
	hub := api.NewHub(cfg.Server.AllowedOrigins, logger)
	go hub.Run(ctx)

	// 6. Mediator
	registry := setup.NewHandlerRegistry(sessions, transactionRepo, hub, nil, middlewares...)
	med, err := registry.CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}
	fmt.Println("Handlers registered")

	if cfg.Metrics.Enabled {
		financialCollector = metrics.NewFinancialMetricsCollector(med, sessions.CurrentSessionID)
		if err := financialCollector.Register(); err != nil {
			return fmt.Errorf("failed to register financial metrics: %w", err)
		}
		metrics.SetGlobalFinancialCollector(financialCollector)
		financialCollector.Start(ctx, 30*time.Second)
	}

	// 7. HTTP API
	apiServer := api.NewServer(cfg.Server, med, sessions, hub, logger)
	apiServer.Start()

	// 8. Daemon socket
	socketPath := cfg.Daemon.SocketPath
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}
	daemonServer, err := grpc.NewDaemonServer(med, sessions, logger, socketPath)
	if err != nil {
		return fmt.Errorf("failed to create daemon server: %w", err)
	}

	logger.Log("INFO", "Daemon started", map[string]interface{}{
		"socket":   socketPath,
		"http":     apiServer.Addr(),
		"metrics":  cfg.Metrics.Enabled,
		"database": cfg.Database.Type,
	})
	fmt.Println("\n✓ Daemon is ready to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	// Blocks until SIGINT/SIGTERM
	serveErr := daemonServer.Start()

	// Graceful shutdown of everything else
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Log("WARNING", "HTTP API shutdown error", map[string]interface{}{"error": err.Error()})
	}
	if financialCollector != nil {
		financialCollector.Stop()
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Log("WARNING", "Metrics server shutdown error", map[string]interface{}{"error": err.Error()})
		}
	}
	cancel()

	if serveErr != nil {
		return fmt.Errorf("daemon server error: %w", serveErr)
	}
	fmt.Println("\nDaemon stopped")
	return nil
}
