package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/api/middleware"
	"github.com/objectledger/custodian/internal/api/rest"
	"github.com/objectledger/custodian/internal/api/server"
	"github.com/objectledger/custodian/internal/config"
	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/emitter"
	"github.com/objectledger/custodian/internal/journal"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/marketplace"
	"github.com/objectledger/custodian/internal/poller"
	"github.com/objectledger/custodian/internal/purchase"
	"github.com/objectledger/custodian/internal/ratelimit"
	"github.com/objectledger/custodian/internal/registry"
	"github.com/objectledger/custodian/internal/transfer"
	"github.com/objectledger/custodian/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting custodian API")

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	httpClient := ratelimit.WrapHTTPClient(adapter.NewHTTPClient(30*time.Second), ratelimit.Config{
		RequestsPerSecond: cfg.Ledger.RPCRateLimit,
		Burst:             cfg.Ledger.RPCBurst,
	})
	clock := adapter.NewClock()

	// Open the submission journal
	var journalStore journal.Store
	if cfg.Database.Host != "" {
		journalStore, err = journal.NewPGStore(cfg.Database.DSN())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to open submission journal", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to submission journal",
			zap.String("host", cfg.Database.Host), zap.String("dbname", cfg.Database.DBName))
	} else {
		logger.WarnCtx(ctx, "Database not configured, submissions will not be journaled")
	}

	// Connect the custody event publisher
	var events emitter.Publisher = emitter.NoopPublisher{}
	if cfg.NATS.URL != "" {
		events, err = emitter.NewPublisher(emitter.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		defer events.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS not configured, custody events will not be published")
	}

	// Build ledger clients
	query := ledger.NewQueryClient(cfg.Ledger.RPCURL, httpClient, jsonAdapter)
	mutate := ledger.NewMutationClient(cfg.Ledger.RPCURL, httpClient, jsonAdapter, journalStore)
	ledgerClock := ledger.NewClock(query, ledger.ClockConfig{
		TTL:         cfg.Ledger.ClockTTL,
		StaleWindow: cfg.Ledger.ClockStaleWindow,
	}, clock)

	// Load token registry
	var tokens registry.TokenResolver
	if cfg.TokensPath != "" {
		tokens, err = registry.LoadTokenTable(cfg.TokensPath, query)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load token table",
				zap.Error(err), zap.String("path", cfg.TokensPath))
		}
		logger.InfoCtx(ctx, "Loaded token table", zap.String("path", cfg.TokensPath))
	} else {
		tokens = registry.NewTokenResolver(query)
		logger.WarnCtx(ctx, "Token table path not configured, relying on ledger coin metadata")
	}

	// Build domain services
	marketplaceID := domain.ObjectID(cfg.Ledger.MarketplaceID)
	market := marketplace.NewService(query, mutate, cfg.Ledger.PackageID, marketplaceID)

	wallets := wallet.NewManager(wallet.Config{
		PackageID:      cfg.Ledger.PackageID,
		BalanceWorkers: cfg.Worker.PoolSize,
	}, query, mutate, market, events)
	defer wallets.Close()

	transfers := transfer.NewEngine(transfer.Config{
		PackageID:   cfg.Ledger.PackageID,
		MinLeadTime: cfg.Ledger.MinLeadTime,
		ListWorkers: cfg.Worker.PoolSize,
	}, query, mutate, ledgerClock, wallets, events)
	defer transfers.Close()

	purchases := purchase.NewOrchestrator(purchase.Config{
		PackageID:        cfg.Ledger.PackageID,
		MarketplaceID:    marketplaceID,
		ConfirmationMode: cfg.Purchase.ConfirmationMode,
		Poll: poller.Config{
			Attempts: cfg.Poller.Attempts,
			Delay:    cfg.Poller.Delay,
		},
	}, query, mutate, clock, events)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	handler := rest.NewHandler(wallets, transfers, purchases, market, tokens, journalStore)
	srv := server.New(serverConfig, handler)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
