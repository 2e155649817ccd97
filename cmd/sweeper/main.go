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
	"github.com/objectledger/custodian/internal/config"
	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/emitter"
	"github.com/objectledger/custodian/internal/journal"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/ratelimit"
	"github.com/objectledger/custodian/internal/sweeper"
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
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
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
			"service": "transfer-sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting transfer sweeper")

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

	// The engine needs a balance reader for execution prechecks
	wallets := wallet.NewManager(wallet.Config{
		PackageID: cfg.Ledger.PackageID,
	}, query, mutate, nil, events)
	defer wallets.Close()

	transfers := transfer.NewEngine(transfer.Config{
		PackageID:   cfg.Ledger.PackageID,
		MinLeadTime: cfg.Ledger.MinLeadTime,
	}, query, mutate, ledgerClock, wallets, events)
	defer transfers.Close()

	s := sweeper.NewTransferSweeper(&sweeper.TransferSweeperConfig{
		PackageID: cfg.Ledger.PackageID,
		Caller:    domain.NormalizeAddress(domain.Address(cfg.Sweeper.Caller)),
		Interval:  cfg.Sweeper.Interval,
		BatchSize: cfg.Sweeper.BatchSize,
	}, query, transfers, clock)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", s.Name()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := s.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", s.Name()))
	}
	cancel()

	logger.Info("Transfer sweeper stopped")
}
