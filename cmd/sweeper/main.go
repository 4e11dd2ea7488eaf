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
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-marketplace-mirror/internal/adapter"
	"github.com/feral-file/ff-marketplace-mirror/internal/config"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
	"github.com/feral-file/ff-marketplace-mirror/internal/providers/ethereum"
	"github.com/feral-file/ff-marketplace-mirror/internal/reconciler"
	"github.com/feral-file/ff-marketplace-mirror/internal/store"
	"github.com/feral-file/ff-marketplace-mirror/internal/sweeper"
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

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Connect to the EVM node
	ethClient, err := ethereum.Dial(ctx, adapter.NewEthClientDialer(), ethereum.DialConfig{
		RPCURL:         cfg.Ethereum.RPCURL,
		ChainID:        cfg.Ethereum.ChainID,
		MaxElapsedTime: cfg.Ethereum.DialTimeout,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum node", zap.Error(err))
	}
	chainClient := ethereum.NewClient(ethereum.Config{
		ChainID:            cfg.Ethereum.ChainID,
		RPCTimeout:         cfg.Ethereum.RPCTimeout,
		RequestsPerSecond:  cfg.Ethereum.RequestsPerSecond,
		TimestampCacheSize: cfg.Ethereum.TimestampCacheSize,
	}, ethClient)
	defer chainClient.Close()

	// Initialize reconciler
	rec, err := reconciler.NewReconciler(reconciler.Config{
		ChainID:            cfg.Ethereum.ChainID,
		MarketplaceAddress: cfg.Marketplace.Address,

		// A node outage must not clear every listing in one cycle
		KeepListingOnTransientError: true,
	}, chainClient, dataStore, reconciler.NewStoreIdentityResolver(dataStore))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create reconciler", zap.Error(err))
	}

	// Initialize listing sweeper
	listingSweeper := sweeper.NewListingSweeper(&sweeper.ListingSweeperConfig{
		Interval:       cfg.ListingSweeper.Interval,
		BatchSize:      cfg.ListingSweeper.BatchSize,
		WorkerPoolSize: cfg.ListingSweeper.Worker.WorkerPoolSize,
	}, dataStore, rec, adapter.NewClock())

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := listingSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Give the sweeper time to finish in-flight contract reads
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := listingSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}
	cancel()

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
