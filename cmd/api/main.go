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
	"github.com/feral-file/ff-marketplace-mirror/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-mirror/internal/api/rest"
	"github.com/feral-file/ff-marketplace-mirror/internal/api/server"
	"github.com/feral-file/ff-marketplace-mirror/internal/config"
	"github.com/feral-file/ff-marketplace-mirror/internal/logger"
	"github.com/feral-file/ff-marketplace-mirror/internal/providers/ethereum"
	"github.com/feral-file/ff-marketplace-mirror/internal/reconciler"
	"github.com/feral-file/ff-marketplace-mirror/internal/store"
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
			"service": "marketplace-mirror-api",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Marketplace Mirror API",
		zap.String("chain_id", string(cfg.Ethereum.ChainID)),
		zap.String("marketplace", cfg.Marketplace.Address),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

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
	logger.InfoCtx(ctx, "Connected to Ethereum node", zap.String("chain_id", string(cfg.Ethereum.ChainID)))

	// Initialize reconciler
	identities := reconciler.NewStoreIdentityResolver(dataStore)
	rec, err := reconciler.NewReconciler(reconciler.Config{
		ChainID:            cfg.Ethereum.ChainID,
		MarketplaceAddress: cfg.Marketplace.Address,
	}, chainClient, dataStore, identities)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create reconciler", zap.Error(err))
	}

	// Initialize authentication
	authenticator, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		Issuer:       cfg.Auth.Issuer,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize authenticator", zap.Error(err))
	}

	// Create server
	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, rest.NewHandler(rec, dataStore), authenticator, identities)

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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
