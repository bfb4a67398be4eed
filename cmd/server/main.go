package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/truwealthily/wealthpulse-backend/internal/adapter/httpapi"
	"github.com/truwealthily/wealthpulse-backend/internal/adapter/repository/postgres"
	"github.com/truwealthily/wealthpulse-backend/internal/adapter/repository/sqlite"
	"github.com/truwealthily/wealthpulse-backend/internal/clients/exchangerate"
	"github.com/truwealthily/wealthpulse-backend/internal/clients/metals"
	"github.com/truwealthily/wealthpulse-backend/internal/clients/mfapi"
	"github.com/truwealthily/wealthpulse-backend/internal/config"
	"github.com/truwealthily/wealthpulse-backend/internal/domain"
	"github.com/truwealthily/wealthpulse-backend/internal/scheduler"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/asset"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/forecast"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/networth"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/refresh"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/valuation"
	"github.com/truwealthily/wealthpulse-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	// Storage
	assetRepo, snapshotRepo, cacheRepo, closeStorage, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	// Price feed clients share the last-known-good cache
	fx := exchangerate.NewClient(cacheRepo, cfg.USDToINRFallback, cfg.FetchTimeout, log)
	metalsClient := metals.NewClient(cacheRepo, fx, cfg.FetchTimeout, log)
	fundsClient := mfapi.NewClient(cacheRepo, cfg.FetchTimeout, log)

	// Use cases
	resolver := valuation.NewResolver(fundsClient, metalsClient, log)
	assetService := asset.NewService(assetRepo, log)
	netWorthService := networth.NewService(assetRepo, snapshotRepo, resolver, log)
	forecastService := forecast.NewService(assetRepo, resolver, log)
	refreshService := refresh.NewService(assetRepo, fundsClient, metalsClient, log)

	// Background jobs
	sched := scheduler.New(log)
	if cfg.AutoSnapshot {
		if err := sched.AddJob(cfg.SnapshotCron, scheduler.NewSnapshotJob(netWorthService)); err != nil {
			return fmt.Errorf("failed to register snapshot job: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	server := httpapi.New(httpapi.Config{
		Port:     cfg.Port,
		APIToken: cfg.APIToken,
		DevMode:  cfg.DevMode,
		Log:      log,
		Assets:   assetService,
		NetWorth: netWorthService,
		Forecast: forecastService,
		Refresh:  refreshService,
		Funds:    fundsClient,
		Metals:   metalsClient,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	return waitForShutdown(server, errCh, log)
}

// openStorage wires the repositories for the configured backend
func openStorage(cfg *config.Config) (domain.AssetRepository, domain.SnapshotRepository, domain.PriceCacheRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := postgres.NewDB(cfg.PostgresURL)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewAssetRepository(db),
			postgres.NewSnapshotRepository(db),
			postgres.NewPriceCacheRepository(db),
			func() { db.Close() },
			nil

	case config.StorageSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := sqlite.NewDB(filepath.Join(cfg.DataDir, "wealthpulse.db"))
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return sqlite.NewAssetRepository(db),
			sqlite.NewSnapshotRepository(db),
			sqlite.NewPriceCacheRepository(db),
			func() { db.Close() },
			nil

	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// waitForShutdown blocks until SIGTERM/SIGINT or a server error, then
// gracefully shuts down the HTTP server
func waitForShutdown(server *httpapi.Server, errCh <-chan error, log zerolog.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
