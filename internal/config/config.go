// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend identifiers
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	// APIToken protects every endpoint except the health check
	APIToken string

	// StorageBackend selects the persistence layer: "sqlite" (local file)
	// or "postgres" (server)
	StorageBackend string
	DataDir        string // sqlite database directory
	PostgresURL    string // lib/pq connection string

	// FetchTimeout bounds each external price API call
	FetchTimeout time.Duration

	// USDToINRFallback is used when the exchange rate feed is unreachable
	// and nothing is cached
	USDToINRFallback float64

	// AutoSnapshot enables the daily snapshot cron job
	AutoSnapshot bool
	SnapshotCron string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             8080,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DevMode:          getEnv("DEV_MODE", "") == "true",
		APIToken:         getEnv("API_TOKEN", "dev-token"),
		StorageBackend:   getEnv("STORAGE_BACKEND", StorageSQLite),
		DataDir:          getEnv("DATA_DIR", "./data"),
		FetchTimeout:     10 * time.Second,
		USDToINRFallback: 83.0,
		AutoSnapshot:     getEnv("AUTO_SNAPSHOT", "") == "true",
		SnapshotCron:     getEnv("SNAPSHOT_CRON", "0 18 * * *"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if timeoutStr := os.Getenv("FETCH_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT_SECONDS %q: %w", timeoutStr, err)
		}
		cfg.FetchTimeout = time.Duration(seconds) * time.Second
	}

	if rateStr := os.Getenv("USD_INR_FALLBACK"); rateStr != "" {
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid USD_INR_FALLBACK %q: %w", rateStr, err)
		}
		cfg.USDToINRFallback = rate
	}

	switch cfg.StorageBackend {
	case StorageSQLite:
		// nothing further required
	case StoragePostgres:
		cfg.PostgresURL = os.Getenv("DB_CONN_STR")
		if cfg.PostgresURL == "" {
			// Build it from individual vars (Docker friendly)
			cfg.PostgresURL = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				getEnv("DB_HOST", "localhost"),
				getEnv("DB_PORT", "5432"),
				getEnv("DB_USER", "postgres"),
				getEnv("DB_PASSWORD", "postgres"),
				getEnv("DB_NAME", "wealthpulse"),
			)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
