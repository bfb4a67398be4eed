package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection and applies the schema.
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=wealthpulse sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

func migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id              UUID PRIMARY KEY,
			asset_type      TEXT NOT NULL,
			label           TEXT NOT NULL,
			expected_return DECIMAL NOT NULL DEFAULT 0,
			notes           TEXT NOT NULL DEFAULT '',
			details         JSONB NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assets_type ON assets (asset_type)`,
		`CREATE TABLE IF NOT EXISTS net_worth_snapshots (
			id                UUID PRIMARY KEY,
			snapshot_date     DATE NOT NULL UNIQUE,
			total             DECIMAL NOT NULL,
			total_assets      DECIMAL NOT NULL,
			total_liabilities DECIMAL NOT NULL,
			breakdown         JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS price_cache (
			provider   TEXT NOT NULL,
			cache_key  TEXT NOT NULL,
			price      DECIMAL NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (provider, cache_key)
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
