// Package sqlite provides a single-file storage backend suitable for
// running the tracker locally without a database server.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the SQLite database at path and
// applies the schema. Use ":memory:" for an ephemeral database.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; more connections just contend
	db.SetMaxOpenConns(1)

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
			id              TEXT PRIMARY KEY,
			asset_type      TEXT NOT NULL,
			label           TEXT NOT NULL,
			expected_return TEXT NOT NULL DEFAULT '0',
			notes           TEXT NOT NULL DEFAULT '',
			details         TEXT NOT NULL,
			created_at      TIMESTAMP NOT NULL,
			updated_at      TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assets_type ON assets (asset_type)`,
		`CREATE TABLE IF NOT EXISTS net_worth_snapshots (
			id                TEXT PRIMARY KEY,
			snapshot_date     TEXT NOT NULL UNIQUE,
			total             TEXT NOT NULL,
			total_assets      TEXT NOT NULL,
			total_liabilities TEXT NOT NULL,
			breakdown         TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS price_cache (
			provider   TEXT NOT NULL,
			cache_key  TEXT NOT NULL,
			price      TEXT NOT NULL,
			fetched_at TIMESTAMP NOT NULL,
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
