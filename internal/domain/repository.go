package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// GetByID retrieves an asset by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error

	// Update replaces an existing asset's mutable fields
	Update(ctx context.Context, asset *Asset) error

	// Delete removes an asset
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves assets, optionally filtered by type.
	// If typeFilter is empty, returns all assets.
	List(ctx context.Context, typeFilter AssetType) ([]*Asset, error)
}

// SnapshotRepository defines the interface for net worth snapshot
// persistence operations
type SnapshotRepository interface {
	// Save stores a snapshot. A snapshot already stored for the same
	// calendar day is overwritten.
	Save(ctx context.Context, snapshot *NetWorthSnapshot) error

	// List retrieves all snapshots ordered by date ascending
	List(ctx context.Context) ([]*NetWorthSnapshot, error)

	// DeleteByDate removes the snapshot for a calendar day
	DeleteByDate(ctx context.Context, date time.Time) error

	// Purge removes all snapshots
	Purge(ctx context.Context) error
}

// CachedPrice is the last successfully fetched price for an identifier,
// kept so fetch failures can degrade to stale data
type CachedPrice struct {
	Provider  string
	Key       string
	Price     decimal.Decimal
	FetchedAt time.Time
}

// PriceCacheRepository defines the interface for last-known-good price
// persistence operations
type PriceCacheRepository interface {
	// Get retrieves the cached price for a provider/key pair.
	// Returns nil (no error) when nothing is cached.
	Get(ctx context.Context, provider, key string) (*CachedPrice, error)

	// Put stores or replaces the cached price for a provider/key pair
	Put(ctx context.Context, price *CachedPrice) error
}
