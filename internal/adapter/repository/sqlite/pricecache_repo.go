package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

// priceCacheRepository implements domain.PriceCacheRepository
type priceCacheRepository struct {
	db *DB
}

// NewPriceCacheRepository creates a new price cache repository
func NewPriceCacheRepository(db *DB) domain.PriceCacheRepository {
	return &priceCacheRepository{db: db}
}

// Get retrieves the cached price for a provider/key pair.
// Returns nil (no error) when nothing is cached.
func (r *priceCacheRepository) Get(ctx context.Context, provider, key string) (*domain.CachedPrice, error) {
	query := `
		SELECT price, fetched_at
		FROM price_cache
		WHERE provider = ? AND cache_key = ?
	`

	cached := domain.CachedPrice{Provider: provider, Key: key}
	var priceStr string

	err := r.db.QueryRowContext(ctx, query, provider, key).Scan(&priceStr, &cached.FetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached price: %w", err)
	}

	cached.Price, err = decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cached price: %w", err)
	}

	return &cached, nil
}

// Put stores or replaces the cached price for a provider/key pair
func (r *priceCacheRepository) Put(ctx context.Context, price *domain.CachedPrice) error {
	query := `
		INSERT INTO price_cache (provider, cache_key, price, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (provider, cache_key) DO UPDATE SET
			price = excluded.price,
			fetched_at = excluded.fetched_at
	`

	_, err := r.db.ExecContext(ctx, query,
		price.Provider,
		price.Key,
		price.Price.String(),
		price.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store cached price: %w", err)
	}

	return nil
}
