package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// GetByID retrieves an asset by its ID
func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `
		SELECT id, asset_type, label, expected_return, notes, details, created_at, updated_at
		FROM assets
		WHERE id = $1
	`

	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	return asset, nil
}

// Create creates a new asset
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, asset_type, label, expected_return, notes, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	detailsJSON, err := json.Marshal(asset.Details)
	if err != nil {
		return fmt.Errorf("failed to encode asset details: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		asset.ID,
		string(asset.Type),
		asset.Label,
		asset.ExpectedReturn.String(),
		asset.Notes,
		detailsJSON,
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// Update replaces an existing asset's mutable fields
func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET label = $1, expected_return = $2, notes = $3, details = $4, updated_at = $5
		WHERE id = $6
	`

	detailsJSON, err := json.Marshal(asset.Details)
	if err != nil {
		return fmt.Errorf("failed to encode asset details: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query,
		asset.Label,
		asset.ExpectedReturn.String(),
		asset.Notes,
		detailsJSON,
		asset.UpdatedAt,
		asset.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrAssetNotFound
	}

	return nil
}

// Delete removes an asset
func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrAssetNotFound
	}

	return nil
}

// List retrieves assets, optionally filtered by type
func (r *assetRepository) List(ctx context.Context, typeFilter domain.AssetType) ([]*domain.Asset, error) {
	query := `
		SELECT id, asset_type, label, expected_return, notes, details, created_at, updated_at
		FROM assets
	`
	var args []interface{}
	if typeFilter != "" {
		query += ` WHERE asset_type = $1`
		args = append(args, string(typeFilter))
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		asset       domain.Asset
		typeStr     string
		returnStr   string
		detailsJSON []byte
	)

	err := row.Scan(
		&asset.ID,
		&typeStr,
		&asset.Label,
		&returnStr,
		&asset.Notes,
		&detailsJSON,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	asset.Type = domain.AssetType(typeStr)

	// Parse expected_return (DECIMAL)
	asset.ExpectedReturn, err = decimal.NewFromString(returnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expected_return: %w", err)
	}

	details, err := domain.NewDetails(asset.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to build details for stored asset: %w", err)
	}
	if err := json.Unmarshal(detailsJSON, details); err != nil {
		return nil, fmt.Errorf("failed to decode asset details: %w", err)
	}
	asset.Details = details

	return &asset, nil
}
