// Package asset provides create/read/update/delete operations for
// portfolio asset records.
package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

// Service handles asset record operations
type Service struct {
	AssetRepo domain.AssetRepository

	log zerolog.Logger
	now func() time.Time
}

// NewService creates a new asset Service instance
func NewService(assetRepo domain.AssetRepository, log zerolog.Logger) *Service {
	return &Service{
		AssetRepo: assetRepo,
		log:       log.With().Str("component", "asset").Logger(),
		now:       time.Now,
	}
}

// Create validates and stores a new asset, assigning its ID and timestamps
func (s *Service) Create(ctx context.Context, asset *domain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	asset.ID = uuid.New()
	asset.CreatedAt = s.now()
	asset.UpdatedAt = asset.CreatedAt

	if err := s.AssetRepo.Create(ctx, asset); err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("type", string(asset.Type)).
		Str("label", asset.Label).
		Msg("Asset created")

	return nil
}

// Update validates and replaces an existing asset's mutable fields.
// The asset type is fixed at creation and cannot change.
func (s *Service) Update(ctx context.Context, asset *domain.Asset) error {
	existing, err := s.AssetRepo.GetByID(ctx, asset.ID)
	if err != nil {
		return err
	}

	if asset.Type != existing.Type {
		return fmt.Errorf("%w: from %q to %q", domain.ErrAssetTypeImmutable, existing.Type, asset.Type)
	}

	if err := asset.Validate(); err != nil {
		return err
	}

	asset.CreatedAt = existing.CreatedAt
	asset.UpdatedAt = s.now()

	if err := s.AssetRepo.Update(ctx, asset); err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	return nil
}

// Delete removes an asset
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	// Verify the asset exists so callers get ErrAssetNotFound
	if _, err := s.AssetRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.AssetRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	s.log.Info().Str("asset_id", id.String()).Msg("Asset deleted")
	return nil
}

// Get retrieves a single asset by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	return s.AssetRepo.GetByID(ctx, id)
}

// List retrieves assets, optionally filtered by type
func (s *Service) List(ctx context.Context, typeFilter domain.AssetType) ([]*domain.Asset, error) {
	if typeFilter != "" && !typeFilter.IsValid() {
		return nil, fmt.Errorf("unknown asset type %q", typeFilter)
	}
	return s.AssetRepo.List(ctx, typeFilter)
}
