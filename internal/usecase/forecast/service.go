package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

// AssetResolver resolves assets to their current values, reporting
// unresolvable assets as warnings
type AssetResolver interface {
	ResolveAll(ctx context.Context, assets []*domain.Asset) ([]*domain.ValuationResult, []domain.ValuationWarning)
}

// Projection is a complete multi-year forecast. Derived per request, never
// persisted.
type Projection struct {
	HorizonYears int
	AsOf         time.Time
	Years        []YearProjection
	Warnings     []domain.ValuationWarning
}

// Service handles forecast computation
type Service struct {
	AssetRepo domain.AssetRepository
	Resolver  AssetResolver

	log zerolog.Logger
	now func() time.Time
}

// NewService creates a new forecast Service instance
func NewService(assetRepo domain.AssetRepository, resolver AssetResolver, log zerolog.Logger) *Service {
	return &Service{
		AssetRepo: assetRepo,
		Resolver:  resolver,
		log:       log.With().Str("component", "forecast").Logger(),
		now:       time.Now,
	}
}

// ComputeForecast projects the portfolio forward horizonYears years.
// Each asset compounds at its own expected return rate; liabilities are
// held at their current outstanding amount and stay subtracted throughout.
// Assets that cannot be valued today are skipped with a warning, exactly as
// in net worth aggregation.
func (s *Service) ComputeForecast(ctx context.Context, horizonYears int) (*Projection, error) {
	if horizonYears < MinHorizonYears || horizonYears > MaxHorizonYears {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidHorizon, horizonYears)
	}

	assets, err := s.AssetRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	valuations, warnings := s.Resolver.ResolveAll(ctx, assets)

	assetsByID := make(map[uuid.UUID]*domain.Asset, len(assets))
	for _, asset := range assets {
		assetsByID[asset.ID] = asset
	}

	inputs := make([]AssetInput, 0, len(valuations))
	for _, valuation := range valuations {
		rate := decimal.Zero
		if asset, ok := assetsByID[valuation.AssetID]; ok && !asset.Type.IsLiability() {
			rate = asset.ReturnRate()
		}
		inputs = append(inputs, AssetInput{
			AssetID:   valuation.AssetID,
			AssetType: valuation.AssetType,
			Value:     valuation.Value.Round(2),
			Rate:      rate,
		})
	}

	years, err := Project(inputs, horizonYears)
	if err != nil {
		return nil, err
	}

	return &Projection{
		HorizonYears: horizonYears,
		AsOf:         s.now(),
		Years:        years,
		Warnings:     warnings,
	}, nil
}
