// Package refresh updates the prices stored on asset records from the live
// feeds, so displayed figures stay current between valuations.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/valuation"
)

// Result reports how many records a refresh touched
type Result struct {
	FundsUpdated  int
	MetalsUpdated int
	Failed        int
}

// Service handles bulk price refresh operations
type Service struct {
	AssetRepo domain.AssetRepository
	NAVs      valuation.NAVSource
	Metals    valuation.MetalSource

	log zerolog.Logger
	now func() time.Time
}

// NewService creates a new refresh Service instance
func NewService(
	assetRepo domain.AssetRepository,
	navs valuation.NAVSource,
	metals valuation.MetalSource,
	log zerolog.Logger,
) *Service {
	return &Service{
		AssetRepo: assetRepo,
		NAVs:      navs,
		Metals:    metals,
		log:       log.With().Str("component", "refresh").Logger(),
		now:       time.Now,
	}
}

// RefreshAll fetches current prices for every mutual fund and metal holding
// and persists them back onto the records. Individual fetch failures are
// counted and logged, never fatal. Stale cached prices are not written
// back; only genuinely live prices update the stored figures.
func (s *Service) RefreshAll(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := s.refreshFunds(ctx, result); err != nil {
		return nil, err
	}
	if err := s.refreshMetals(ctx, result); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("funds", result.FundsUpdated).
		Int("metals", result.MetalsUpdated).
		Int("failed", result.Failed).
		Msg("Price refresh finished")

	return result, nil
}

func (s *Service) refreshFunds(ctx context.Context, result *Result) error {
	funds, err := s.AssetRepo.List(ctx, domain.AssetTypeMutualFund)
	if err != nil {
		return fmt.Errorf("failed to list mutual funds: %w", err)
	}

	for _, asset := range funds {
		details, ok := asset.Details.(*domain.MutualFundDetails)
		if !ok || details.SchemeCode == "" {
			continue
		}

		quote, err := s.NAVs.LatestNAV(ctx, details.SchemeCode)
		if err != nil || quote.Stale {
			s.log.Warn().
				Err(err).
				Str("scheme", details.SchemeCode).
				Msg("Skipping NAV refresh for scheme")
			result.Failed++
			continue
		}

		details.CurrentNAV = quote.Price
		asset.UpdatedAt = s.now()
		if err := s.AssetRepo.Update(ctx, asset); err != nil {
			return fmt.Errorf("failed to store refreshed NAV: %w", err)
		}
		result.FundsUpdated++
	}

	return nil
}

func (s *Service) refreshMetals(ctx context.Context, result *Result) error {
	holdings, err := s.AssetRepo.List(ctx, domain.AssetTypeMetal)
	if err != nil {
		return fmt.Errorf("failed to list metal holdings: %w", err)
	}

	for _, asset := range holdings {
		details, ok := asset.Details.(*domain.MetalDetails)
		if !ok {
			continue
		}

		quote, err := s.Metals.SpotPricePerGram(ctx, details.Metal)
		if err != nil || quote.Stale {
			s.log.Warn().
				Err(err).
				Str("metal", string(details.Metal)).
				Msg("Skipping spot price refresh for holding")
			result.Failed++
			continue
		}

		// Stored per-gram price reflects the holding's purity
		details.CurrentPricePerGram = quote.Price.Mul(details.Purity.PurityFactor()).Round(2)
		asset.UpdatedAt = s.now()
		if err := s.AssetRepo.Update(ctx, asset); err != nil {
			return fmt.Errorf("failed to store refreshed spot price: %w", err)
		}
		result.MetalsUpdated++
	}

	return nil
}
