// Package networth aggregates resolved asset valuations into net worth
// summaries and dated snapshots.
package networth

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

// Result represents the computed current net worth
type Result struct {
	Total            decimal.Decimal
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal

	// Breakdown maps asset type to subtotal; liability types are negative
	Breakdown map[domain.AssetType]decimal.Decimal

	Warnings []domain.ValuationWarning
	AsOf     time.Time
}

// Service handles net worth aggregation and snapshot operations
type Service struct {
	AssetRepo    domain.AssetRepository
	SnapshotRepo domain.SnapshotRepository
	Resolver     AssetResolver

	log zerolog.Logger
	now func() time.Time
}

// NewService creates a new net worth Service instance
func NewService(
	assetRepo domain.AssetRepository,
	snapshotRepo domain.SnapshotRepository,
	resolver AssetResolver,
	log zerolog.Logger,
) *Service {
	return &Service{
		AssetRepo:    assetRepo,
		SnapshotRepo: snapshotRepo,
		Resolver:     resolver,
		log:          log.With().Str("component", "networth").Logger(),
		now:          time.Now,
	}
}

// ComputeNetWorth calculates the current net worth across all assets.
// Logic:
//  1. List every asset
//  2. Resolve each to its current value (failures become warnings)
//  3. Group subtotals by asset type; liabilities carry negative values
//  4. Total = sum of all subtotals
//
// A single unresolvable asset never blocks the rest; the caller receives a
// best-effort total plus the warnings.
func (s *Service) ComputeNetWorth(ctx context.Context) (*Result, error) {
	assets, err := s.AssetRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	valuations, warnings := s.Resolver.ResolveAll(ctx, assets)

	breakdown := make(map[domain.AssetType]decimal.Decimal)
	totalAssets := decimal.Zero
	totalLiabilities := decimal.Zero

	for _, valuation := range valuations {
		rounded := valuation.Value.Round(2)
		breakdown[valuation.AssetType] = breakdown[valuation.AssetType].Add(rounded)

		if rounded.IsNegative() {
			totalLiabilities = totalLiabilities.Add(rounded.Neg())
		} else {
			totalAssets = totalAssets.Add(rounded)
		}
	}

	return &Result{
		Total:            totalAssets.Sub(totalLiabilities),
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		Breakdown:        breakdown,
		Warnings:         warnings,
		AsOf:             s.now(),
	}, nil
}

// SaveSnapshot computes the current net worth and stores it as a snapshot
// for the given date (defaults to today). Saving twice on the same calendar
// day overwrites the earlier snapshot, keeping one per day.
func (s *Service) SaveSnapshot(ctx context.Context, date *time.Time) (*domain.NetWorthSnapshot, error) {
	result, err := s.ComputeNetWorth(ctx)
	if err != nil {
		return nil, err
	}

	day := s.now()
	if date != nil {
		day = *date
	}

	snapshot := &domain.NetWorthSnapshot{
		ID:               uuid.New(),
		Date:             domain.SnapshotDay(day),
		Total:            result.Total,
		TotalAssets:      result.TotalAssets,
		TotalLiabilities: result.TotalLiabilities,
		Breakdown:        result.Breakdown,
	}

	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save inconsistent snapshot: %w", err)
	}

	if err := s.SnapshotRepo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.log.Info().
		Str("date", snapshot.Date.Format("2006-01-02")).
		Str("total", snapshot.Total.String()).
		Int("warnings", len(result.Warnings)).
		Msg("Saved net worth snapshot")

	return snapshot, nil
}

// History retrieves all snapshots ordered by date ascending
func (s *Service) History(ctx context.Context) ([]*domain.NetWorthSnapshot, error) {
	snapshots, err := s.SnapshotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// DeleteSnapshot removes the snapshot stored for a calendar day
func (s *Service) DeleteSnapshot(ctx context.Context, date time.Time) error {
	if err := s.SnapshotRepo.DeleteByDate(ctx, domain.SnapshotDay(date)); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// PurgeHistory removes every stored snapshot
func (s *Service) PurgeHistory(ctx context.Context) error {
	if err := s.SnapshotRepo.Purge(ctx); err != nil {
		return fmt.Errorf("failed to purge snapshot history: %w", err)
	}
	return nil
}
