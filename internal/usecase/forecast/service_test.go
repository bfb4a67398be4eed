package forecast

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

// MockAssetRepository is a mock implementation of AssetRepository for testing
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) List(ctx context.Context, typeFilter domain.AssetType) ([]*domain.Asset, error) {
	args := m.Called(ctx, typeFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

// MockResolver is a mock implementation of AssetResolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveAll(ctx context.Context, assets []*domain.Asset) ([]*domain.ValuationResult, []domain.ValuationWarning) {
	args := m.Called(ctx, assets)
	var results []*domain.ValuationResult
	if args.Get(0) != nil {
		results = args.Get(0).([]*domain.ValuationResult)
	}
	var warnings []domain.ValuationWarning
	if args.Get(1) != nil {
		warnings = args.Get(1).([]domain.ValuationWarning)
	}
	return results, warnings
}

func TestComputeForecast_InvalidHorizonRejectedUpfront(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	service := NewService(assetRepo, new(MockResolver), zerolog.Nop())

	_, err := service.ComputeForecast(ctx, 40)
	assert.ErrorIs(t, err, domain.ErrInvalidHorizon)

	_, err = service.ComputeForecast(ctx, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidHorizon)

	// Rejected before any storage access
	assetRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestComputeForecast_UsesAssetRates(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	resolver := new(MockResolver)
	service := NewService(assetRepo, resolver, zerolog.Nop())

	fund := &domain.Asset{
		ID:             uuid.New(),
		Type:           domain.AssetTypeMutualFund,
		Label:          "Index fund",
		ExpectedReturn: decimal.NewFromFloat(0.10),
		Details:        &domain.MutualFundDetails{SchemeCode: "119551", Units: decimal.NewFromInt(10)},
	}
	assets := []*domain.Asset{fund}

	assetRepo.On("List", ctx, domain.AssetType("")).Return(assets, nil)
	resolver.On("ResolveAll", ctx, assets).Return([]*domain.ValuationResult{{
		AssetID:   fund.ID,
		AssetType: fund.Type,
		Label:     fund.Label,
		Value:     decimal.NewFromInt(1000),
		Source:    domain.ValuationSourceLive,
	}}, nil)

	projection, err := service.ComputeForecast(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, projection.HorizonYears)
	require.Len(t, projection.Years, 5)
	assert.True(t, projection.Years[0].Total.Equal(decimal.NewFromInt(1100)))
	assert.True(t, projection.Years[2].Total.Equal(decimal.NewFromInt(1331)))
}

func TestComputeForecast_LiabilityRateForcedToZero(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	resolver := new(MockResolver)
	service := NewService(assetRepo, resolver, zerolog.Nop())

	loan := &domain.Asset{
		ID:   uuid.New(),
		Type: domain.AssetTypeLoan,
		// A rate on a liability must not inflate the projection
		ExpectedReturn: decimal.NewFromFloat(0.09),
		Label:          "Home loan",
		Details:        &domain.LoanDetails{OutstandingAmount: decimal.NewFromInt(100000)},
	}
	assets := []*domain.Asset{loan}

	assetRepo.On("List", ctx, domain.AssetType("")).Return(assets, nil)
	resolver.On("ResolveAll", ctx, assets).Return([]*domain.ValuationResult{{
		AssetID:   loan.ID,
		AssetType: loan.Type,
		Value:     decimal.NewFromInt(-100000),
		Source:    domain.ValuationSourceManual,
	}}, nil)

	projection, err := service.ComputeForecast(ctx, 5)
	require.NoError(t, err)

	for _, year := range projection.Years {
		assert.True(t, year.Total.Equal(decimal.NewFromInt(-100000)), "year %d: %s", year.Year, year.Total)
	}
}

func TestComputeForecast_WarningsCarryThrough(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	resolver := new(MockResolver)
	service := NewService(assetRepo, resolver, zerolog.Nop())

	assets := []*domain.Asset{}
	warning := domain.ValuationWarning{AssetID: uuid.New(), Label: "Defunct fund", Reason: "valuation unavailable"}

	assetRepo.On("List", ctx, domain.AssetType("")).Return(assets, nil)
	resolver.On("ResolveAll", ctx, assets).Return(nil, []domain.ValuationWarning{warning})

	projection, err := service.ComputeForecast(ctx, 10)
	require.NoError(t, err)
	require.Len(t, projection.Warnings, 1)
	assert.Equal(t, "Defunct fund", projection.Warnings[0].Label)
}
