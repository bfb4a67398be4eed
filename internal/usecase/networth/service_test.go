package networth

import (
	"context"
	"errors"
	"testing"
	"time"

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

// MockSnapshotRepository is a mock implementation of SnapshotRepository for testing
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot *domain.NetWorthSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) List(ctx context.Context) ([]*domain.NetWorthSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NetWorthSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Purge(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
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

func valuation(assetType domain.AssetType, value float64) *domain.ValuationResult {
	return &domain.ValuationResult{
		AssetID:   uuid.New(),
		AssetType: assetType,
		Value:     decimal.NewFromFloat(value),
		AsOf:      time.Now(),
		Source:    domain.ValuationSourceManual,
	}
}

func TestComputeNetWorth_GroupsAndSums(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	snapshotRepo := new(MockSnapshotRepository)
	resolver := new(MockResolver)
	service := NewService(assetRepo, snapshotRepo, resolver, zerolog.Nop())

	assets := []*domain.Asset{}
	assetRepo.On("List", ctx, domain.AssetType("")).Return(assets, nil)
	resolver.On("ResolveAll", ctx, assets).Return([]*domain.ValuationResult{
		valuation(domain.AssetTypeMutualFund, 1000.50),
		valuation(domain.AssetTypeMutualFund, 499.50),
		valuation(domain.AssetTypeBankAccount, 2000),
		valuation(domain.AssetTypeLoan, -500),
	}, nil)

	result, err := service.ComputeNetWorth(ctx)
	require.NoError(t, err)

	assert.True(t, result.Total.Equal(decimal.NewFromInt(3000)), "got %s", result.Total)
	assert.True(t, result.TotalAssets.Equal(decimal.NewFromInt(3500)))
	assert.True(t, result.TotalLiabilities.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.Breakdown[domain.AssetTypeMutualFund].Equal(decimal.NewFromInt(1500)))
	assert.True(t, result.Breakdown[domain.AssetTypeLoan].Equal(decimal.NewFromInt(-500)))
	assert.Empty(t, result.Warnings)

	// Invariant: breakdown entries sum to total
	sum := decimal.Zero
	for _, subtotal := range result.Breakdown {
		sum = sum.Add(subtotal)
	}
	assert.True(t, sum.Sub(result.Total).Abs().LessThanOrEqual(domain.BreakdownTolerance))
}

func TestComputeNetWorth_WarningsPropagate(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	resolver := new(MockResolver)
	service := NewService(assetRepo, new(MockSnapshotRepository), resolver, zerolog.Nop())

	assets := []*domain.Asset{}
	warning := domain.ValuationWarning{AssetID: uuid.New(), Label: "Defunct fund", Reason: "valuation unavailable"}

	assetRepo.On("List", ctx, domain.AssetType("")).Return(assets, nil)
	resolver.On("ResolveAll", ctx, assets).Return([]*domain.ValuationResult{
		valuation(domain.AssetTypeStock, 100),
	}, []domain.ValuationWarning{warning})

	result, err := service.ComputeNetWorth(ctx)
	require.NoError(t, err)

	// Partial results still returned alongside the warning
	assert.True(t, result.Total.Equal(decimal.NewFromInt(100)))
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Defunct fund", result.Warnings[0].Label)
}

func TestComputeNetWorth_ListFailure(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	service := NewService(assetRepo, new(MockSnapshotRepository), new(MockResolver), zerolog.Nop())

	assetRepo.On("List", ctx, domain.AssetType("")).Return(nil, errors.New("db down"))

	_, err := service.ComputeNetWorth(ctx)
	assert.Error(t, err)
}

func TestSaveSnapshot_StoresDayTruncatedDate(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	snapshotRepo := new(MockSnapshotRepository)
	resolver := new(MockResolver)
	service := NewService(assetRepo, snapshotRepo, resolver, zerolog.Nop())

	assets := []*domain.Asset{}
	assetRepo.On("List", ctx, domain.AssetType("")).Return(assets, nil)
	resolver.On("ResolveAll", ctx, assets).Return([]*domain.ValuationResult{
		valuation(domain.AssetTypePPF, 250000),
	}, nil)

	var saved *domain.NetWorthSnapshot
	snapshotRepo.On("Save", ctx, mock.AnythingOfType("*domain.NetWorthSnapshot")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.NetWorthSnapshot)
		}).
		Return(nil)

	date := time.Date(2026, 8, 26, 17, 45, 3, 0, time.UTC)
	snapshot, err := service.SaveSnapshot(ctx, &date)
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), saved.Date)
	assert.True(t, snapshot.Total.Equal(decimal.NewFromInt(250000)))
	assert.NoError(t, snapshot.Validate())
	snapshotRepo.AssertExpectations(t)
}

func TestSaveSnapshot_StorageFailurePropagates(t *testing.T) {
	ctx := context.Background()
	assetRepo := new(MockAssetRepository)
	snapshotRepo := new(MockSnapshotRepository)
	resolver := new(MockResolver)
	service := NewService(assetRepo, snapshotRepo, resolver, zerolog.Nop())

	assets := []*domain.Asset{}
	assetRepo.On("List", ctx, domain.AssetType("")).Return(assets, nil)
	resolver.On("ResolveAll", ctx, assets).Return([]*domain.ValuationResult{}, nil)
	snapshotRepo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := service.SaveSnapshot(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save snapshot")
}

func TestHistoryAndDeletion(t *testing.T) {
	ctx := context.Background()
	snapshotRepo := new(MockSnapshotRepository)
	service := NewService(new(MockAssetRepository), snapshotRepo, new(MockResolver), zerolog.Nop())

	stored := []*domain.NetWorthSnapshot{
		{Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(100)},
		{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(110)},
	}
	snapshotRepo.On("List", ctx).Return(stored, nil)

	history, err := service.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	snapshotRepo.On("DeleteByDate", ctx, day).Return(nil)
	assert.NoError(t, service.DeleteSnapshot(ctx, day.Add(5*time.Hour)))

	snapshotRepo.On("Purge", ctx).Return(nil)
	assert.NoError(t, service.PurgeHistory(ctx))
	snapshotRepo.AssertExpectations(t)
}
