package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAssetRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(newTestDB(t))

	asset := &domain.Asset{
		ID:    uuid.New(),
		Type:  domain.AssetTypeMutualFund,
		Label: "Parag Parikh Flexi Cap",
		Notes: "monthly SIP",
		Details: &domain.MutualFundDetails{
			SchemeCode: "122639",
			Units:      decimal.NewFromFloat(412.334),
			CurrentNAV: decimal.NewFromFloat(75.21),
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.Create(ctx, asset))

	got, err := repo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.Label, got.Label)
	assert.Equal(t, domain.AssetTypeMutualFund, got.Type)

	details, ok := got.Details.(*domain.MutualFundDetails)
	require.True(t, ok)
	assert.Equal(t, "122639", details.SchemeCode)
	assert.True(t, details.Units.Equal(decimal.NewFromFloat(412.334)))
}

func TestAssetRepository_GetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(newTestDB(t))

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestAssetRepository_UpdateMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(newTestDB(t))

	asset := &domain.Asset{
		ID:      uuid.New(),
		Type:    domain.AssetTypeStock,
		Label:   "Never stored",
		Details: &domain.StockDetails{},
	}
	assert.ErrorIs(t, repo.Update(ctx, asset), domain.ErrAssetNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, asset.ID), domain.ErrAssetNotFound)
}

func TestAssetRepository_ListFiltersByType(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(newTestDB(t))

	fund := &domain.Asset{
		ID:        uuid.New(),
		Type:      domain.AssetTypeMutualFund,
		Label:     "Fund",
		Details:   &domain.MutualFundDetails{SchemeCode: "100001", Units: decimal.NewFromInt(1)},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	loan := &domain.Asset{
		ID:        uuid.New(),
		Type:      domain.AssetTypeLoan,
		Label:     "Car loan",
		Details:   &domain.LoanDetails{OutstandingAmount: decimal.NewFromInt(250000)},
		CreatedAt: time.Now().UTC().Add(time.Second),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, fund))
	require.NoError(t, repo.Create(ctx, loan))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	loans, err := repo.List(ctx, domain.AssetTypeLoan)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "Car loan", loans[0].Label)
}

func TestSnapshotRepository_SaveOverwritesSameDay(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t))

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	first := &domain.NetWorthSnapshot{
		ID:          uuid.New(),
		Date:        day,
		Total:       decimal.NewFromInt(1000),
		TotalAssets: decimal.NewFromInt(1000),
		Breakdown: map[domain.AssetType]decimal.Decimal{
			domain.AssetTypeStock: decimal.NewFromInt(1000),
		},
	}
	require.NoError(t, repo.Save(ctx, first))

	second := &domain.NetWorthSnapshot{
		ID:          uuid.New(),
		Date:        day,
		Total:       decimal.NewFromInt(1500),
		TotalAssets: decimal.NewFromInt(1500),
		Breakdown: map[domain.AssetType]decimal.Decimal{
			domain.AssetTypeStock: decimal.NewFromInt(1500),
		},
	}
	require.NoError(t, repo.Save(ctx, second))

	snapshots, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.True(t, snapshots[0].Total.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, day, snapshots[0].Date)
}

func TestSnapshotRepository_ListOrderedByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t))

	days := []time.Time{
		time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		snapshot := &domain.NetWorthSnapshot{
			ID:          uuid.New(),
			Date:        day,
			Total:       decimal.NewFromInt(100),
			TotalAssets: decimal.NewFromInt(100),
			Breakdown: map[domain.AssetType]decimal.Decimal{
				domain.AssetTypeStock: decimal.NewFromInt(100),
			},
		}
		require.NoError(t, repo.Save(ctx, snapshot))
	}

	snapshots, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	assert.True(t, snapshots[0].Date.Before(snapshots[1].Date))
	assert.True(t, snapshots[1].Date.Before(snapshots[2].Date))
}

func TestSnapshotRepository_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t))

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	snapshot := &domain.NetWorthSnapshot{
		ID:          uuid.New(),
		Date:        day,
		Total:       decimal.NewFromInt(100),
		TotalAssets: decimal.NewFromInt(100),
		Breakdown: map[domain.AssetType]decimal.Decimal{
			domain.AssetTypeStock: decimal.NewFromInt(100),
		},
	}
	require.NoError(t, repo.Save(ctx, snapshot))

	assert.ErrorIs(t, repo.DeleteByDate(ctx, day.AddDate(0, 0, 1)), domain.ErrSnapshotNotFound)
	require.NoError(t, repo.DeleteByDate(ctx, day))

	require.NoError(t, repo.Save(ctx, snapshot))
	require.NoError(t, repo.Purge(ctx))

	snapshots, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestPriceCacheRepository_MissReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceCacheRepository(newTestDB(t))

	cached, err := repo.Get(ctx, "mfapi", "119551")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestPriceCacheRepository_PutReplacesExisting(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceCacheRepository(newTestDB(t))

	first := &domain.CachedPrice{
		Provider:  "metals",
		Key:       "GOLD",
		Price:     decimal.NewFromInt(6000),
		FetchedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, repo.Put(ctx, first))

	second := &domain.CachedPrice{
		Provider:  "metals",
		Key:       "GOLD",
		Price:     decimal.NewFromInt(6100),
		FetchedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Put(ctx, second))

	cached, err := repo.Get(ctx, "metals", "GOLD")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, cached.Price.Equal(decimal.NewFromInt(6100)))
}
