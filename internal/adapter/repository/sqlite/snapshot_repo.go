package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

const snapshotDateFormat = "2006-01-02"

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Save stores a snapshot, overwriting any snapshot already stored for
// the same calendar day
func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.NetWorthSnapshot) error {
	query := `
		INSERT INTO net_worth_snapshots (id, snapshot_date, total, total_assets, total_liabilities, breakdown)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			total = excluded.total,
			total_assets = excluded.total_assets,
			total_liabilities = excluded.total_liabilities,
			breakdown = excluded.breakdown
	`

	breakdownJSON, err := json.Marshal(snapshot.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot breakdown: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID.String(),
		snapshot.Date.Format(snapshotDateFormat),
		snapshot.Total.String(),
		snapshot.TotalAssets.String(),
		snapshot.TotalLiabilities.String(),
		string(breakdownJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// List retrieves all snapshots ordered by date ascending
func (r *snapshotRepository) List(ctx context.Context) ([]*domain.NetWorthSnapshot, error) {
	query := `
		SELECT id, snapshot_date, total, total_assets, total_liabilities, breakdown
		FROM net_worth_snapshots
		ORDER BY snapshot_date
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.NetWorthSnapshot
	for rows.Next() {
		var (
			idStr         string
			dateStr       string
			totalStr      string
			assetsStr     string
			liabStr       string
			breakdownJSON string
		)
		if err := rows.Scan(&idStr, &dateStr, &totalStr, &assetsStr, &liabStr, &breakdownJSON); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		snapshot, err := buildSnapshot(idStr, dateStr, totalStr, assetsStr, liabStr, breakdownJSON)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}

// DeleteByDate removes the snapshot for a calendar day
func (r *snapshotRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	day := domain.SnapshotDay(date).Format(snapshotDateFormat)

	result, err := r.db.ExecContext(ctx, `DELETE FROM net_worth_snapshots WHERE snapshot_date = ?`, day)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrSnapshotNotFound
	}

	return nil
}

// Purge removes all snapshots
func (r *snapshotRepository) Purge(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM net_worth_snapshots`); err != nil {
		return fmt.Errorf("failed to purge snapshots: %w", err)
	}
	return nil
}

func buildSnapshot(idStr, dateStr, totalStr, assetsStr, liabStr, breakdownJSON string) (*domain.NetWorthSnapshot, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot id: %w", err)
	}

	date, err := time.ParseInLocation(snapshotDateFormat, dateStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot total: %w", err)
	}
	totalAssets, err := decimal.NewFromString(assetsStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot total_assets: %w", err)
	}
	totalLiabilities, err := decimal.NewFromString(liabStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot total_liabilities: %w", err)
	}

	var breakdown map[domain.AssetType]decimal.Decimal
	if err := json.Unmarshal([]byte(breakdownJSON), &breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot breakdown: %w", err)
	}

	return &domain.NetWorthSnapshot{
		ID:               id,
		Date:             date,
		Total:            total,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		Breakdown:        breakdown,
	}, nil
}
