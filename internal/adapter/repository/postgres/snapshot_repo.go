package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

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
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			total = EXCLUDED.total,
			total_assets = EXCLUDED.total_assets,
			total_liabilities = EXCLUDED.total_liabilities,
			breakdown = EXCLUDED.breakdown
	`

	breakdownJSON, err := json.Marshal(snapshot.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot breakdown: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.Date,
		snapshot.Total.String(),
		snapshot.TotalAssets.String(),
		snapshot.TotalLiabilities.String(),
		breakdownJSON,
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
			snapshot      domain.NetWorthSnapshot
			totalStr      string
			assetsStr     string
			liabStr       string
			breakdownJSON []byte
		)
		err := rows.Scan(
			&snapshot.ID,
			&snapshot.Date,
			&totalStr,
			&assetsStr,
			&liabStr,
			&breakdownJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		// DATE columns come back at UTC midnight already; normalize anyway
		snapshot.Date = domain.SnapshotDay(snapshot.Date)

		snapshot.Total, err = decimal.NewFromString(totalStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot total: %w", err)
		}
		snapshot.TotalAssets, err = decimal.NewFromString(assetsStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot total_assets: %w", err)
		}
		snapshot.TotalLiabilities, err = decimal.NewFromString(liabStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot total_liabilities: %w", err)
		}

		if err := json.Unmarshal(breakdownJSON, &snapshot.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot breakdown: %w", err)
		}

		snapshots = append(snapshots, &snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}

// DeleteByDate removes the snapshot for a calendar day
func (r *snapshotRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM net_worth_snapshots WHERE snapshot_date = $1`,
		domain.SnapshotDay(date),
	)
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
