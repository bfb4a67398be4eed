package scheduler

import (
	"context"
	"fmt"

	"github.com/truwealthily/wealthpulse-backend/internal/usecase/networth"
)

// SnapshotJob records the daily net worth snapshot
type SnapshotJob struct {
	NetWorth *networth.Service
}

// NewSnapshotJob creates a new snapshot job
func NewSnapshotJob(netWorth *networth.Service) *SnapshotJob {
	return &SnapshotJob{NetWorth: netWorth}
}

// Name returns the job name for logging
func (j *SnapshotJob) Name() string {
	return "auto_snapshot"
}

// Run computes and stores today's snapshot. Re-running on the same day
// overwrites the earlier snapshot.
func (j *SnapshotJob) Run(ctx context.Context) error {
	if _, err := j.NetWorth.SaveSnapshot(ctx, nil); err != nil {
		return fmt.Errorf("auto snapshot failed: %w", err)
	}
	return nil
}
