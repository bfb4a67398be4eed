package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BreakdownTolerance is the maximum acceptable drift between a snapshot's
// total and the sum of its breakdown entries
var BreakdownTolerance = decimal.NewFromFloat(0.01)

// NetWorthSnapshot is an immutable, dated record of total and per-type net
// worth. Exactly one snapshot exists per calendar day; saving again on the
// same day overwrites.
type NetWorthSnapshot struct {
	ID   uuid.UUID
	Date time.Time // calendar day, time part zeroed

	Total            decimal.Decimal
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal

	// Breakdown maps asset type to its subtotal. Liability types carry
	// negative values so that the entries sum to Total.
	Breakdown map[AssetType]decimal.Decimal
}

// Validate ensures the snapshot adheres to domain rules.
// The breakdown entries must sum to the total within BreakdownTolerance.
func (s *NetWorthSnapshot) Validate() error {
	if s.Date.IsZero() {
		return errors.New("snapshot date cannot be zero")
	}

	sum := decimal.Zero
	for _, subtotal := range s.Breakdown {
		sum = sum.Add(subtotal)
	}

	if sum.Sub(s.Total).Abs().GreaterThan(BreakdownTolerance) {
		return errors.New("snapshot breakdown does not sum to total")
	}

	return nil
}

// SnapshotDay truncates t to its calendar day in UTC
func SnapshotDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
