package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValuationSource indicates how a valuation was obtained
type ValuationSource string

const (
	// ValuationSourceLive means the value came from a live price feed
	ValuationSourceLive ValuationSource = "LIVE"
	// ValuationSourceManual means the value was derived from stored figures
	ValuationSourceManual ValuationSource = "MANUAL"
	// ValuationSourceStale means the live fetch failed and a cached price was used
	ValuationSourceStale ValuationSource = "STALE"
)

// ValuationResult is the resolved current value of a single asset.
// Derived per request, never persisted. Liabilities carry a negative Value.
type ValuationResult struct {
	AssetID   uuid.UUID
	AssetType AssetType
	Label     string
	Value     decimal.Decimal
	AsOf      time.Time
	Source    ValuationSource
}

// ValuationWarning names an asset that could not be valued. A warning never
// blocks aggregation of the remaining assets.
type ValuationWarning struct {
	AssetID uuid.UUID
	Label   string
	Reason  string
}

// PriceQuote is a unit price obtained from a price feed. Stale marks quotes
// served from the last-known-good cache after a live fetch failed.
type PriceQuote struct {
	Price decimal.Decimal
	AsOf  time.Time
	Stale bool
}
