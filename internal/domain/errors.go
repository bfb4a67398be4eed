package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAssetNotFound is returned when an asset does not exist
	ErrAssetNotFound = errors.New("asset not found")

	// ErrSnapshotNotFound is returned when no snapshot exists for a date
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrValuationUnavailable is returned when an asset has neither a live
	// price, a cached price, nor a usable stored value. Surfaced as a
	// per-asset warning; aggregation continues without the asset.
	ErrValuationUnavailable = errors.New("valuation unavailable")

	// ErrInvalidHorizon is returned when a forecast horizon is outside the
	// supported range
	ErrInvalidHorizon = errors.New("forecast horizon must be between 5 and 30 years")

	// ErrAssetTypeImmutable is returned when an update tries to change an
	// asset's type. The type is fixed at creation.
	ErrAssetTypeImmutable = errors.New("asset type cannot change")
)

// FetchError is a transient failure talking to an external price feed.
// It triggers the stale-cache fallback and is never a hard failure.
type FetchError struct {
	Provider string
	Key      string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s failed for %q: %v", e.Provider, e.Key, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
