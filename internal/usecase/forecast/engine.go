// Package forecast projects current asset valuations forward over a
// multi-year horizon using per-asset compounding.
package forecast

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

// Supported forecast horizon bounds, inclusive
const (
	MinHorizonYears = 5
	MaxHorizonYears = 30
)

// AssetInput is one asset's contribution to a projection: its resolved
// current value and the annual rate it compounds at. Liabilities carry a
// negative value and a zero rate.
type AssetInput struct {
	AssetID   uuid.UUID
	AssetType domain.AssetType
	Value     decimal.Decimal
	Rate      decimal.Decimal
}

// YearProjection is the projected portfolio state for one future year
type YearProjection struct {
	Year      int
	Total     decimal.Decimal
	Breakdown map[domain.AssetType]decimal.Decimal
}

// Project compounds each asset independently and re-aggregates per year.
// For each year y in [1, horizon]: perAssetValue(y) = value * (1+rate)^y.
// Pure function of its inputs: identical inputs always produce identical
// projections.
//
// Safety: every year's breakdown must sum to its total exactly.
func Project(inputs []AssetInput, horizonYears int) ([]YearProjection, error) {
	if horizonYears < MinHorizonYears || horizonYears > MaxHorizonYears {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidHorizon, horizonYears)
	}

	one := decimal.NewFromInt(1)
	years := make([]YearProjection, 0, horizonYears)

	for year := 1; year <= horizonYears; year++ {
		breakdown := make(map[domain.AssetType]decimal.Decimal)
		total := decimal.Zero

		for _, input := range inputs {
			if input.Rate.IsNegative() {
				return nil, errors.New("asset rate cannot be negative")
			}

			factor := one.Add(input.Rate).Pow(decimal.NewFromInt(int64(year)))
			projected := input.Value.Mul(factor).Round(2)

			breakdown[input.AssetType] = breakdown[input.AssetType].Add(projected)
			total = total.Add(projected)
		}

		// Safety check: the breakdown must account for the entire total
		sum := decimal.Zero
		for _, subtotal := range breakdown {
			sum = sum.Add(subtotal)
		}
		if !sum.Equal(total) {
			return nil, errors.New("projection breakdown does not sum to total")
		}

		years = append(years, YearProjection{
			Year:      year,
			Total:     total,
			Breakdown: breakdown,
		})
	}

	return years, nil
}
