// Package valuation resolves the current value of individual assets, using
// live price feeds where available and stored figures everywhere else.
package valuation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

// hoursPerYear converts elapsed wall time to fractional years (365.25 days)
const hoursPerYear = 24 * 365.25

// NAVSource supplies live mutual fund NAVs
type NAVSource interface {
	LatestNAV(ctx context.Context, schemeCode string) (domain.PriceQuote, error)
}

// MetalSource supplies live metal spot prices in INR per gram
type MetalSource interface {
	SpotPricePerGram(ctx context.Context, metal domain.Metal) (domain.PriceQuote, error)
}

// Resolver computes ValuationResults for assets
type Resolver struct {
	NAVs   NAVSource
	Metals MetalSource

	log zerolog.Logger
	now func() time.Time
}

// NewResolver creates a new Resolver instance
func NewResolver(navs NAVSource, metals MetalSource, log zerolog.Logger) *Resolver {
	return &Resolver{
		NAVs:   navs,
		Metals: metals,
		log:    log.With().Str("component", "valuation").Logger(),
		now:    time.Now,
	}
}

// Resolve computes the current value of a single asset.
// Live-feed types (mutual funds, metals) degrade to the last cached price
// when the feed fails; with nothing cached the error wraps
// domain.ErrValuationUnavailable. Manual types never fail.
// Liabilities resolve to a negative value.
func (r *Resolver) Resolve(ctx context.Context, asset *domain.Asset) (*domain.ValuationResult, error) {
	result := &domain.ValuationResult{
		AssetID:   asset.ID,
		AssetType: asset.Type,
		Label:     asset.Label,
		AsOf:      r.now(),
		Source:    domain.ValuationSourceManual,
	}

	switch details := asset.Details.(type) {
	case *domain.MutualFundDetails:
		// Zero holdings never require a fetch and never fail
		if details.Units.IsZero() {
			result.Value = decimal.Zero
			return result, nil
		}
		quote, err := r.NAVs.LatestNAV(ctx, details.SchemeCode)
		if err != nil {
			return nil, fmt.Errorf("%w: scheme %s: %v", domain.ErrValuationUnavailable, details.SchemeCode, err)
		}
		result.Value = details.Units.Mul(quote.Price)
		result.AsOf = quote.AsOf
		result.Source = liveOrStale(quote)

	case *domain.MetalDetails:
		if details.WeightGrams.IsZero() {
			result.Value = decimal.Zero
			return result, nil
		}
		quote, err := r.Metals.SpotPricePerGram(ctx, details.Metal)
		if err != nil {
			return nil, fmt.Errorf("%w: metal %s: %v", domain.ErrValuationUnavailable, details.Metal, err)
		}
		pricePerGram := quote.Price.Mul(details.Purity.PurityFactor())
		result.Value = details.WeightGrams.Mul(pricePerGram)
		result.AsOf = quote.AsOf
		result.Source = liveOrStale(quote)

	case *domain.StockDetails:
		result.Value = details.Quantity.Mul(details.CurrentPrice)

	case *domain.RealEstateDetails:
		grown := compound(details.CurrentValue, asset.ReturnRate(), r.elapsedYears(asset))
		result.Value = grown.Sub(details.LoanOutstanding)

	case *domain.BankAccountDetails:
		result.Value = compound(details.Balance, rateOrDefault(details.InterestRate, asset), r.elapsedYears(asset))

	case *domain.FixedDepositDetails:
		result.Value = compound(details.Principal, rateOrDefault(details.InterestRate, asset), r.elapsedYears(asset))

	case *domain.NPSDetails:
		result.Value = compound(details.Balance(), asset.ReturnRate(), r.elapsedYears(asset))

	case *domain.PPFDetails:
		result.Value = compound(details.CurrentBalance, rateOrDefault(details.InterestRate, asset), r.elapsedYears(asset))

	case *domain.EPFDetails:
		result.Value = compound(details.TotalBalance, rateOrDefault(details.InterestRate, asset), r.elapsedYears(asset))

	case *domain.InsuranceDetails:
		result.Value = compound(details.CurrentValue, asset.ExpectedReturn, r.elapsedYears(asset))

	case *domain.CreditCardDetails:
		// Outstanding balances reduce net worth and do not compound
		result.Value = details.OutstandingBalance.Neg()

	case *domain.LoanDetails:
		result.Value = details.OutstandingAmount.Neg()

	default:
		return nil, fmt.Errorf("%w: asset %s has no details", domain.ErrValuationUnavailable, asset.ID)
	}

	return result, nil
}

// ResolveAll resolves every asset, collecting per-asset warnings instead of
// failing. A single bad asset never blocks the rest.
func (r *Resolver) ResolveAll(ctx context.Context, assets []*domain.Asset) ([]*domain.ValuationResult, []domain.ValuationWarning) {
	results := make([]*domain.ValuationResult, 0, len(assets))
	var warnings []domain.ValuationWarning

	for _, asset := range assets {
		result, err := r.Resolve(ctx, asset)
		if err != nil {
			r.log.Warn().
				Err(err).
				Str("asset_id", asset.ID.String()).
				Str("label", asset.Label).
				Msg("Asset could not be valued")
			warnings = append(warnings, domain.ValuationWarning{
				AssetID: asset.ID,
				Label:   asset.Label,
				Reason:  err.Error(),
			})
			continue
		}
		results = append(results, result)
	}

	return results, warnings
}

// elapsedYears returns the fractional years since the asset's stored
// figures were last updated
func (r *Resolver) elapsedYears(asset *domain.Asset) float64 {
	if asset.UpdatedAt.IsZero() {
		return 0
	}
	elapsed := r.now().Sub(asset.UpdatedAt)
	if elapsed <= 0 {
		return 0
	}
	return elapsed.Hours() / hoursPerYear
}

// compound grows value at an annual rate over fractional years.
// Zero value, zero rate or zero elapsed time leave the value unchanged.
func compound(value, rate decimal.Decimal, years float64) decimal.Decimal {
	if value.IsZero() || rate.IsZero() || years <= 0 {
		return value
	}
	factor := math.Pow(decimal.NewFromInt(1).Add(rate).InexactFloat64(), years)
	return value.Mul(decimal.NewFromFloat(factor)).Round(2)
}

// rateOrDefault prefers the instrument's own interest rate over the
// asset-level expected return
func rateOrDefault(instrumentRate decimal.Decimal, asset *domain.Asset) decimal.Decimal {
	if instrumentRate.IsPositive() {
		return instrumentRate
	}
	return asset.ReturnRate()
}

func liveOrStale(quote domain.PriceQuote) domain.ValuationSource {
	if quote.Stale {
		return domain.ValuationSourceStale
	}
	return domain.ValuationSourceLive
}
