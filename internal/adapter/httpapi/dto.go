package httpapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

const dateFormat = "2006-01-02"

// assetPayload is the request body for creating or updating an asset.
// Details is decoded against the concrete schema for Type.
type assetPayload struct {
	Type           string          `json:"type"`
	Label          string          `json:"label"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Notes          string          `json:"notes"`
	Details        json.RawMessage `json:"details"`
}

func (p *assetPayload) toAsset() (*domain.Asset, error) {
	assetType := domain.AssetType(p.Type)
	if !assetType.IsValid() {
		return nil, fmt.Errorf("unknown asset type %q", p.Type)
	}

	details, err := domain.NewDetails(assetType)
	if err != nil {
		return nil, err
	}
	if len(p.Details) > 0 {
		if err := json.Unmarshal(p.Details, details); err != nil {
			return nil, fmt.Errorf("invalid details for type %s: %w", assetType, err)
		}
	}

	return &domain.Asset{
		Type:           assetType,
		Label:          p.Label,
		ExpectedReturn: p.ExpectedReturn,
		Notes:          p.Notes,
		Details:        details,
	}, nil
}

type assetResponse struct {
	ID             string              `json:"id"`
	Type           string              `json:"type"`
	Label          string              `json:"label"`
	ExpectedReturn decimal.Decimal     `json:"expected_return"`
	Notes          string              `json:"notes,omitempty"`
	Details        domain.AssetDetails `json:"details"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func toAssetResponse(a *domain.Asset) assetResponse {
	return assetResponse{
		ID:             a.ID.String(),
		Type:           string(a.Type),
		Label:          a.Label,
		ExpectedReturn: a.ExpectedReturn,
		Notes:          a.Notes,
		Details:        a.Details,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

type warningResponse struct {
	AssetID string `json:"asset_id"`
	Label   string `json:"label"`
	Reason  string `json:"reason"`
}

func toWarningResponses(warnings []domain.ValuationWarning) []warningResponse {
	out := make([]warningResponse, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, warningResponse{
			AssetID: w.AssetID.String(),
			Label:   w.Label,
			Reason:  w.Reason,
		})
	}
	return out
}

type netWorthResponse struct {
	Total            decimal.Decimal                      `json:"total"`
	TotalAssets      decimal.Decimal                      `json:"total_assets"`
	TotalLiabilities decimal.Decimal                      `json:"total_liabilities"`
	Breakdown        map[domain.AssetType]decimal.Decimal `json:"breakdown"`
	Warnings         []warningResponse                    `json:"warnings"`
	AsOf             time.Time                            `json:"as_of"`
}

type snapshotResponse struct {
	ID               string                               `json:"id"`
	Date             string                               `json:"date"`
	Total            decimal.Decimal                      `json:"total"`
	TotalAssets      decimal.Decimal                      `json:"total_assets"`
	TotalLiabilities decimal.Decimal                      `json:"total_liabilities"`
	Breakdown        map[domain.AssetType]decimal.Decimal `json:"breakdown"`
}

func toSnapshotResponse(s *domain.NetWorthSnapshot) snapshotResponse {
	return snapshotResponse{
		ID:               s.ID.String(),
		Date:             s.Date.Format(dateFormat),
		Total:            s.Total,
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		Breakdown:        s.Breakdown,
	}
}

type yearProjectionResponse struct {
	Year      int                                  `json:"year"`
	Total     decimal.Decimal                      `json:"total"`
	Breakdown map[domain.AssetType]decimal.Decimal `json:"breakdown"`
}

type forecastResponse struct {
	HorizonYears int                      `json:"horizon_years"`
	AsOf         time.Time                `json:"as_of"`
	Years        []yearProjectionResponse `json:"years"`
	Warnings     []warningResponse        `json:"warnings"`
}

type refreshResponse struct {
	FundsUpdated  int `json:"funds_updated"`
	MetalsUpdated int `json:"metals_updated"`
	Failed        int `json:"failed"`
}

type metalPriceResponse struct {
	Metal        string          `json:"metal"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	AsOf         time.Time       `json:"as_of"`
	Stale        bool            `json:"stale"`
}

type navResponse struct {
	SchemeCode string          `json:"scheme_code"`
	NAV        decimal.Decimal `json:"nav"`
	AsOf       time.Time       `json:"as_of"`
	Stale      bool            `json:"stale"`
}
