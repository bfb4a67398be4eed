// Package metals provides spot price fetching for gold and silver with
// last-known-good caching.
package metals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

const provider = "metals"

// gramsPerTroyOunce converts the feed's USD/oz quotes to per-gram prices
var gramsPerTroyOunce = decimal.NewFromFloat(31.1035)

// RateSource supplies currency conversion for the USD-denominated feed
type RateSource interface {
	Rate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

// Client fetches gold and silver spot prices from gold-api.com
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
	cache   domain.PriceCacheRepository
	rates   RateSource
}

// NewClient creates a new metals price client.
// cache is optional; if nil, stale fallback is disabled.
func NewClient(cache domain.PriceCacheRepository, rates RateSource, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://api.gold-api.com/price",
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "metals").Logger(),
		cache:   cache,
		rates:   rates,
	}
}

// symbolFor maps a metal to the feed's ticker symbol
func symbolFor(metal domain.Metal) string {
	if metal == domain.MetalSilver {
		return "XAG"
	}
	return "XAU"
}

// SpotPricePerGram returns the pure-metal spot price in INR per gram.
// On live fetch failure the last successfully fetched price is returned
// with Stale set; with nothing cached the fetch error propagates.
func (c *Client) SpotPricePerGram(ctx context.Context, metal domain.Metal) (domain.PriceQuote, error) {
	cacheKey := string(metal)

	usdPerOunce, err := c.fetchUSDPerOunce(ctx, metal)
	if err != nil {
		return c.staleQuote(ctx, cacheKey, err)
	}

	usdToINR, err := c.rates.Rate(ctx, "USD", "INR")
	if err != nil {
		return c.staleQuote(ctx, cacheKey, err)
	}

	inrPerGram := usdPerOunce.Mul(usdToINR).Div(gramsPerTroyOunce).Round(2)
	now := time.Now()

	if c.cache != nil {
		cached := &domain.CachedPrice{
			Provider:  provider,
			Key:       cacheKey,
			Price:     inrPerGram,
			FetchedAt: now,
		}
		if err := c.cache.Put(ctx, cached); err != nil {
			c.log.Warn().Err(err).Str("metal", cacheKey).Msg("Failed to cache spot price")
		}
	}

	c.log.Debug().
		Str("metal", cacheKey).
		Str("inr_per_gram", inrPerGram.String()).
		Msg("Fetched spot price")

	return domain.PriceQuote{Price: inrPerGram, AsOf: now}, nil
}

// fetchUSDPerOunce performs the live API call
func (c *Client) fetchUSDPerOunce(ctx context.Context, metal domain.Metal) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, symbolFor(metal))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Price <= 0 {
		return decimal.Zero, fmt.Errorf("feed returned non-positive price %f", result.Price)
	}

	return decimal.NewFromFloat(result.Price), nil
}

// staleQuote serves the last successfully fetched price after a live
// failure; stale data is better than no data
func (c *Client) staleQuote(ctx context.Context, cacheKey string, cause error) (domain.PriceQuote, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, provider, cacheKey)
		if err == nil && cached != nil {
			c.log.Warn().
				Err(cause).
				Str("metal", cacheKey).
				Str("price", cached.Price.String()).
				Msg("Feed failed, using stale cached spot price")
			return domain.PriceQuote{Price: cached.Price, AsOf: cached.FetchedAt, Stale: true}, nil
		}
	}

	return domain.PriceQuote{}, &domain.FetchError{Provider: provider, Key: cacheKey, Err: cause}
}
