// Package exchangerate provides currency exchange rate fetching with
// last-known-good caching.
package exchangerate

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

const provider = "exchangerate"

// Client for exchangerate-api.com
type Client struct {
	baseURL      string
	client       *http.Client
	log          zerolog.Logger
	cache        domain.PriceCacheRepository
	fallbackRate decimal.Decimal
}

// NewClient creates a new exchangerate-api.com client.
// cache is optional; if nil, stale fallback is disabled. fallbackRate is the
// USD->INR rate of last resort when neither the API nor the cache can serve.
func NewClient(cache domain.PriceCacheRepository, fallbackRate float64, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:      "https://api.exchangerate-api.com/v4/latest",
		client:       &http.Client{Timeout: timeout},
		log:          log.With().Str("client", "exchangerate-api").Logger(),
		cache:        cache,
		fallbackRate: decimal.NewFromFloat(fallbackRate),
	}
}

// Rate fetches the exchange rate for a currency pair.
// If the API fails, returns stale cached data if available, then the
// configured fallback rate for USD->INR (stale data > no data).
func (c *Client) Rate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return decimal.NewFromInt(1), nil
	}

	cacheKey := fromCurrency + ":" + toCurrency

	url := fmt.Sprintf("%s/%s", c.baseURL, fromCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.fallback(cacheKey, fromCurrency, toCurrency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fallback(cacheKey, fromCurrency, toCurrency, fmt.Errorf("API returned status %d", resp.StatusCode))
	}

	var result struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.fallback(cacheKey, fromCurrency, toCurrency, fmt.Errorf("failed to parse response: %w", err))
	}

	rate, exists := result.Rates[toCurrency]
	if !exists {
		return c.fallback(cacheKey, fromCurrency, toCurrency, fmt.Errorf("rate not found for %s->%s", fromCurrency, toCurrency))
	}

	price := decimal.NewFromFloat(rate)

	if c.cache != nil {
		cached := &domain.CachedPrice{
			Provider:  provider,
			Key:       cacheKey,
			Price:     price,
			FetchedAt: time.Now(),
		}
		if err := c.cache.Put(ctx, cached); err != nil {
			c.log.Warn().Err(err).Str("pair", cacheKey).Msg("Failed to cache exchange rate")
		}
	}

	c.log.Debug().
		Str("from", fromCurrency).
		Str("to", toCurrency).
		Float64("rate", rate).
		Msg("Fetched rate")

	return price, nil
}

// fallback serves a stale cached rate, then the configured rate of last
// resort for USD->INR
func (c *Client) fallback(cacheKey, fromCurrency, toCurrency string, cause error) (decimal.Decimal, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(context.Background(), provider, cacheKey)
		if err == nil && cached != nil {
			c.log.Warn().
				Err(cause).
				Str("pair", cacheKey).
				Str("rate", cached.Price.String()).
				Msg("API failed, using stale cached rate")
			return cached.Price, nil
		}
	}

	if fromCurrency == "USD" && toCurrency == "INR" && c.fallbackRate.IsPositive() {
		c.log.Warn().
			Err(cause).
			Str("rate", c.fallbackRate.String()).
			Msg("API failed with empty cache, using configured fallback rate")
		return c.fallbackRate, nil
	}

	return decimal.Zero, &domain.FetchError{Provider: provider, Key: cacheKey, Err: cause}
}
