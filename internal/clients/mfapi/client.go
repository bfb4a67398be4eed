// Package mfapi provides mutual fund NAV fetching from api.mfapi.in with
// last-known-good caching.
package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

const provider = "mfapi"

// navDateFormat is the date layout used by api.mfapi.in ("21-08-2026")
const navDateFormat = "02-01-2006"

// Client for api.mfapi.in, the free AMFI mutual fund data API
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
	cache   domain.PriceCacheRepository
}

// NewClient creates a new mfapi.in client.
// cache is optional; if nil, stale fallback is disabled.
func NewClient(cache domain.PriceCacheRepository, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://api.mfapi.in",
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "mfapi").Logger(),
		cache:   cache,
	}
}

// navResponse mirrors the /mf/{code}/latest payload
type navResponse struct {
	Meta struct {
		SchemeName string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

// LatestNAV fetches the latest NAV for an AMFI scheme code.
// On live fetch failure the last successfully fetched NAV is returned with
// Stale set; with nothing cached the fetch error propagates.
func (c *Client) LatestNAV(ctx context.Context, schemeCode string) (domain.PriceQuote, error) {
	quote, err := c.fetchLatest(ctx, schemeCode)
	if err != nil {
		return c.staleQuote(ctx, schemeCode, err)
	}

	if c.cache != nil {
		cached := &domain.CachedPrice{
			Provider:  provider,
			Key:       schemeCode,
			Price:     quote.Price,
			FetchedAt: time.Now(),
		}
		if err := c.cache.Put(ctx, cached); err != nil {
			c.log.Warn().Err(err).Str("scheme", schemeCode).Msg("Failed to cache NAV")
		}
	}

	c.log.Debug().
		Str("scheme", schemeCode).
		Str("nav", quote.Price.String()).
		Msg("Fetched NAV")

	return quote, nil
}

// fetchLatest performs the live API call
func (c *Client) fetchLatest(ctx context.Context, schemeCode string) (domain.PriceQuote, error) {
	endpoint := fmt.Sprintf("%s/mf/%s/latest", c.baseURL, url.PathEscape(schemeCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.PriceQuote{}, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result navResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.PriceQuote{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Data) == 0 {
		return domain.PriceQuote{}, fmt.Errorf("no NAV data for scheme %s", schemeCode)
	}

	nav, err := decimal.NewFromString(result.Data[0].NAV)
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("failed to parse NAV %q: %w", result.Data[0].NAV, err)
	}

	asOf, err := time.Parse(navDateFormat, result.Data[0].Date)
	if err != nil {
		asOf = time.Now()
	}

	return domain.PriceQuote{Price: nav, AsOf: asOf}, nil
}

// staleQuote serves the last successfully fetched NAV after a live failure
func (c *Client) staleQuote(ctx context.Context, schemeCode string, cause error) (domain.PriceQuote, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, provider, schemeCode)
		if err == nil && cached != nil {
			c.log.Warn().
				Err(cause).
				Str("scheme", schemeCode).
				Str("nav", cached.Price.String()).
				Msg("API failed, using stale cached NAV")
			return domain.PriceQuote{Price: cached.Price, AsOf: cached.FetchedAt, Stale: true}, nil
		}
	}

	return domain.PriceQuote{}, &domain.FetchError{Provider: provider, Key: schemeCode, Err: cause}
}

// FundSearchResult is a single hit from the fund search endpoint
type FundSearchResult struct {
	SchemeCode int    `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
}

// Search finds mutual funds by name fragment
func (c *Client) Search(ctx context.Context, query string) ([]FundSearchResult, error) {
	endpoint := fmt.Sprintf("%s/mf/search?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Provider: provider, Key: query, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{
			Provider: provider,
			Key:      query,
			Err:      fmt.Errorf("API returned status %d", resp.StatusCode),
		}
	}

	var results []FundSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return results, nil
}
