package pricesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/pkg/config"
)

// Client fetches coin market data from the CoinGecko API, the price
// source the mobile clients consumed directly.
type Client struct {
	baseURL    string
	vsCurrency string
	perPage    int
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     zerolog.Logger
}

func NewClient(cfg config.PriceSourceConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		vsCurrency: cfg.VsCurrency,
		perPage:    cfg.PerPage,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// Markets returns the ranked coin list with current prices and 24h
// change percentages.
func (c *Client) Markets(ctx context.Context) ([]domain.Coin, error) {
	query := url.Values{}
	query.Set("vs_currency", c.vsCurrency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(c.perPage))
	query.Set("page", "1")
	query.Set("sparkline", "false")
	query.Set("price_change_percentage", "24h")

	endpoint := c.baseURL + "/coins/markets?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(1<<(attempt-1))):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Price source request failed, retrying")
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			var coins []domain.Coin
			if err := json.Unmarshal(body, &coins); err != nil {
				return nil, fmt.Errorf("failed to unmarshal markets response: %w", err)
			}
			return coins, nil
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("server error (status %d): %s", resp.StatusCode, body)
			c.logger.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).Msg("Price source server error, retrying")
			continue
		}

		return nil, fmt.Errorf("client error (status %d): %s", resp.StatusCode, body)
	}

	return nil, fmt.Errorf("markets request failed after %d retries: %w", c.maxRetries, lastErr)
}
