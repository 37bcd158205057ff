package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/usecase"
)

// RateClient implements usecase.RateProvider against the exchange rate
// service.
type RateClient struct {
	baseClient
}

func NewRateClient(baseURL, apiKey string, logger zerolog.Logger) *RateClient {
	return &RateClient{
		baseClient: newBaseClient(baseURL, apiKey, logger.With().Str("client", "rates").Logger()),
	}
}

type rateResponse struct {
	Rate      decimal.Decimal `json:"rate"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
}

// GetRate fetches the current exchange rate for a currency pair.
func (c *RateClient) GetRate(ctx context.Context, fromCurrency, toCurrency string) (usecase.RateQuote, error) {
	path := fmt.Sprintf("/rates/%s/%s",
		url.PathEscape(fromCurrency), url.PathEscape(toCurrency))

	var resp rateResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return usecase.RateQuote{}, fmt.Errorf("get rate %s/%s: %w", fromCurrency, toCurrency, err)
	}

	if resp.Rate.LessThanOrEqual(decimal.Zero) {
		return usecase.RateQuote{}, fmt.Errorf("get rate %s/%s: non-positive rate %s", fromCurrency, toCurrency, resp.Rate)
	}

	return usecase.RateQuote{
		Rate:      resp.Rate,
		Timestamp: resp.Timestamp,
		Source:    resp.Source,
	}, nil
}
