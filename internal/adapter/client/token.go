package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/usecase"
)

// TokenClient implements usecase.TokenizationService against the asset
// tokenization platform.
type TokenClient struct {
	baseClient
}

func NewTokenClient(baseURL, apiKey string, logger zerolog.Logger) *TokenClient {
	return &TokenClient{
		baseClient: newBaseClient(baseURL, apiKey, logger.With().Str("client", "tokenization").Logger()),
	}
}

type tokenValueResponse struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

type burnTokensRequest struct {
	TokenType   string          `json:"token_type"`
	TokenAmount decimal.Decimal `json:"token_amount"`
}

// GetTokenValue returns the current fiat value of a token position.
func (c *TokenClient) GetTokenValue(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error) {
	query := url.Values{}
	query.Set("tokenType", tokenType)
	query.Set("amount", amount.String())
	path := fmt.Sprintf("/tokens/%s/value?%s", url.PathEscape(assetID), query.Encode())

	var resp tokenValueResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return usecase.TokenValuation{}, fmt.Errorf("value tokens for asset %s: %w", assetID, err)
	}

	return usecase.TokenValuation{Value: resp.Value, Currency: resp.Currency}, nil
}

// BurnTokens destroys the consumed tokens after a redemption.
func (c *TokenClient) BurnTokens(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) error {
	req := burnTokensRequest{TokenType: tokenType, TokenAmount: amount}
	path := fmt.Sprintf("/tokens/%s/burn", url.PathEscape(assetID))

	if err := c.doJSON(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("burn tokens for asset %s: %w", assetID, err)
	}

	return nil
}
