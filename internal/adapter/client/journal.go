package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/usecase"
)

// JournalClient implements usecase.JournalRecorder against the journal
// of record.
type JournalClient struct {
	baseClient
}

func NewJournalClient(baseURL, apiKey string, logger zerolog.Logger) *JournalClient {
	return &JournalClient{
		baseClient: newBaseClient(baseURL, apiKey, logger.With().Str("client", "journal").Logger()),
	}
}

type journalEntryRequest struct {
	UserID        string          `json:"user_id"`
	AccountID     string          `json:"account_id"`
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// Record posts a journal entry. Callers treat failures as best-effort.
func (c *JournalClient) Record(ctx context.Context, entry usecase.JournalEntry) error {
	req := journalEntryRequest{
		UserID:        entry.UserID,
		AccountID:     entry.AccountID,
		TransactionID: entry.TransactionID,
		Type:          entry.Type,
		Amount:        entry.Amount,
		Currency:      entry.Currency,
		Description:   entry.Description,
		Metadata:      entry.Metadata,
	}

	if err := c.doJSON(ctx, http.MethodPost, "/journal-entries", req, nil); err != nil {
		return fmt.Errorf("record journal entry for %s: %w", entry.TransactionID, err)
	}

	return nil
}
