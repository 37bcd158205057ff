package dto

import (
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	UserID          string         `json:"user_id"`
	DefaultCurrency string         `json:"default_currency"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		UserID:          r.UserID,
		DefaultCurrency: r.DefaultCurrency,
		Metadata:        r.Metadata,
	}
}

// UpdateAccountStatusRequest represents a request to change account status.
type UpdateAccountStatusRequest struct {
	Status string `json:"status"`
}

// CurrencyRequest names a currency to add to or remove from an account.
type CurrencyRequest struct {
	Currency string `json:"currency"`
}

// DepositRequest represents a request to credit an account.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	PaymentID   *string         `json:"payment_id,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// WithdrawRequest represents a request to debit an account.
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// ChargeRequest represents a fiat charge backing an external crypto purchase.
type ChargeRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	PaymentID   *string         `json:"payment_id,omitempty"`
	WorkflowID  *string         `json:"workflow_id,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// TransferRequest represents a request to move funds between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Description:   r.Description,
		Metadata:      r.Metadata,
	}
}

// BucketMoveRequest represents a reserve, release, freeze or unfreeze request.
type BucketMoveRequest struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// ReverseRequest carries the operator-supplied reason for a reversal.
type ReverseRequest struct {
	Reason string `json:"reason"`
}

// ConvertCurrencyRequest represents a currency conversion request.
type ConvertCurrencyRequest struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	FromAmount   decimal.Decimal `json:"from_amount"`
	Description  string          `json:"description,omitempty"`
}

// ConvertAssetTokenRequest represents an asset token to fiat conversion request.
type ConvertAssetTokenRequest struct {
	AssetID     string          `json:"asset_id"`
	TokenType   string          `json:"token_type"`
	TokenAmount decimal.Decimal `json:"token_amount"`
	Description string          `json:"description,omitempty"`
}
