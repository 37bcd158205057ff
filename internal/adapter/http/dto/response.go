package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BalanceResponse represents one currency position on an account.
type BalanceResponse struct {
	Available   decimal.Decimal `json:"available"`
	Pending     decimal.Decimal `json:"pending"`
	Reserved    decimal.Decimal `json:"reserved"`
	Frozen      decimal.Decimal `json:"frozen"`
	Total       decimal.Decimal `json:"total"`
	LastUpdated time.Time       `json:"last_updated"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID              string                     `json:"id"`
	UserID          string                     `json:"user_id"`
	Status          string                     `json:"status"`
	DefaultCurrency string                     `json:"default_currency"`
	Balances        map[string]BalanceResponse `json:"balances"`
	Metadata        map[string]any             `json:"metadata,omitempty"`
	Version         int64                      `json:"version"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) AccountResponse {
	balances := make(map[string]BalanceResponse, len(a.Balances))
	for currency, b := range a.Balances {
		balances[currency] = BalanceResponse{
			Available:   b.Available,
			Pending:     b.Pending,
			Reserved:    b.Reserved,
			Frozen:      b.Frozen,
			Total:       b.Total(),
			LastUpdated: b.LastUpdated,
		}
	}

	return AccountResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		Status:          string(a.Status),
		DefaultCurrency: a.DefaultCurrency,
		Balances:        balances,
		Metadata:        a.Metadata,
		Version:         a.Version,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// AccountsFromDomain converts a slice of domain accounts.
func AccountsFromDomain(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = AccountFromDomain(a)
	}

	return out
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int64             `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                    string          `json:"id"`
	AccountID             string          `json:"account_id"`
	UserID                string          `json:"user_id,omitempty"`
	Type                  string          `json:"type"`
	Status                string          `json:"status"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	BalanceAfter          decimal.Decimal `json:"balance_after"`
	Description           string          `json:"description,omitempty"`
	RelatedTransactionID  *string         `json:"related_transaction_id,omitempty"`
	ConversionID          *string         `json:"conversion_id,omitempty"`
	PaymentID             *string         `json:"payment_id,omitempty"`
	WorkflowID            *string         `json:"workflow_id,omitempty"`
	FailureReason         string          `json:"failure_reason,omitempty"`
	CancellationReason    string          `json:"cancellation_reason,omitempty"`
	ReversalReason        string          `json:"reversal_reason,omitempty"`
	ReversedTransactionID *string         `json:"reversed_transaction_id,omitempty"`
	Metadata              map[string]any  `json:"metadata,omitempty"`
	ProcessedAt           *time.Time      `json:"processed_at,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                    t.ID,
		AccountID:             t.AccountID,
		UserID:                t.UserID,
		Type:                  string(t.Type),
		Status:                string(t.Status),
		Amount:                t.Amount,
		Currency:              t.Currency,
		BalanceAfter:          t.BalanceAfter,
		Description:           t.Description,
		RelatedTransactionID:  t.RelatedTransactionID,
		ConversionID:          t.ConversionID,
		PaymentID:             t.PaymentID,
		WorkflowID:            t.WorkflowID,
		FailureReason:         t.FailureReason,
		CancellationReason:    t.CancellationReason,
		ReversalReason:        t.ReversalReason,
		ReversedTransactionID: t.ReversedTransactionID,
		Metadata:              t.Metadata,
		ProcessedAt:           t.ProcessedAt,
		CreatedAt:             t.CreatedAt,
	}
}

// TransactionsFromDomain converts a slice of domain transactions.
func TransactionsFromDomain(txns []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = TransactionFromDomain(t)
	}

	return out
}

// ListTransactionsResponse represents a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}

// TransferResponse carries the two legs of a completed transfer.
type TransferResponse struct {
	Outgoing TransactionResponse `json:"outgoing"`
	Incoming TransactionResponse `json:"incoming"`
}

// AssetTokenResponse describes the token side of an asset conversion.
type AssetTokenResponse struct {
	AssetID     string          `json:"asset_id"`
	TokenType   string          `json:"token_type"`
	TokenAmount decimal.Decimal `json:"token_amount"`
}

// MarketDataResponse describes the market context of a conversion.
type MarketDataResponse struct {
	SpotRate   decimal.Decimal `json:"spot_rate"`
	Spread     decimal.Decimal `json:"spread"`
	Volatility decimal.Decimal `json:"volatility"`
	Source     string          `json:"source"`
}

// ConversionResponse represents a conversion in API responses.
type ConversionResponse struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"user_id,omitempty"`
	AccountID            string              `json:"account_id"`
	FromCurrency         string              `json:"from_currency"`
	ToCurrency           string              `json:"to_currency"`
	FromAmount           decimal.Decimal     `json:"from_amount"`
	ToAmount             decimal.Decimal     `json:"to_amount"`
	ExchangeRate         decimal.Decimal     `json:"exchange_rate"`
	Fee                  decimal.Decimal     `json:"fee"`
	Type                 string              `json:"type"`
	Status               string              `json:"status"`
	DebitTransactionID   string              `json:"debit_transaction_id,omitempty"`
	CreditTransactionID  string              `json:"credit_transaction_id,omitempty"`
	AssetToken           *AssetTokenResponse `json:"asset_token,omitempty"`
	Market               *MarketDataResponse `json:"market,omitempty"`
	ReversalReason       string              `json:"reversal_reason,omitempty"`
	ReversedConversionID *string             `json:"reversed_conversion_id,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// ConversionFromDomain converts a domain conversion to a response.
func ConversionFromDomain(c *domain.Conversion) ConversionResponse {
	resp := ConversionResponse{
		ID:                   c.ID,
		UserID:               c.UserID,
		AccountID:            c.AccountID,
		FromCurrency:         c.FromCurrency,
		ToCurrency:           c.ToCurrency,
		FromAmount:           c.FromAmount,
		ToAmount:             c.ToAmount,
		ExchangeRate:         c.ExchangeRate,
		Fee:                  c.Fee,
		Type:                 string(c.Type),
		Status:               string(c.Status),
		DebitTransactionID:   c.DebitTransactionID,
		CreditTransactionID:  c.CreditTransactionID,
		ReversalReason:       c.ReversalReason,
		ReversedConversionID: c.ReversedConversionID,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}

	if c.AssetToken != nil {
		resp.AssetToken = &AssetTokenResponse{
			AssetID:     c.AssetToken.AssetID,
			TokenType:   c.AssetToken.TokenType,
			TokenAmount: c.AssetToken.TokenAmount,
		}
	}

	if c.Market != nil {
		resp.Market = &MarketDataResponse{
			SpotRate:   c.Market.SpotRate,
			Spread:     c.Market.Spread,
			Volatility: c.Market.Volatility,
			Source:     c.Market.Source,
		}
	}

	return resp
}

// ConversionsFromDomain converts a slice of domain conversions.
func ConversionsFromDomain(convs []*domain.Conversion) []ConversionResponse {
	out := make([]ConversionResponse, len(convs))
	for i, c := range convs {
		out[i] = ConversionFromDomain(c)
	}

	return out
}

// ListConversionsResponse represents a list of conversions.
type ListConversionsResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
	Total       int64                `json:"total"`
}

// AggregateResponse represents one row of a grouped transaction summary.
type AggregateResponse struct {
	GroupKey    string          `json:"group_key"`
	Currency    string          `json:"currency"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// AggregatesFromUseCase converts transaction aggregates.
func AggregatesFromUseCase(rows []usecase.TransactionAggregate) []AggregateResponse {
	out := make([]AggregateResponse, len(rows))
	for i, row := range rows {
		out[i] = AggregateResponse{
			GroupKey:    row.GroupKey,
			Currency:    row.Currency,
			Count:       row.Count,
			TotalAmount: row.TotalAmount,
		}
	}

	return out
}

// ConversionAggregateResponse represents one row of a grouped conversion summary.
type ConversionAggregateResponse struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Count        int64           `json:"count"`
	TotalFrom    decimal.Decimal `json:"total_from"`
	TotalFees    decimal.Decimal `json:"total_fees"`
}

// ConversionAggregatesFromUseCase converts conversion aggregates.
func ConversionAggregatesFromUseCase(rows []usecase.ConversionAggregate) []ConversionAggregateResponse {
	out := make([]ConversionAggregateResponse, len(rows))
	for i, row := range rows {
		out[i] = ConversionAggregateResponse{
			FromCurrency: row.FromCurrency,
			ToCurrency:   row.ToCurrency,
			Count:        row.Count,
			TotalFrom:    row.TotalFrom,
			TotalFees:    row.TotalFees,
		}
	}

	return out
}

// BalanceTotalsResponse represents platform-wide balance totals per currency.
type BalanceTotalsResponse struct {
	Totals map[string]decimal.Decimal `json:"totals"`
}

// AuditLogResponse represents one audit trail entry.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	RequestID    string      `json:"request_id,omitempty"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogFromDomain converts a domain audit log to a response.
func AuditLogFromDomain(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		RequestID:    l.RequestID,
		BeforeState:  l.BeforeState,
		AfterState:   l.AfterState,
		Status:       l.Status,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

// AuditLogsFromDomain converts a slice of domain audit logs.
func AuditLogsFromDomain(logs []*domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		out[i] = AuditLogFromDomain(l)
	}

	return out
}

// ListAuditLogsResponse represents a list of audit logs.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
	Total     int64              `json:"total"`
}
