package domain

import "time"

// Event types
const (
	EventTypeAccountOpened        = "account.opened"
	EventTypeAccountStatusChanged = "account.status_changed"
	EventTypeTransactionCompleted = "transaction.completed"
	EventTypeTransactionFailed    = "transaction.failed"
	EventTypeTransactionReversed  = "transaction.reversed"
	EventTypeConversionCompleted  = "conversion.completed"
	EventTypeConversionReversed   = "conversion.reversed"
	EventTypeTokenBurnFailed      = "conversion.token_burn_failed"
)

// Aggregate types
const (
	AggregateTypeAccount     = "account"
	AggregateTypeTransaction = "transaction"
	AggregateTypeConversion  = "conversion"
)

// OutboxEvent represents an event to be published.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionCompletedEvent payload
type TransactionCompletedEvent struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	BalanceAfter  string `json:"balance_after"`
}

// ConversionCompletedEvent payload
type ConversionCompletedEvent struct {
	ConversionID string `json:"conversion_id"`
	AccountID    string `json:"account_id"`
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	FromAmount   string `json:"from_amount"`
	ToAmount     string `json:"to_amount"`
	ExchangeRate string `json:"exchange_rate"`
	Fee          string `json:"fee"`
}

// TokenBurnFailedEvent flags a credited conversion whose token burn did
// not go through. Operators retry the burn from this record.
type TokenBurnFailedEvent struct {
	ConversionID string `json:"conversion_id"`
	AssetID      string `json:"asset_id"`
	TokenType    string `json:"token_type"`
	TokenAmount  string `json:"token_amount"`
	Reason       string `json:"reason"`
}

// AccountOpenedEvent payload
type AccountOpenedEvent struct {
	AccountID       string `json:"account_id"`
	UserID          string `json:"user_id"`
	DefaultCurrency string `json:"default_currency"`
}
