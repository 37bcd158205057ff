package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// CollaboratorTimeout bounds every outbound call to an external
	// collaborator. Timeout is a hard failure on the critical path only.
	CollaboratorTimeout = 5 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// Conversion fee rates, applied to the converted amount before credit.
var (
	// CurrencyConversionFeeRate is 0.1% for currency-to-currency.
	CurrencyConversionFeeRate = decimal.RequireFromString("0.001")

	// AssetTokenConversionFeeRate is 0.2% for asset-token redemptions.
	AssetTokenConversionFeeRate = decimal.RequireFromString("0.002")
)
