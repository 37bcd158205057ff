package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall   = errors.New("amount below minimum allowed")
	ErrMetadataTooLarge = errors.New("metadata size exceeds limit")
)

// Validation constants
const (
	MaxMetadataSize = 10240           // 10KB
	MaxAmount       = "1000000000000" // 1 trillion
	MinAmount       = "0.00000001"
)

// Valid fiat currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "TRY": true, "HKD": true, "AED": true,
}

// Crypto currency codes accepted alongside fiat.
var validCryptoCurrencies = map[string]bool{
	"BTC": true, "ETH": true, "USDT": true, "USDC": true, "SOL": true,
}

// NormalizeCurrency validates a currency code against the supported
// fiat and crypto sets and returns its canonical uppercase form.
// Balance buckets are keyed by the canonical form, so "usd" and "USD"
// must resolve to the same bucket.
func NormalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] && !validCryptoCurrencies[currency] {
		return "", fmt.Errorf("%w: %s is not a supported currency code", ErrInvalidCurrency, currency)
	}

	return currency, nil
}

// ValidateCurrency validates a currency code against the supported
// fiat and crypto sets.
func ValidateCurrency(currency string) error {
	_, err := NormalizeCurrency(currency)

	return err
}

// ValidateAmount validates a monetary operation amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount, _ := decimal.NewFromString(MinAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateMetadata validates metadata size.
func ValidateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}

	// Estimate size (rough approximation)
	size := 0
	for k, v := range metadata {
		size += len(k)
		size += len(fmt.Sprintf("%v", v))
	}

	if size > MaxMetadataSize {
		return fmt.Errorf("%w: metadata size %d bytes exceeds limit of %d bytes", ErrMetadataTooLarge, size, MaxMetadataSize)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
