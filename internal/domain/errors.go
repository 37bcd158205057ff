package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrAccountNotClosable = errors.New("account has non-zero balances")
	ErrCurrencyNotHeld    = errors.New("account does not hold this currency")
	ErrCurrencyInUse      = errors.New("currency has non-zero balances")

	// Operation errors
	ErrSameAccount      = errors.New("cannot transfer to same account")
	ErrSameCurrency     = errors.New("conversion currencies must differ")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")

	// Conversion errors
	ErrConversionNotFound           = errors.New("conversion not found")
	ErrConversionNotReversible      = errors.New("only a completed conversion can be reversed")
	ErrConversionAlreadyReversed    = errors.New("conversion has already been reversed")
	ErrAssetConversionNotReversible = errors.New("asset token conversions cannot be reversed")
)

// InsufficientBalanceError is returned when an operation asks for more
// than the account holds in the available bucket.
type InsufficientBalanceError struct {
	Currency  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested %s, available %s",
		e.Currency, e.Requested, e.Available)
}

// InsufficientBucketBalanceError is returned when a bucket mutation
// would drive that bucket negative.
type InsufficientBucketBalanceError struct {
	Currency  string
	Bucket    Bucket
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBucketBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance in %s bucket: requested %s, available %s",
		e.Currency, e.Bucket, e.Requested, e.Available)
}

// IllegalTransitionError is returned for an invalid transaction or
// conversion status change, naming the offending source state.
type IllegalTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal %s transition from %s to %s", e.Entity, e.From, e.To)
}

// ConversionFailedError wraps a collaborator failure that aborted a
// conversion.
type ConversionFailedError struct {
	Reason string
	Err    error
}

func (e *ConversionFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversion failed: %s: %v", e.Reason, e.Err)
	}

	return fmt.Sprintf("conversion failed: %s", e.Reason)
}

func (e *ConversionFailedError) Unwrap() error {
	return e.Err
}
