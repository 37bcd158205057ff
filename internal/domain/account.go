package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the administrative lifecycle state of an account.
// It is independent of the transaction state machine.
type AccountStatus string

const (
	AccountStatusActive              AccountStatus = "active"
	AccountStatusSuspended           AccountStatus = "suspended"
	AccountStatusFrozen              AccountStatus = "frozen"
	AccountStatusClosed              AccountStatus = "closed"
	AccountStatusPendingVerification AccountStatus = "pending_verification"
)

// Bucket names a sub-balance of a currency on an account.
type Bucket string

const (
	BucketAvailable Bucket = "available"
	BucketPending   Bucket = "pending"
	BucketReserved  Bucket = "reserved"
	BucketFrozen    Bucket = "frozen"
)

// CurrencyBalance holds the four sub-balances for one currency.
// Every bucket is >= 0 at all times.
type CurrencyBalance struct {
	Available   decimal.Decimal
	Pending     decimal.Decimal
	Reserved    decimal.Decimal
	Frozen      decimal.Decimal
	LastUpdated time.Time
}

// Total returns the sum across all four buckets.
func (b *CurrencyBalance) Total() decimal.Decimal {
	return b.Available.Add(b.Pending).Add(b.Reserved).Add(b.Frozen)
}

// IsZero reports whether all four buckets are exactly zero.
func (b *CurrencyBalance) IsZero() bool {
	return b.Available.IsZero() && b.Pending.IsZero() && b.Reserved.IsZero() && b.Frozen.IsZero()
}

func (b *CurrencyBalance) bucket(bucket Bucket) *decimal.Decimal {
	switch bucket {
	case BucketPending:
		return &b.Pending
	case BucketReserved:
		return &b.Reserved
	case BucketFrozen:
		return &b.Frozen
	default:
		return &b.Available
	}
}

// Account is the aggregate holding per-currency balance buckets.
type Account struct {
	ID              string
	UserID          string
	Status          AccountStatus
	DefaultCurrency string
	Balances        map[string]*CurrencyBalance
	Metadata        map[string]any
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive reports whether the account accepts ledger operations.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// EnsureCurrency creates a zeroed balance entry for currency if absent.
// Currency entries are created explicitly here, never as a hidden
// side effect of persistence.
func (a *Account) EnsureCurrency(currency string, now time.Time) *CurrencyBalance {
	if a.Balances == nil {
		a.Balances = make(map[string]*CurrencyBalance)
	}

	bal, ok := a.Balances[currency]
	if !ok {
		bal = &CurrencyBalance{
			Available:   decimal.Zero,
			Pending:     decimal.Zero,
			Reserved:    decimal.Zero,
			Frozen:      decimal.Zero,
			LastUpdated: now,
		}
		a.Balances[currency] = bal
	}

	return bal
}

// Balance returns the amount held in the named bucket for currency.
// Unknown currencies report zero; this never errors.
func (a *Account) Balance(currency string, bucket Bucket) decimal.Decimal {
	bal, ok := a.Balances[currency]
	if !ok {
		return decimal.Zero
	}

	return *bal.bucket(bucket)
}

// Total returns the sum of all buckets for currency.
func (a *Account) Total(currency string) decimal.Decimal {
	bal, ok := a.Balances[currency]
	if !ok {
		return decimal.Zero
	}

	return bal.Total()
}

// HasBalance reports whether the bucket holds at least amount.
func (a *Account) HasBalance(currency string, amount decimal.Decimal, bucket Bucket) bool {
	return a.Balance(currency, bucket).GreaterThanOrEqual(amount)
}

// ApplyDelta adds a signed delta to the named bucket, creating the
// currency entry if absent. Fails without mutation if the result
// would be negative.
func (a *Account) ApplyDelta(currency string, delta decimal.Decimal, bucket Bucket, now time.Time) error {
	bal := a.EnsureCurrency(currency, now)

	target := bal.bucket(bucket)

	next := target.Add(delta)
	if next.IsNegative() {
		return &InsufficientBucketBalanceError{
			Currency:  currency,
			Bucket:    bucket,
			Requested: delta.Neg(),
			Available: *target,
		}
	}

	*target = next
	bal.LastUpdated = now
	a.UpdatedAt = now

	return nil
}

// move shifts amount from one bucket to another for the same currency.
// The per-currency total is invariant under a move.
func (a *Account) move(currency string, amount decimal.Decimal, from, to Bucket, now time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	bal := a.EnsureCurrency(currency, now)

	src := bal.bucket(from)
	if src.LessThan(amount) {
		return &InsufficientBucketBalanceError{
			Currency:  currency,
			Bucket:    from,
			Requested: amount,
			Available: *src,
		}
	}

	dst := bal.bucket(to)
	*src = src.Sub(amount)
	*dst = dst.Add(amount)
	bal.LastUpdated = now
	a.UpdatedAt = now

	return nil
}

// Reserve moves amount from AVAILABLE to RESERVED.
func (a *Account) Reserve(currency string, amount decimal.Decimal, now time.Time) error {
	return a.move(currency, amount, BucketAvailable, BucketReserved, now)
}

// ReleaseReserved moves amount from RESERVED back to AVAILABLE.
func (a *Account) ReleaseReserved(currency string, amount decimal.Decimal, now time.Time) error {
	return a.move(currency, amount, BucketReserved, BucketAvailable, now)
}

// Freeze moves amount from AVAILABLE to FROZEN.
func (a *Account) Freeze(currency string, amount decimal.Decimal, now time.Time) error {
	return a.move(currency, amount, BucketAvailable, BucketFrozen, now)
}

// Unfreeze moves amount from FROZEN back to AVAILABLE.
func (a *Account) Unfreeze(currency string, amount decimal.Decimal, now time.Time) error {
	return a.move(currency, amount, BucketFrozen, BucketAvailable, now)
}

// AddCurrency adds a zeroed balance entry. Idempotent.
func (a *Account) AddCurrency(currency string, now time.Time) {
	a.EnsureCurrency(currency, now)
}

// RemoveCurrency deletes the balance entry for currency. Fails unless
// all four buckets are exactly zero.
func (a *Account) RemoveCurrency(currency string) error {
	bal, ok := a.Balances[currency]
	if !ok {
		return ErrCurrencyNotHeld
	}

	if !bal.IsZero() {
		return ErrCurrencyInUse
	}

	delete(a.Balances, currency)

	return nil
}

// CanClose reports whether every bucket of every currency is zero.
func (a *Account) CanClose() bool {
	for _, bal := range a.Balances {
		if !bal.IsZero() {
			return false
		}
	}

	return true
}
