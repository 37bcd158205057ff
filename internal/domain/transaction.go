package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit              TransactionType = "deposit"
	TransactionTypeWithdrawal           TransactionType = "withdrawal"
	TransactionTypeTransferIn           TransactionType = "transfer_in"
	TransactionTypeTransferOut          TransactionType = "transfer_out"
	TransactionTypeCurrencyConversion   TransactionType = "currency_conversion"
	TransactionTypeAssetTokenConversion TransactionType = "asset_token_conversion"
	TransactionTypeCryptoPurchase       TransactionType = "crypto_purchase"
	TransactionTypeFeeDeduction         TransactionType = "fee_deduction"
	TransactionTypeRefund               TransactionType = "refund"
	TransactionTypeAdjustment           TransactionType = "adjustment"
)

// TransactionStatus is the state machine position of a transaction.
//
// pending -> processing -> {completed, failed, cancelled}
// completed -> reversed
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusCancelled  TransactionStatus = "cancelled"
	TransactionStatusReversed   TransactionStatus = "reversed"
)

// Transaction is a single ledger entry.
type Transaction struct {
	ID                    string
	AccountID             string
	UserID                string
	Type                  TransactionType
	Status                TransactionStatus
	Amount                decimal.Decimal
	Currency              string
	BalanceAfter          decimal.Decimal
	Description           string
	RelatedTransactionID  *string
	ConversionID          *string
	PaymentID             *string
	WorkflowID            *string
	FailureReason         string
	CancellationReason    string
	ReversalReason        string
	ReversedTransactionID *string
	Metadata              map[string]any
	ProcessedAt           *time.Time
	CreatedAt             time.Time
}

// Complete moves the transaction to COMPLETED. Legal only from PROCESSING.
func (t *Transaction) Complete(now time.Time) error {
	if t.Status != TransactionStatusProcessing {
		return &IllegalTransitionError{
			Entity: "transaction",
			From:   string(t.Status),
			To:     string(TransactionStatusCompleted),
		}
	}

	t.Status = TransactionStatusCompleted
	t.ProcessedAt = &now

	return nil
}

// Fail moves the transaction to FAILED with a reason. Illegal from COMPLETED.
func (t *Transaction) Fail(reason string, now time.Time) error {
	if t.Status == TransactionStatusCompleted || t.Status == TransactionStatusReversed {
		return &IllegalTransitionError{
			Entity: "transaction",
			From:   string(t.Status),
			To:     string(TransactionStatusFailed),
		}
	}

	t.Status = TransactionStatusFailed
	t.FailureReason = reason
	t.ProcessedAt = &now

	return nil
}

// Cancel moves the transaction to CANCELLED with a reason. Illegal from COMPLETED.
func (t *Transaction) Cancel(reason string, now time.Time) error {
	if t.Status == TransactionStatusCompleted || t.Status == TransactionStatusReversed {
		return &IllegalTransitionError{
			Entity: "transaction",
			From:   string(t.Status),
			To:     string(TransactionStatusCancelled),
		}
	}

	t.Status = TransactionStatusCancelled
	t.CancellationReason = reason
	t.ProcessedAt = &now

	return nil
}

// MarkReversed records that a compensating transaction was created for
// this one. Legal only from COMPLETED.
func (t *Transaction) MarkReversed(reversalID, reason string, now time.Time) error {
	if t.Status != TransactionStatusCompleted {
		return &IllegalTransitionError{
			Entity: "transaction",
			From:   string(t.Status),
			To:     string(TransactionStatusReversed),
		}
	}

	t.Status = TransactionStatusReversed
	t.ReversalReason = reason
	t.ReversedTransactionID = &reversalID
	t.ProcessedAt = &now

	return nil
}

// reversalTypes maps a transaction type to the type carrying the
// inverted economic effect.
var reversalTypes = map[TransactionType]TransactionType{
	TransactionTypeDeposit:     TransactionTypeWithdrawal,
	TransactionTypeWithdrawal:  TransactionTypeDeposit,
	TransactionTypeTransferIn:  TransactionTypeTransferOut,
	TransactionTypeTransferOut: TransactionTypeTransferIn,
}

// BuildReversal constructs the compensating transaction for a completed
// transaction. The original is never edited in place; both sides are
// cross-linked by the caller after persisting.
func (t *Transaction) BuildReversal(id, reason string, now time.Time) *Transaction {
	revType, ok := reversalTypes[t.Type]
	if !ok {
		revType = TransactionTypeRefund
	}

	original := t.ID

	return &Transaction{
		ID:                   id,
		AccountID:            t.AccountID,
		UserID:               t.UserID,
		Type:                 revType,
		Status:               TransactionStatusProcessing,
		Amount:               t.Amount,
		Currency:             t.Currency,
		Description:          "reversal of " + t.ID,
		RelatedTransactionID: &original,
		ReversalReason:       reason,
		CreatedAt:            now,
	}
}

// IsDebit reports whether the type removes funds from the account.
func (t *Transaction) IsDebit() bool {
	switch t.Type {
	case TransactionTypeWithdrawal, TransactionTypeTransferOut,
		TransactionTypeCryptoPurchase, TransactionTypeFeeDeduction:
		return true
	default:
		return false
	}
}
