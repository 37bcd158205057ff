package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newProcessingTransaction() *Transaction {
	return &Transaction{
		ID:        "txn-1",
		AccountID: "acc-1",
		UserID:    "user-1",
		Type:      TransactionTypeDeposit,
		Status:    TransactionStatusProcessing,
		Amount:    decimal.NewFromInt(100),
		Currency:  "USD",
		CreatedAt: time.Now().UTC(),
	}
}

func TestTransaction_Complete(t *testing.T) {
	tests := []struct {
		name        string
		from        TransactionStatus
		expectError bool
	}{
		{name: "from processing", from: TransactionStatusProcessing},
		{name: "from pending", from: TransactionStatusPending, expectError: true},
		{name: "from completed", from: TransactionStatusCompleted, expectError: true},
		{name: "from failed", from: TransactionStatusFailed, expectError: true},
		{name: "from cancelled", from: TransactionStatusCancelled, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := newProcessingTransaction()
			txn.Status = tt.from

			err := txn.Complete(time.Now().UTC())

			if tt.expectError {
				var transErr *IllegalTransitionError
				if !errors.As(err, &transErr) {
					t.Fatalf("expected IllegalTransitionError, got %v", err)
				}

				if transErr.From != string(tt.from) {
					t.Errorf("error names wrong source state: %s", transErr.From)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if txn.Status != TransactionStatusCompleted {
				t.Errorf("status = %s, want completed", txn.Status)
			}

			if txn.ProcessedAt == nil {
				t.Error("ProcessedAt not set")
			}
		})
	}
}

func TestTransaction_Fail(t *testing.T) {
	tests := []struct {
		name        string
		from        TransactionStatus
		expectError bool
	}{
		{name: "from processing", from: TransactionStatusProcessing},
		{name: "from pending", from: TransactionStatusPending},
		{name: "from completed", from: TransactionStatusCompleted, expectError: true},
		{name: "from reversed", from: TransactionStatusReversed, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := newProcessingTransaction()
			txn.Status = tt.from

			err := txn.Fail("balance mutation failed", time.Now().UTC())

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if txn.Status != TransactionStatusFailed {
				t.Errorf("status = %s, want failed", txn.Status)
			}

			if txn.FailureReason == "" {
				t.Error("failure reason not recorded")
			}
		})
	}
}

func TestTransaction_Cancel_FromCompleted(t *testing.T) {
	txn := newProcessingTransaction()
	if err := txn.Complete(time.Now().UTC()); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if err := txn.Cancel("user requested", time.Now().UTC()); err == nil {
		t.Error("cancel from completed should fail")
	}
}

func TestTransaction_MarkReversed(t *testing.T) {
	txn := newProcessingTransaction()

	// Only a completed transaction can be reversed.
	if err := txn.MarkReversed("txn-2", "dispute", time.Now().UTC()); err == nil {
		t.Fatal("reversal from processing should fail")
	}

	if err := txn.Complete(time.Now().UTC()); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if err := txn.MarkReversed("txn-2", "dispute", time.Now().UTC()); err != nil {
		t.Fatalf("reversal failed: %v", err)
	}

	if txn.Status != TransactionStatusReversed {
		t.Errorf("status = %s, want reversed", txn.Status)
	}

	if txn.ReversedTransactionID == nil || *txn.ReversedTransactionID != "txn-2" {
		t.Error("reversal link not recorded")
	}

	// A reversed transaction cannot be reversed again.
	if err := txn.MarkReversed("txn-3", "again", time.Now().UTC()); err == nil {
		t.Error("second reversal should fail")
	}
}

func TestTransaction_BuildReversal(t *testing.T) {
	tests := []struct {
		name     string
		origType TransactionType
		wantType TransactionType
	}{
		{name: "deposit", origType: TransactionTypeDeposit, wantType: TransactionTypeWithdrawal},
		{name: "withdrawal", origType: TransactionTypeWithdrawal, wantType: TransactionTypeDeposit},
		{name: "transfer out", origType: TransactionTypeTransferOut, wantType: TransactionTypeTransferIn},
		{name: "transfer in", origType: TransactionTypeTransferIn, wantType: TransactionTypeTransferOut},
		{name: "fee falls back to refund", origType: TransactionTypeFeeDeduction, wantType: TransactionTypeRefund},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := newProcessingTransaction()
			txn.Type = tt.origType

			rev := txn.BuildReversal("txn-2", "dispute", time.Now().UTC())

			if rev.Type != tt.wantType {
				t.Errorf("reversal type = %s, want %s", rev.Type, tt.wantType)
			}

			if !rev.Amount.Equal(txn.Amount) || rev.Currency != txn.Currency {
				t.Error("reversal must keep amount and currency")
			}

			if rev.RelatedTransactionID == nil || *rev.RelatedTransactionID != txn.ID {
				t.Error("reversal not linked to original")
			}

			if rev.Status != TransactionStatusProcessing {
				t.Errorf("reversal status = %s, want processing", rev.Status)
			}
		})
	}
}
