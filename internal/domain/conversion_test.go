package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newCompletedConversion() *Conversion {
	rate := decimal.RequireFromString("0.9")
	from := decimal.NewFromInt(100)
	to := from.Mul(rate)
	fee := to.Mul(decimal.RequireFromString("0.001"))

	return &Conversion{
		ID:                  "conv-1",
		UserID:              "user-1",
		AccountID:           "acc-1",
		FromCurrency:        "USD",
		ToCurrency:          "EUR",
		FromAmount:          from,
		ToAmount:            to.Sub(fee),
		ExchangeRate:        rate,
		Fee:                 fee,
		Type:                ConversionTypeCurrency,
		Status:              ConversionStatusCompleted,
		DebitTransactionID:  "txn-1",
		CreditTransactionID: "txn-2",
		CreatedAt:           time.Now().UTC(),
	}
}

func TestConversion_Complete(t *testing.T) {
	conv := newCompletedConversion()
	conv.Status = ConversionStatusProcessing

	if err := conv.Complete(time.Now().UTC()); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if conv.Status != ConversionStatusCompleted {
		t.Errorf("status = %s, want completed", conv.Status)
	}

	// Completing twice is an illegal transition.
	if err := conv.Complete(time.Now().UTC()); err == nil {
		t.Error("second complete should fail")
	}
}

func TestConversion_Fail_FromCompleted(t *testing.T) {
	conv := newCompletedConversion()

	if err := conv.Fail(time.Now().UTC()); err == nil {
		t.Error("fail from completed should be rejected")
	}
}

func TestConversion_MarkReversed(t *testing.T) {
	conv := newCompletedConversion()

	if err := conv.MarkReversed("conv-2", "dispute", time.Now().UTC()); err != nil {
		t.Fatalf("reversal failed: %v", err)
	}

	if conv.Status != ConversionStatusReversed {
		t.Errorf("status = %s, want reversed", conv.Status)
	}

	// Single use: a reversed conversion cannot be reversed again.
	err := conv.MarkReversed("conv-3", "again", time.Now().UTC())
	if !errors.Is(err, ErrConversionAlreadyReversed) {
		t.Errorf("expected ErrConversionAlreadyReversed, got %v", err)
	}
}

func TestConversion_MarkReversed_FromProcessing(t *testing.T) {
	conv := newCompletedConversion()
	conv.Status = ConversionStatusProcessing

	err := conv.MarkReversed("conv-2", "dispute", time.Now().UTC())
	if !errors.Is(err, ErrConversionNotReversible) {
		t.Errorf("expected ErrConversionNotReversible, got %v", err)
	}
}

func TestConversion_BuildReversal(t *testing.T) {
	conv := newCompletedConversion()

	rev := conv.BuildReversal("conv-2", "dispute", time.Now().UTC())

	if rev.FromCurrency != conv.ToCurrency || rev.ToCurrency != conv.FromCurrency {
		t.Error("reversal must swap currencies")
	}

	if !rev.FromAmount.Equal(conv.ToAmount) || !rev.ToAmount.Equal(conv.FromAmount) {
		t.Error("reversal must swap amounts")
	}

	wantRate := decimal.NewFromInt(1).Div(conv.ExchangeRate)
	if !rev.ExchangeRate.Equal(wantRate) {
		t.Errorf("reversal rate = %s, want %s", rev.ExchangeRate, wantRate)
	}

	if !rev.Fee.IsZero() {
		t.Errorf("reversal fee = %s, want 0", rev.Fee)
	}

	if rev.Status != ConversionStatusProcessing {
		t.Errorf("reversal status = %s, want processing", rev.Status)
	}
}

func TestConversion_BuildReversal_NonPositiveRate(t *testing.T) {
	conv := newCompletedConversion()
	conv.ExchangeRate = decimal.Zero

	rev := conv.BuildReversal("conv-2", "dispute", time.Now().UTC())

	if !rev.ExchangeRate.IsZero() {
		t.Errorf("reversal rate = %s, want 0", rev.ExchangeRate)
	}
}
