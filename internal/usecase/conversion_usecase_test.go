package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
	"github.com/avelora/fincore/internal/usecase/mocks"
)

type conversionFixture struct {
	accRepo  *mocks.MockAccountRepository
	txnRepo  *mocks.MockTransactionRepository
	convRepo *mocks.MockConversionRepository
	outbox   *mocks.MockOutboxRepository
	audit    *mocks.MockAuditRepository
	txMgr    *mocks.MockTransactionManager
	idGen    *mocks.MockIDGenerator
	rates    *mocks.MockRateProvider
	tokens   *mocks.MockTokenizationService
	uc       *usecase.ConversionUseCase
}

func newConversionFixture() *conversionFixture {
	f := &conversionFixture{
		accRepo:  mocks.NewMockAccountRepository(),
		txnRepo:  mocks.NewMockTransactionRepository(),
		convRepo: mocks.NewMockConversionRepository(),
		outbox:   mocks.NewMockOutboxRepository(),
		audit:    mocks.NewMockAuditRepository(),
		txMgr:    mocks.NewMockTransactionManager(),
		idGen:    mocks.NewMockIDGenerator(),
		rates:    mocks.NewMockRateProvider(),
		tokens:   mocks.NewMockTokenizationService(),
	}
	f.uc = usecase.NewConversionUseCase(
		f.txMgr, f.accRepo, f.txnRepo, f.convRepo, f.outbox, f.audit,
		f.idGen, f.rates, f.tokens,
		mocks.NewMockJournalRecorder(), mocks.NewMockNotifier(),
		nil, zerolog.Nop(),
	)
	return f
}

func TestConversionUseCase_ConvertCurrency(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.NewFromInt(500))
	_ = f.accRepo.Create(context.Background(), acc)

	f.rates.GetRateFunc = func(ctx context.Context, from, to string) (usecase.RateQuote, error) {
		return usecase.RateQuote{Rate: decimal.RequireFromString("0.9"), Source: "test"}, nil
	}

	conv, err := f.uc.ConvertCurrency(context.Background(), usecase.ConvertCurrencyInput{
		AccountID:    "acc-1",
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		FromAmount:   decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100 * 0.9 = 90 gross, 0.1% fee = 0.09, net 89.91.
	if !conv.Fee.Equal(decimal.RequireFromString("0.09")) {
		t.Errorf("expected fee 0.09, got %s", conv.Fee)
	}
	if !conv.ToAmount.Equal(decimal.RequireFromString("89.91")) {
		t.Errorf("expected net 89.91, got %s", conv.ToAmount)
	}
	if conv.Status != domain.ConversionStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", conv.Status)
	}

	if !acc.Balance("USD", domain.BucketAvailable).Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected USD 400, got %s", acc.Balance("USD", domain.BucketAvailable))
	}
	if !acc.Balance("EUR", domain.BucketAvailable).Equal(decimal.RequireFromString("89.91")) {
		t.Errorf("expected EUR 89.91, got %s", acc.Balance("EUR", domain.BucketAvailable))
	}

	// Both legs persisted, completed and cross-linked to the conversion.
	debit, err := f.txnRepo.GetByID(context.Background(), conv.DebitTransactionID)
	if err != nil {
		t.Fatalf("debit leg missing: %v", err)
	}
	credit, err := f.txnRepo.GetByID(context.Background(), conv.CreditTransactionID)
	if err != nil {
		t.Fatalf("credit leg missing: %v", err)
	}
	if debit.Status != domain.TransactionStatusCompleted || credit.Status != domain.TransactionStatusCompleted {
		t.Error("both legs must be COMPLETED")
	}
	if debit.ConversionID == nil || *debit.ConversionID != conv.ID {
		t.Error("debit leg not linked to conversion")
	}
	if debit.RelatedTransactionID == nil || *debit.RelatedTransactionID != credit.ID {
		t.Error("legs not cross-linked")
	}
}

func TestConversionUseCase_ConvertCurrency_SameCurrency(t *testing.T) {
	f := newConversionFixture()

	_, err := f.uc.ConvertCurrency(context.Background(), usecase.ConvertCurrencyInput{
		AccountID:    "acc-1",
		FromCurrency: "USD",
		ToCurrency:   "USD",
		FromAmount:   decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrSameCurrency) {
		t.Errorf("expected ErrSameCurrency, got %v", err)
	}
}

func TestConversionUseCase_ConvertCurrency_RateLookupFails(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.NewFromInt(500))
	_ = f.accRepo.Create(context.Background(), acc)

	f.rates.GetRateFunc = func(ctx context.Context, from, to string) (usecase.RateQuote, error) {
		return usecase.RateQuote{}, errors.New("provider down")
	}

	_, err := f.uc.ConvertCurrency(context.Background(), usecase.ConvertCurrencyInput{
		AccountID:    "acc-1",
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		FromAmount:   decimal.NewFromInt(100),
	})

	var convErr *domain.ConversionFailedError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionFailedError, got %v", err)
	}

	// Aborted before any persisted side effect.
	if len(f.txnRepo.All()) != 0 {
		t.Errorf("expected no transactions, got %d", len(f.txnRepo.All()))
	}
	if !acc.Balance("USD", domain.BucketAvailable).Equal(decimal.NewFromInt(500)) {
		t.Error("balance must be unchanged")
	}
}

func TestConversionUseCase_ConvertCurrency_InsufficientBalance(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.NewFromInt(50))
	_ = f.accRepo.Create(context.Background(), acc)

	_, err := f.uc.ConvertCurrency(context.Background(), usecase.ConvertCurrencyInput{
		AccountID:    "acc-1",
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		FromAmount:   decimal.NewFromInt(100),
	})

	var insufficientErr *domain.InsufficientBalanceError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("expected InsufficientBalanceError, got %v", err)
	}
}

func TestConversionUseCase_ConvertAssetTokenToFiat(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.Zero)
	_ = f.accRepo.Create(context.Background(), acc)

	f.tokens.GetTokenValueFunc = func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error) {
		return usecase.TokenValuation{Value: decimal.NewFromInt(100), Currency: "USD"}, nil
	}

	conv, err := f.uc.ConvertAssetTokenToFiat(context.Background(), usecase.ConvertAssetTokenInput{
		AccountID:   "acc-1",
		AssetID:     "asset-1",
		TokenType:   "REALT",
		TokenAmount: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100 valued, 0.2% fee = 0.20, net 99.8.
	if !conv.Fee.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("expected fee 0.2, got %s", conv.Fee)
	}
	if !conv.ToAmount.Equal(decimal.RequireFromString("99.8")) {
		t.Errorf("expected net 99.8, got %s", conv.ToAmount)
	}
	if conv.Type != domain.ConversionTypeAssetToken {
		t.Errorf("expected asset_token, got %s", conv.Type)
	}
	if conv.AssetToken == nil || conv.AssetToken.AssetID != "asset-1" {
		t.Error("asset token details missing")
	}

	if !acc.Balance("USD", domain.BucketAvailable).Equal(decimal.RequireFromString("99.8")) {
		t.Errorf("expected USD 99.8, got %s", acc.Balance("USD", domain.BucketAvailable))
	}

	burned := f.tokens.Burned()
	if len(burned) != 1 || !burned[0].Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected 10 tokens burned, got %v", burned)
	}
}

func TestConversionUseCase_ConvertAssetTokenToFiat_BurnFails(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.Zero)
	_ = f.accRepo.Create(context.Background(), acc)

	f.tokens.GetTokenValueFunc = func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error) {
		return usecase.TokenValuation{Value: decimal.NewFromInt(100), Currency: "USD"}, nil
	}
	f.tokens.BurnTokensFunc = func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) error {
		return errors.New("chain unavailable")
	}

	conv, err := f.uc.ConvertAssetTokenToFiat(context.Background(), usecase.ConvertAssetTokenInput{
		AccountID:   "acc-1",
		AssetID:     "asset-1",
		TokenType:   "REALT",
		TokenAmount: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("credit must stand despite burn failure, got error: %v", err)
	}

	if conv.Status != domain.ConversionStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", conv.Status)
	}
	if !acc.Balance("USD", domain.BucketAvailable).Equal(decimal.RequireFromString("99.8")) {
		t.Error("credited amount must remain on the account")
	}

	var flagged bool
	for _, e := range f.outbox.Events() {
		if e.EventType == domain.EventTypeTokenBurnFailed {
			flagged = true
		}
	}
	if !flagged {
		t.Error("expected token_burn_failed outbox event")
	}
}

func TestConversionUseCase_ConvertAssetTokenToFiat_NonPositiveValuation(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.NewFromInt(500))
	_ = f.accRepo.Create(context.Background(), acc)

	for _, value := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		f.tokens.GetTokenValueFunc = func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error) {
			return usecase.TokenValuation{Value: value, Currency: "USD"}, nil
		}

		_, err := f.uc.ConvertAssetTokenToFiat(context.Background(), usecase.ConvertAssetTokenInput{
			AccountID:   "acc-1",
			AssetID:     "asset-1",
			TokenType:   "REALT",
			TokenAmount: decimal.NewFromInt(10),
		})

		var convErr *domain.ConversionFailedError
		if !errors.As(err, &convErr) {
			t.Fatalf("valuation %s: expected ConversionFailedError, got %v", value, err)
		}
	}

	// Rejected before any persisted side effect.
	if len(f.txnRepo.All()) != 0 {
		t.Errorf("expected no transactions, got %d", len(f.txnRepo.All()))
	}
	if !acc.Balance("USD", domain.BucketAvailable).Equal(decimal.NewFromInt(500)) {
		t.Error("balance must be unchanged")
	}
	if len(f.tokens.Burned()) != 0 {
		t.Error("no tokens may be burned for a rejected valuation")
	}
}

func TestConversionUseCase_ConvertAssetTokenToFiat_UnknownSettlementCurrency(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.Zero)
	_ = f.accRepo.Create(context.Background(), acc)

	f.tokens.GetTokenValueFunc = func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error) {
		return usecase.TokenValuation{Value: decimal.NewFromInt(100), Currency: "DOUBLOONS"}, nil
	}

	_, err := f.uc.ConvertAssetTokenToFiat(context.Background(), usecase.ConvertAssetTokenInput{
		AccountID:   "acc-1",
		AssetID:     "asset-1",
		TokenType:   "REALT",
		TokenAmount: decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency, got %v", err)
	}

	if len(f.txnRepo.All()) != 0 {
		t.Errorf("expected no transactions, got %d", len(f.txnRepo.All()))
	}
}

func TestConversionUseCase_ReverseConversion(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.NewFromInt(500))
	_ = f.accRepo.Create(context.Background(), acc)

	f.rates.GetRateFunc = func(ctx context.Context, from, to string) (usecase.RateQuote, error) {
		return usecase.RateQuote{Rate: decimal.RequireFromString("0.9"), Source: "test"}, nil
	}

	original, err := f.uc.ConvertCurrency(context.Background(), usecase.ConvertCurrencyInput{
		AccountID:    "acc-1",
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		FromAmount:   decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	reversal, err := f.uc.ReverseConversion(context.Background(), original.ID, "support request")
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}

	if original.Status != domain.ConversionStatusReversed {
		t.Errorf("original should be REVERSED, got %s", original.Status)
	}
	if reversal.FromCurrency != "EUR" || reversal.ToCurrency != "USD" {
		t.Errorf("reversal currencies not swapped: %s -> %s", reversal.FromCurrency, reversal.ToCurrency)
	}
	if !reversal.Fee.IsZero() {
		t.Errorf("reversal carries no fee, got %s", reversal.Fee)
	}
	if !acc.Balance("EUR", domain.BucketAvailable).IsZero() {
		t.Errorf("expected EUR 0, got %s", acc.Balance("EUR", domain.BucketAvailable))
	}
	// Amounts are swapped exactly, so the account is restored in full.
	if !acc.Balance("USD", domain.BucketAvailable).Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected USD 500, got %s", acc.Balance("USD", domain.BucketAvailable))
	}

	// Second reversal is rejected.
	if _, err := f.uc.ReverseConversion(context.Background(), original.ID, "again"); !errors.Is(err, domain.ErrConversionAlreadyReversed) {
		t.Errorf("expected ErrConversionAlreadyReversed, got %v", err)
	}
}

func TestConversionUseCase_ReverseConversion_NotCompleted(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.NewFromInt(100))
	_ = f.accRepo.Create(context.Background(), acc)

	conv := &domain.Conversion{
		ID:        "conv-1",
		AccountID: "acc-1",
		Status:    domain.ConversionStatusFailed,
	}
	_ = f.convRepo.CreateTx(context.Background(), nil, conv)

	_, err := f.uc.ReverseConversion(context.Background(), "conv-1", "nope")
	if !errors.Is(err, domain.ErrConversionNotReversible) {
		t.Errorf("expected ErrConversionNotReversible, got %v", err)
	}
}

func TestConversionUseCase_ReverseConversion_AssetToken(t *testing.T) {
	f := newConversionFixture()
	acc := activeAccount("acc-1", "USD", decimal.Zero)
	_ = f.accRepo.Create(context.Background(), acc)

	f.tokens.GetTokenValueFunc = func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error) {
		return usecase.TokenValuation{Value: decimal.NewFromInt(100), Currency: "USD"}, nil
	}

	conv, err := f.uc.ConvertAssetTokenToFiat(context.Background(), usecase.ConvertAssetTokenInput{
		AccountID:   "acc-1",
		AssetID:     "asset-1",
		TokenType:   "REALT",
		TokenAmount: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	// The burned tokens cannot be handed back, so the redemption is final.
	_, err = f.uc.ReverseConversion(context.Background(), conv.ID, "changed my mind")
	if !errors.Is(err, domain.ErrAssetConversionNotReversible) {
		t.Fatalf("expected ErrAssetConversionNotReversible, got %v", err)
	}

	if conv.Status != domain.ConversionStatusCompleted {
		t.Errorf("conversion must stay COMPLETED, got %s", conv.Status)
	}
	if !acc.Balance("USD", domain.BucketAvailable).Equal(decimal.RequireFromString("99.8")) {
		t.Error("credited amount must remain on the account")
	}
	if !acc.Balance("REALT", domain.BucketAvailable).IsZero() {
		t.Error("no token-type bucket may appear on the account")
	}
}

func TestConversionUseCase_GetConversion(t *testing.T) {
	f := newConversionFixture()
	_ = f.convRepo.CreateTx(context.Background(), nil, &domain.Conversion{ID: "conv-1"})

	conv, err := f.uc.GetConversion(context.Background(), "conv-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID != "conv-1" {
		t.Errorf("expected conv-1, got %s", conv.ID)
	}

	if _, err := f.uc.GetConversion(context.Background(), "missing"); !errors.Is(err, domain.ErrConversionNotFound) {
		t.Errorf("expected ErrConversionNotFound, got %v", err)
	}
}
