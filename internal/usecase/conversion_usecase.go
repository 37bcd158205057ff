package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/infrastructure/metrics"
)

// ConversionUseCase implements currency and asset-token conversions as
// paired debit/credit protocols over one account.
type ConversionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	convRepo    ConversionRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	rates       RateProvider
	tokens      TokenizationService
	journal     JournalRecorder
	notifier    Notifier
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewConversionUseCase creates a new ConversionUseCase.
func NewConversionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	convRepo ConversionRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	rates RateProvider,
	tokens TokenizationService,
	journal JournalRecorder,
	notifier Notifier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ConversionUseCase {
	return &ConversionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		convRepo:    convRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		rates:       rates,
		tokens:      tokens,
		journal:     journal,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

// ConvertCurrencyInput represents input for a currency conversion.
type ConvertCurrencyInput struct {
	AccountID    string
	FromCurrency string
	ToCurrency   string
	FromAmount   decimal.Decimal
	Description  string
}

// ConvertCurrency converts FromAmount between two currency buckets on
// one account. The rate lookup is mandatory; its failure aborts the
// operation before any persisted side effect.
func (uc *ConversionUseCase) ConvertCurrency(ctx context.Context, input ConvertCurrencyInput) (*domain.Conversion, error) {
	if err := domain.ValidateAmount(input.FromAmount); err != nil {
		return nil, err
	}

	fromCurrency, err := domain.NormalizeCurrency(input.FromCurrency)
	if err != nil {
		return nil, err
	}
	input.FromCurrency = fromCurrency

	toCurrency, err := domain.NormalizeCurrency(input.ToCurrency)
	if err != nil {
		return nil, err
	}
	input.ToCurrency = toCurrency

	if input.FromCurrency == input.ToCurrency {
		return nil, domain.ErrSameCurrency
	}

	rateCtx, cancel := context.WithTimeout(ctx, CollaboratorTimeout)
	defer cancel()

	quote, err := uc.rates.GetRate(rateCtx, input.FromCurrency, input.ToCurrency)
	if err != nil {
		return nil, &domain.ConversionFailedError{Reason: "rate lookup failed", Err: err}
	}

	toAmount := input.FromAmount.Mul(quote.Rate)
	fee := toAmount.Mul(CurrencyConversionFeeRate)
	netToAmount := toAmount.Sub(fee)

	conv, err := uc.execute(ctx, executeInput{
		AccountID:    input.AccountID,
		FromCurrency: input.FromCurrency,
		ToCurrency:   input.ToCurrency,
		FromAmount:   input.FromAmount,
		NetToAmount:  netToAmount,
		Fee:          fee,
		Rate:         quote.Rate,
		Type:         domain.ConversionTypeCurrency,
		TxnType:      domain.TransactionTypeCurrencyConversion,
		Description:  input.Description,
		Market: &domain.MarketData{
			SpotRate: quote.Rate,
			Source:   quote.Source,
		},
		DebitAccount: true,
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Conversions.Inc()
	}

	uc.afterCommit(conv, domain.AuditActionConvert)

	return conv, nil
}

// ConvertAssetTokenInput represents input for an asset-token redemption.
type ConvertAssetTokenInput struct {
	AccountID   string
	AssetID     string
	TokenType   string
	TokenAmount decimal.Decimal
	Description string
}

// ConvertAssetTokenToFiat values a token position, credits the target
// currency bucket net of the 0.2% fee, then burns the consumed tokens.
// A burn failure after the credit committed is recorded as a
// token_burn_failed outbox event for operator retry; the credited
// transaction stands.
func (uc *ConversionUseCase) ConvertAssetTokenToFiat(ctx context.Context, input ConvertAssetTokenInput) (*domain.Conversion, error) {
	if err := domain.ValidateAmount(input.TokenAmount); err != nil {
		return nil, err
	}

	valueCtx, cancel := context.WithTimeout(ctx, CollaboratorTimeout)
	defer cancel()

	valuation, err := uc.tokens.GetTokenValue(valueCtx, input.AssetID, input.TokenType, input.TokenAmount)
	if err != nil {
		return nil, &domain.ConversionFailedError{Reason: "token valuation failed", Err: err}
	}

	// The valuation crosses a trust boundary: a non-positive value or an
	// unknown settlement currency aborts the conversion before any
	// persisted side effect.
	if valuation.Value.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ConversionFailedError{
			Reason: "token valuation returned non-positive value " + valuation.Value.String(),
		}
	}

	settlementCurrency, err := domain.NormalizeCurrency(valuation.Currency)
	if err != nil {
		return nil, &domain.ConversionFailedError{Reason: "token valuation currency", Err: err}
	}

	fee := valuation.Value.Mul(AssetTokenConversionFeeRate)
	netToAmount := valuation.Value.Sub(fee)
	rate := valuation.Value.Div(input.TokenAmount)

	conv, err := uc.execute(ctx, executeInput{
		AccountID:    input.AccountID,
		FromCurrency: input.TokenType,
		ToCurrency:   settlementCurrency,
		FromAmount:   input.TokenAmount,
		NetToAmount:  netToAmount,
		Fee:          fee,
		Rate:         rate,
		Type:         domain.ConversionTypeAssetToken,
		TxnType:      domain.TransactionTypeAssetTokenConversion,
		Description:  input.Description,
		AssetToken: &domain.AssetTokenDetails{
			AssetID:     input.AssetID,
			TokenType:   input.TokenType,
			TokenAmount: input.TokenAmount,
		},
		// The from side lives in the tokenization service, not in an
		// account bucket; only the credit leg touches the account.
		DebitAccount: false,
	})
	if err != nil {
		return nil, err
	}

	burnCtx, cancelBurn := context.WithTimeout(ctx, CollaboratorTimeout)
	defer cancelBurn()

	if err := uc.tokens.BurnTokens(burnCtx, input.AssetID, input.TokenType, input.TokenAmount); err != nil {
		uc.logger.Error().
			Err(err).
			Str("conversion_id", conv.ID).
			Str("asset_id", input.AssetID).
			Msg("token burn failed after credit; flagging for operator retry")
		uc.flagFailedBurn(ctx, conv, err)
	}

	if uc.metrics != nil {
		uc.metrics.Conversions.Inc()
	}

	uc.afterCommit(conv, domain.AuditActionConvertAssetToken)

	return conv, nil
}

type executeInput struct {
	AccountID    string
	FromCurrency string
	ToCurrency   string
	FromAmount   decimal.Decimal
	NetToAmount  decimal.Decimal
	Fee          decimal.Decimal
	Rate         decimal.Decimal
	Type         domain.ConversionType
	TxnType      domain.TransactionType
	Description  string
	Market       *domain.MarketData
	AssetToken   *domain.AssetTokenDetails
	DebitAccount bool
}

// execute runs both conversion legs and the conversion record inside
// one unit of work.
func (uc *ConversionUseCase) execute(ctx context.Context, input executeInput) (*domain.Conversion, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := checkActive(account); err != nil {
		return nil, err
	}

	if input.DebitAccount && !account.HasBalance(input.FromCurrency, input.FromAmount, domain.BucketAvailable) {
		return nil, &domain.InsufficientBalanceError{
			Currency:  input.FromCurrency,
			Requested: input.FromAmount,
			Available: account.Balance(input.FromCurrency, domain.BucketAvailable),
		}
	}

	now := time.Now().UTC()
	debitID := uc.idGen.Generate()
	creditID := uc.idGen.Generate()
	convID := uc.idGen.Generate()

	debit := &domain.Transaction{
		ID:                   debitID,
		AccountID:            account.ID,
		UserID:               account.UserID,
		Type:                 input.TxnType,
		Status:               domain.TransactionStatusProcessing,
		Amount:               input.FromAmount,
		Currency:             input.FromCurrency,
		Description:          input.Description,
		RelatedTransactionID: &creditID,
		ConversionID:         &convID,
		CreatedAt:            now,
	}

	credit := &domain.Transaction{
		ID:                   creditID,
		AccountID:            account.ID,
		UserID:               account.UserID,
		Type:                 input.TxnType,
		Status:               domain.TransactionStatusProcessing,
		Amount:               input.NetToAmount,
		Currency:             input.ToCurrency,
		Description:          input.Description,
		RelatedTransactionID: &debitID,
		ConversionID:         &convID,
		CreatedAt:            now,
	}

	conv := &domain.Conversion{
		ID:                  convID,
		UserID:              account.UserID,
		AccountID:           account.ID,
		FromCurrency:        input.FromCurrency,
		ToCurrency:          input.ToCurrency,
		FromAmount:          input.FromAmount,
		ToAmount:            input.NetToAmount,
		ExchangeRate:        input.Rate,
		Fee:                 input.Fee,
		Type:                input.Type,
		Status:              domain.ConversionStatusProcessing,
		DebitTransactionID:  debitID,
		CreditTransactionID: creditID,
		AssetToken:          input.AssetToken,
		Market:              input.Market,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.convRepo.CreateTx(txCtx, tx, conv); err != nil {
		return nil, err
	}

	if input.DebitAccount {
		if err := account.ApplyDelta(input.FromCurrency, input.FromAmount.Neg(), domain.BucketAvailable, now); err != nil {
			_ = tx.Rollback(txCtx)
			uc.retainFailed(ctx, debit, credit, conv, err.Error())

			return nil, err
		}
	}

	if err := account.ApplyDelta(input.ToCurrency, input.NetToAmount, domain.BucketAvailable, now); err != nil {
		_ = tx.Rollback(txCtx)
		uc.retainFailed(ctx, debit, credit, conv, err.Error())

		return nil, err
	}

	debit.BalanceAfter = account.Balance(input.FromCurrency, domain.BucketAvailable)
	credit.BalanceAfter = account.Balance(input.ToCurrency, domain.BucketAvailable)

	if err := debit.Complete(now); err != nil {
		return nil, err
	}

	if err := credit.Complete(now); err != nil {
		return nil, err
	}

	if err := conv.Complete(now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Save(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(txCtx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(txCtx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.convRepo.Update(txCtx, tx, conv); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   conv.ID,
		AggregateType: domain.AggregateTypeConversion,
		EventType:     domain.EventTypeConversionCompleted,
		Payload: map[string]any{
			"conversion_id": conv.ID,
			"account_id":    conv.AccountID,
			"from_currency": conv.FromCurrency,
			"to_currency":   conv.ToCurrency,
			"from_amount":   conv.FromAmount.String(),
			"to_amount":     conv.ToAmount.String(),
			"exchange_rate": conv.ExchangeRate.String(),
			"fee":           conv.Fee.String(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return conv, nil
}

// ReverseConversion creates the inverse conversion for a completed one
// with new compensating transactions, and marks the original REVERSED.
// A reversed conversion cannot be reversed again.
func (uc *ConversionUseCase) ReverseConversion(ctx context.Context, conversionID, reason string) (*domain.Conversion, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	original, err := uc.convRepo.GetByIDForUpdate(txCtx, tx, conversionID)
	if err != nil {
		return nil, err
	}

	// The token side of an asset redemption was burned externally, so
	// there is no position to hand back. Those conversions are final.
	if original.Type == domain.ConversionTypeAssetToken {
		return nil, domain.ErrAssetConversionNotReversible
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, original.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversal := original.BuildReversal(uc.idGen.Generate(), reason, now)

	if err := original.MarkReversed(reversal.ID, reason, now); err != nil {
		return nil, err
	}

	if !account.HasBalance(reversal.FromCurrency, reversal.FromAmount, domain.BucketAvailable) {
		return nil, &domain.InsufficientBalanceError{
			Currency:  reversal.FromCurrency,
			Requested: reversal.FromAmount,
			Available: account.Balance(reversal.FromCurrency, domain.BucketAvailable),
		}
	}

	debitID := uc.idGen.Generate()
	creditID := uc.idGen.Generate()
	reversal.DebitTransactionID = debitID
	reversal.CreditTransactionID = creditID

	txnType := domain.TransactionTypeCurrencyConversion

	debit := &domain.Transaction{
		ID:                   debitID,
		AccountID:            account.ID,
		UserID:               account.UserID,
		Type:                 txnType,
		Status:               domain.TransactionStatusProcessing,
		Amount:               reversal.FromAmount,
		Currency:             reversal.FromCurrency,
		Description:          "reversal of conversion " + original.ID,
		RelatedTransactionID: &creditID,
		ConversionID:         &reversal.ID,
		ReversalReason:       reason,
		CreatedAt:            now,
	}

	credit := &domain.Transaction{
		ID:                   creditID,
		AccountID:            account.ID,
		UserID:               account.UserID,
		Type:                 txnType,
		Status:               domain.TransactionStatusProcessing,
		Amount:               reversal.ToAmount,
		Currency:             reversal.ToCurrency,
		Description:          "reversal of conversion " + original.ID,
		RelatedTransactionID: &debitID,
		ConversionID:         &reversal.ID,
		ReversalReason:       reason,
		CreatedAt:            now,
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.convRepo.CreateTx(txCtx, tx, reversal); err != nil {
		return nil, err
	}

	if err := account.ApplyDelta(reversal.FromCurrency, reversal.FromAmount.Neg(), domain.BucketAvailable, now); err != nil {
		return nil, err
	}

	if err := account.ApplyDelta(reversal.ToCurrency, reversal.ToAmount, domain.BucketAvailable, now); err != nil {
		return nil, err
	}

	debit.BalanceAfter = account.Balance(reversal.FromCurrency, domain.BucketAvailable)
	credit.BalanceAfter = account.Balance(reversal.ToCurrency, domain.BucketAvailable)

	if err := debit.Complete(now); err != nil {
		return nil, err
	}

	if err := credit.Complete(now); err != nil {
		return nil, err
	}

	if err := reversal.Complete(now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Save(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(txCtx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(txCtx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.convRepo.Update(txCtx, tx, original); err != nil {
		return nil, err
	}

	if err := uc.convRepo.Update(txCtx, tx, reversal); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   original.ID,
		AggregateType: domain.AggregateTypeConversion,
		EventType:     domain.EventTypeConversionReversed,
		Payload: map[string]any{
			"original_conversion_id": original.ID,
			"reversal_conversion_id": reversal.ID,
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ConversionReversals.Inc()
	}

	uc.afterCommit(reversal, domain.AuditActionConversionReverse)

	return reversal, nil
}

// GetConversion retrieves a conversion by ID.
func (uc *ConversionUseCase) GetConversion(ctx context.Context, id string) (*domain.Conversion, error) {
	return uc.convRepo.GetByID(ctx, id)
}

// ListConversionsInput represents input for listing conversions.
type ListConversionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListConversionsByAccount lists conversions for an account.
func (uc *ConversionUseCase) ListConversionsByAccount(ctx context.Context, input ListConversionsInput) ([]*domain.Conversion, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.convRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// retainFailed persists the FAILED legs and conversion outside the
// rolled back unit of work, keeping the failure as an audit record.
func (uc *ConversionUseCase) retainFailed(ctx context.Context, debit, credit *domain.Transaction, conv *domain.Conversion, reason string) {
	now := time.Now().UTC()

	for _, txn := range []*domain.Transaction{debit, credit} {
		if err := txn.Fail(reason, now); err != nil {
			continue
		}

		if err := uc.txnRepo.Create(ctx, txn); err != nil {
			uc.logger.Error().Err(err).Str("transaction_id", txn.ID).Msg("failed to retain failed transaction")
		}
	}
}

// flagFailedBurn records a token_burn_failed outbox event in its own
// short unit of work.
func (uc *ConversionUseCase) flagFailedBurn(ctx context.Context, conv *domain.Conversion, burnErr error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		uc.logger.Error().Err(err).Str("conversion_id", conv.ID).Msg("cannot record failed burn")
		return
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   conv.ID,
		AggregateType: domain.AggregateTypeConversion,
		EventType:     domain.EventTypeTokenBurnFailed,
		Payload: map[string]any{
			"conversion_id": conv.ID,
			"asset_id":      conv.AssetToken.AssetID,
			"token_type":    conv.AssetToken.TokenType,
			"token_amount":  conv.AssetToken.TokenAmount.String(),
			"reason":        burnErr.Error(),
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		uc.logger.Error().Err(err).Str("conversion_id", conv.ID).Msg("cannot record failed burn")
		return
	}

	if err := tx.Commit(txCtx); err != nil {
		uc.logger.Error().Err(err).Str("conversion_id", conv.ID).Msg("cannot record failed burn")
	}
}

// afterCommit runs best-effort side effects for a finished conversion.
func (uc *ConversionUseCase) afterCommit(conv *domain.Conversion, action domain.AuditAction) {
	ctx, cancel := context.WithTimeout(context.Background(), CollaboratorTimeout)
	defer cancel()

	if uc.journal != nil {
		err := uc.journal.Record(ctx, JournalEntry{
			UserID:        conv.UserID,
			AccountID:     conv.AccountID,
			TransactionID: conv.DebitTransactionID,
			Type:          string(conv.Type),
			Amount:        conv.FromAmount,
			Currency:      conv.FromCurrency,
			Description:   "conversion " + conv.ID,
			Metadata: map[string]any{
				"conversion_id": conv.ID,
				"to_currency":   conv.ToCurrency,
				"to_amount":     conv.ToAmount.String(),
			},
		})
		if err != nil {
			uc.logger.Warn().Err(err).Str("conversion_id", conv.ID).Msg("journal recording failed")
		}
	}

	if uc.notifier != nil {
		err := uc.notifier.Notify(ctx, conv.UserID, "conversion", map[string]any{
			"conversion_id": conv.ID,
			"from_currency": conv.FromCurrency,
			"to_currency":   conv.ToCurrency,
			"to_amount":     conv.ToAmount.String(),
		})
		if err != nil {
			uc.logger.Warn().Err(err).Str("conversion_id", conv.ID).Msg("notification failed")
		}
	}

	if uc.auditRepo != nil {
		err := uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			UserID:       conv.UserID,
			Action:       string(action),
			ResourceType: "conversion",
			ResourceID:   conv.ID,
			AfterState:   domain.MarshalState(conv),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Warn().Err(err).Str("conversion_id", conv.ID).Msg("audit logging failed")
		}
	}
}
