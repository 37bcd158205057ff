package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/infrastructure/metrics"
)

// LedgerUseCase implements the balance-mutating protocols: deposit,
// withdraw, transfer, purchase charges, bucket moves and reversals.
// Every protocol runs inside a single unit of work with row locks, so
// either all its legs apply or none do.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	journal     JournalRecorder
	notifier    Notifier
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	journal JournalRecorder,
	notifier Notifier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		journal:     journal,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
	PaymentID   *string
	Metadata    map[string]any
}

// Deposit credits the available bucket of the account.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	currency, err := domain.NormalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	input.Currency = currency

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

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		UserID:      account.UserID,
		Type:        domain.TransactionTypeDeposit,
		Status:      domain.TransactionStatusProcessing,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Description: input.Description,
		PaymentID:   input.PaymentID,
		Metadata:    input.Metadata,
		CreatedAt:   now,
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, txn); err != nil {
		return nil, err
	}

	if err := account.ApplyDelta(input.Currency, input.Amount, domain.BucketAvailable, now); err != nil {
		_ = tx.Rollback(txCtx)
		uc.retainFailed(ctx, txn, err.Error())

		return nil, err
	}

	txn.BalanceAfter = account.Balance(input.Currency, domain.BucketAvailable)
	if err := txn.Complete(now); err != nil {
		return nil, err
	}

	if err := uc.finishMutation(txCtx, tx, account, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Deposits.Inc()
		uc.metrics.TransactionAmount.Observe(amountForHistogram(input.Amount))
	}

	uc.afterCommit(txn, domain.AuditActionDeposit)

	return txn, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Metadata    map[string]any
}

// Withdraw debits the available bucket. Insufficient balance is
// rejected before any persisted side effect.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	txn, err := uc.debit(ctx, debitInput{
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Type:        domain.TransactionTypeWithdrawal,
		Description: input.Description,
		Metadata:    input.Metadata,
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Withdrawals.Inc()
	}

	uc.afterCommit(txn, domain.AuditActionWithdraw)

	return txn, nil
}

// ChargeInput represents input for a crypto purchase charge.
type ChargeInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
	PaymentID   *string
	WorkflowID  *string
	Metadata    map[string]any
}

// ChargeFiatForCryptoPurchase debits fiat for an externally settled
// crypto purchase, carrying the external correlation ids. A retried
// charge with a payment id already on record returns the recorded
// transaction instead of debiting again.
func (uc *LedgerUseCase) ChargeFiatForCryptoPurchase(ctx context.Context, input ChargeInput) (*domain.Transaction, error) {
	if input.PaymentID != nil {
		existing, err := uc.txnRepo.GetByPaymentID(ctx, *input.PaymentID)
		if err == nil {
			return existing, nil
		}

		if !errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, err
		}
	}

	txn, err := uc.debit(ctx, debitInput{
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Type:        domain.TransactionTypeCryptoPurchase,
		Description: input.Description,
		PaymentID:   input.PaymentID,
		WorkflowID:  input.WorkflowID,
		Metadata:    input.Metadata,
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Charges.Inc()
	}

	uc.afterCommit(txn, domain.AuditActionCharge)

	return txn, nil
}

type debitInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Type        domain.TransactionType
	Description string
	PaymentID   *string
	WorkflowID  *string
	Metadata    map[string]any
}

func (uc *LedgerUseCase) debit(ctx context.Context, input debitInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	currency, err := domain.NormalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	input.Currency = currency

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

	// Pre-mutation check: reject before creating any persisted record.
	if !account.HasBalance(input.Currency, input.Amount, domain.BucketAvailable) {
		return nil, &domain.InsufficientBalanceError{
			Currency:  input.Currency,
			Requested: input.Amount,
			Available: account.Balance(input.Currency, domain.BucketAvailable),
		}
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		UserID:      account.UserID,
		Type:        input.Type,
		Status:      domain.TransactionStatusProcessing,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Description: input.Description,
		PaymentID:   input.PaymentID,
		WorkflowID:  input.WorkflowID,
		Metadata:    input.Metadata,
		CreatedAt:   now,
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, txn); err != nil {
		return nil, err
	}

	if err := account.ApplyDelta(input.Currency, input.Amount.Neg(), domain.BucketAvailable, now); err != nil {
		_ = tx.Rollback(txCtx)
		uc.retainFailed(ctx, txn, err.Error())

		return nil, err
	}

	txn.BalanceAfter = account.Balance(input.Currency, domain.BucketAvailable)
	if err := txn.Complete(now); err != nil {
		return nil, err
	}

	if err := uc.finishMutation(txCtx, tx, account, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return txn, nil
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	Metadata      map[string]any
}

// TransferResult carries the two cross-linked legs of a transfer.
type TransferResult struct {
	Outgoing *domain.Transaction
	Incoming *domain.Transaction
}

// Transfer moves amount between two accounts as one unit of work.
// Both accounts are locked in sorted-ID order; both legs commit
// together or not at all.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	currency, err := domain.NormalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	input.Currency = currency

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock both accounts in sorted order (deadlock prevention).
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var source, dest *domain.Account
	for _, acc := range accounts {
		switch acc.ID {
		case input.FromAccountID:
			source = acc
		case input.ToAccountID:
			dest = acc
		}
	}

	if source == nil || dest == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := checkActive(source); err != nil {
		return nil, err
	}

	if err := checkActive(dest); err != nil {
		return nil, err
	}

	if !source.HasBalance(input.Currency, input.Amount, domain.BucketAvailable) {
		return nil, &domain.InsufficientBalanceError{
			Currency:  input.Currency,
			Requested: input.Amount,
			Available: source.Balance(input.Currency, domain.BucketAvailable),
		}
	}

	now := time.Now().UTC()
	outID := uc.idGen.Generate()
	inID := uc.idGen.Generate()

	outgoing := &domain.Transaction{
		ID:                   outID,
		AccountID:            source.ID,
		UserID:               source.UserID,
		Type:                 domain.TransactionTypeTransferOut,
		Status:               domain.TransactionStatusProcessing,
		Amount:               input.Amount,
		Currency:             input.Currency,
		Description:          input.Description,
		RelatedTransactionID: &inID,
		Metadata:             input.Metadata,
		CreatedAt:            now,
	}

	incoming := &domain.Transaction{
		ID:                   inID,
		AccountID:            dest.ID,
		UserID:               dest.UserID,
		Type:                 domain.TransactionTypeTransferIn,
		Status:               domain.TransactionStatusProcessing,
		Amount:               input.Amount,
		Currency:             input.Currency,
		Description:          input.Description,
		RelatedTransactionID: &outID,
		Metadata:             input.Metadata,
		CreatedAt:            now,
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, outgoing); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, incoming); err != nil {
		return nil, err
	}

	if err := source.ApplyDelta(input.Currency, input.Amount.Neg(), domain.BucketAvailable, now); err != nil {
		_ = tx.Rollback(txCtx)
		uc.retainFailed(ctx, outgoing, err.Error())
		uc.retainFailed(ctx, incoming, err.Error())

		return nil, err
	}

	if err := dest.ApplyDelta(input.Currency, input.Amount, domain.BucketAvailable, now); err != nil {
		_ = tx.Rollback(txCtx)
		uc.retainFailed(ctx, outgoing, err.Error())
		uc.retainFailed(ctx, incoming, err.Error())

		return nil, err
	}

	outgoing.BalanceAfter = source.Balance(input.Currency, domain.BucketAvailable)
	incoming.BalanceAfter = dest.Balance(input.Currency, domain.BucketAvailable)

	if err := outgoing.Complete(now); err != nil {
		return nil, err
	}

	if err := incoming.Complete(now); err != nil {
		return nil, err
	}

	if err := uc.finishMutation(txCtx, tx, source, outgoing); err != nil {
		return nil, err
	}

	if err := uc.finishMutation(txCtx, tx, dest, incoming); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Transfers.Inc()
		uc.metrics.TransactionAmount.Observe(amountForHistogram(input.Amount))
	}

	uc.afterCommit(outgoing, domain.AuditActionTransfer)
	uc.afterCommit(incoming, domain.AuditActionTransfer)

	return &TransferResult{Outgoing: outgoing, Incoming: incoming}, nil
}

// BucketMoveInput represents input for a bucket move on one account.
type BucketMoveInput struct {
	AccountID string
	Currency  string
	Amount    decimal.Decimal
}

// ReserveFunds moves amount from AVAILABLE to RESERVED.
func (uc *LedgerUseCase) ReserveFunds(ctx context.Context, input BucketMoveInput) (*domain.Account, error) {
	return uc.moveBucket(ctx, input, (*domain.Account).Reserve, domain.AuditActionReserve)
}

// ReleaseReservedFunds moves amount from RESERVED back to AVAILABLE.
func (uc *LedgerUseCase) ReleaseReservedFunds(ctx context.Context, input BucketMoveInput) (*domain.Account, error) {
	return uc.moveBucket(ctx, input, (*domain.Account).ReleaseReserved, domain.AuditActionRelease)
}

// FreezeFunds moves amount from AVAILABLE to FROZEN.
func (uc *LedgerUseCase) FreezeFunds(ctx context.Context, input BucketMoveInput) (*domain.Account, error) {
	return uc.moveBucket(ctx, input, (*domain.Account).Freeze, domain.AuditActionFreeze)
}

// UnfreezeFunds moves amount from FROZEN back to AVAILABLE.
func (uc *LedgerUseCase) UnfreezeFunds(ctx context.Context, input BucketMoveInput) (*domain.Account, error) {
	return uc.moveBucket(ctx, input, (*domain.Account).Unfreeze, domain.AuditActionUnfreeze)
}

func (uc *LedgerUseCase) moveBucket(
	ctx context.Context,
	input BucketMoveInput,
	move func(*domain.Account, string, decimal.Decimal, time.Time) error,
	action domain.AuditAction,
) (*domain.Account, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	currency, err := domain.NormalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	input.Currency = currency

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

	now := time.Now().UTC()
	if err := move(account, input.Currency, input.Amount, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Save(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			UserID:       account.UserID,
			Action:       string(action),
			ResourceType: "account",
			ResourceID:   account.ID,
			AfterState: domain.JSON{
				"currency": input.Currency,
				"amount":   input.Amount.String(),
			},
			Status:    string(domain.AuditStatusSuccess),
			CreatedAt: now,
		})
	}

	return account, nil
}

// ReverseTransaction creates a compensating transaction for a completed
// one and marks the original REVERSED. History is never edited in place.
func (uc *LedgerUseCase) ReverseTransaction(ctx context.Context, transactionID, reason string) (*domain.Transaction, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	original, err := uc.txnRepo.GetByID(txCtx, transactionID)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, original.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversal := original.BuildReversal(uc.idGen.Generate(), reason, now)

	// The reversal carries the inverted economic effect.
	delta := original.Amount
	if !original.IsDebit() {
		delta = delta.Neg()
	}

	if err := original.MarkReversed(reversal.ID, reason, now); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.CreateTx(txCtx, tx, reversal); err != nil {
		return nil, err
	}

	if err := account.ApplyDelta(original.Currency, delta, domain.BucketAvailable, now); err != nil {
		_ = tx.Rollback(txCtx)
		uc.retainFailed(ctx, reversal, err.Error())

		return nil, err
	}

	reversal.BalanceAfter = account.Balance(original.Currency, domain.BucketAvailable)
	if err := reversal.Complete(now); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(txCtx, tx, original); err != nil {
		return nil, err
	}

	if err := uc.finishMutation(txCtx, tx, account, reversal); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   original.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionReversed,
		Payload: map[string]any{
			"original_transaction_id": original.ID,
			"reversal_transaction_id": reversal.ID,
			"amount":                  original.Amount.String(),
			"currency":                original.Currency,
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
		uc.metrics.Reversals.Inc()
	}

	return reversal, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists transactions for an account.
func (uc *LedgerUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// ListUserTransactionsInput represents input for listing a user's
// transactions.
type ListUserTransactionsInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListTransactionsByUser lists transactions for a user across accounts.
func (uc *LedgerUseCase) ListTransactionsByUser(ctx context.Context, input ListUserTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// finishMutation persists the mutated account, the transaction final
// status and the completion outbox event inside the unit of work.
func (uc *LedgerUseCase) finishMutation(ctx context.Context, tx Transaction, account *domain.Account, txn *domain.Transaction) error {
	if err := uc.accountRepo.Save(ctx, tx, account); err != nil {
		return err
	}

	if err := uc.txnRepo.Update(ctx, tx, txn); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   txn.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionCompleted,
		Payload: map[string]any{
			"transaction_id": txn.ID,
			"account_id":     txn.AccountID,
			"type":           string(txn.Type),
			"amount":         txn.Amount.String(),
			"currency":       txn.Currency,
			"balance_after":  txn.BalanceAfter.String(),
		},
		CreatedAt: txn.CreatedAt,
	}

	return uc.outboxRepo.Create(ctx, tx, event)
}

// retainFailed persists a FAILED transaction row outside the rolled
// back unit of work so the failure stays visible as an audit record.
func (uc *LedgerUseCase) retainFailed(ctx context.Context, txn *domain.Transaction, reason string) {
	now := time.Now().UTC()
	if err := txn.Fail(reason, now); err != nil {
		uc.logger.Error().Err(err).Str("transaction_id", txn.ID).Msg("cannot mark transaction failed")
		return
	}

	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		uc.logger.Error().Err(err).Str("transaction_id", txn.ID).Msg("failed to retain failed transaction")
	}
}

// afterCommit runs the best-effort side effects: ledger-of-record
// recording, notification and audit. Failures are logged and swallowed.
func (uc *LedgerUseCase) afterCommit(txn *domain.Transaction, action domain.AuditAction) {
	ctx, cancel := context.WithTimeout(context.Background(), CollaboratorTimeout)
	defer cancel()

	if uc.journal != nil {
		err := uc.journal.Record(ctx, JournalEntry{
			UserID:        txn.UserID,
			AccountID:     txn.AccountID,
			TransactionID: txn.ID,
			Type:          string(txn.Type),
			Amount:        txn.Amount,
			Currency:      txn.Currency,
			Description:   txn.Description,
			Metadata:      txn.Metadata,
		})
		if err != nil {
			uc.logger.Warn().Err(err).Str("transaction_id", txn.ID).Msg("journal recording failed")
		}
	}

	if uc.notifier != nil {
		err := uc.notifier.Notify(ctx, txn.UserID, string(txn.Type), map[string]any{
			"transaction_id": txn.ID,
			"amount":         txn.Amount.String(),
			"currency":       txn.Currency,
		})
		if err != nil {
			uc.logger.Warn().Err(err).Str("transaction_id", txn.ID).Msg("notification failed")
		}
	}

	if uc.auditRepo != nil {
		err := uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			UserID:       txn.UserID,
			Action:       string(action),
			ResourceType: "transaction",
			ResourceID:   txn.ID,
			AfterState:   domain.MarshalState(txn),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Warn().Err(err).Str("transaction_id", txn.ID).Msg("audit logging failed")
		}
	}
}

func checkActive(account *domain.Account) error {
	switch account.Status {
	case domain.AccountStatusActive:
		return nil
	case domain.AccountStatusSuspended:
		return domain.ErrAccountSuspended
	default:
		return domain.ErrAccountNotActive
	}
}

// amountForHistogram converts a decimal amount for metric observation.
// Metrics are approximate; monetary arithmetic never uses this.
func amountForHistogram(amount decimal.Decimal) float64 {
	f, _ := amount.Float64()

	return f
}
