package usecase

import (
	"context"
	"time"

	"github.com/avelora/fincore/internal/domain"
)

// AccountUseCase handles account lifecycle and currency management.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	UserID          string
	DefaultCurrency string
	Metadata        map[string]any
}

// OpenAccount opens a new account with a zero balance in the default
// currency.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	currency, err := domain.NormalizeCurrency(input.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	input.DefaultCurrency = currency

	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:              uc.idGen.Generate(),
		UserID:          input.UserID,
		Status:          domain.AccountStatusActive,
		DefaultCurrency: input.DefaultCurrency,
		Metadata:        input.Metadata,
		Version:         0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	account.EnsureCurrency(input.DefaultCurrency, now)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			UserID:       input.UserID,
			Action:       string(domain.AuditActionAccountOpen),
			ResourceType: "account",
			ResourceID:   account.ID,
			AfterState:   domain.MarshalState(account),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		})
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByUserID retrieves the account owned by a user.
func (uc *AccountUseCase) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return uc.accountRepo.GetByUserID(ctx, userID)
}

// UpdateAccountStatus performs an administrative status transition.
// Closing requires every bucket of every currency to be exactly zero.
func (uc *AccountUseCase) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if status == domain.AccountStatusClosed && !account.CanClose() {
		return nil, domain.ErrAccountNotClosable
	}

	now := time.Now().UTC()
	previous := account.Status
	account.Status = status
	account.UpdatedAt = now

	if err := uc.accountRepo.Save(txCtx, tx, account); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountStatusChanged,
		Payload: map[string]any{
			"account_id": account.ID,
			"from":       string(previous),
			"to":         string(status),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			UserID:       account.UserID,
			Action:       string(domain.AuditActionAccountStatusChange),
			ResourceType: "account",
			ResourceID:   account.ID,
			BeforeState:  domain.JSON{"status": string(previous)},
			AfterState:   domain.JSON{"status": string(status)},
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		})
	}

	return account, nil
}

// AddCurrency adds a zeroed currency entry to the account. Idempotent.
func (uc *AccountUseCase) AddCurrency(ctx context.Context, accountID, currency string) (*domain.Account, error) {
	currency, err := domain.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, accountID)
	if err != nil {
		return nil, err
	}

	account.AddCurrency(currency, time.Now().UTC())

	if err := uc.accountRepo.Save(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return account, nil
}

// RemoveCurrency removes a currency entry. Fails unless all four
// buckets for that currency are exactly zero.
func (uc *AccountUseCase) RemoveCurrency(ctx context.Context, accountID, currency string) (*domain.Account, error) {
	currency, err := domain.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.RemoveCurrency(currency); err != nil {
		return nil, err
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.DeleteBalance(txCtx, tx, accountID, currency); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Save(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}
