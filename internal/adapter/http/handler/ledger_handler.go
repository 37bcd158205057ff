package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelora/fincore/internal/adapter/http/dto"
	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	ChargeFiatForCryptoPurchase(ctx context.Context, input usecase.ChargeInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
	ReserveFunds(ctx context.Context, input usecase.BucketMoveInput) (*domain.Account, error)
	ReleaseReservedFunds(ctx context.Context, input usecase.BucketMoveInput) (*domain.Account, error)
	FreezeFunds(ctx context.Context, input usecase.BucketMoveInput) (*domain.Account, error)
	UnfreezeFunds(ctx context.Context, input usecase.BucketMoveInput) (*domain.Account, error)
	ReverseTransaction(ctx context.Context, transactionID, reason string) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	ListTransactionsByUser(ctx context.Context, input usecase.ListUserTransactionsInput) ([]*domain.Transaction, error)
}

// LedgerHandler handles balance-mutating HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Deposit credits an account.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.ledgerUC.Deposit(r.Context(), usecase.DepositInput{
		AccountID:   accountID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		PaymentID:   req.PaymentID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeDomainError(w, "failed to deposit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Withdraw debits an account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.ledgerUC.Withdraw(r.Context(), usecase.WithdrawInput{
		AccountID:   accountID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeDomainError(w, "failed to withdraw", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Charge debits fiat backing an external crypto purchase.
func (h *LedgerHandler) Charge(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req dto.ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.ledgerUC.ChargeFiatForCryptoPurchase(r.Context(), usecase.ChargeInput{
		AccountID:   accountID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		PaymentID:   req.PaymentID,
		WorkflowID:  req.WorkflowID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeDomainError(w, "failed to charge", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Transfer moves funds between two accounts.
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferResponse{
		Outgoing: dto.TransactionFromDomain(result.Outgoing),
		Incoming: dto.TransactionFromDomain(result.Incoming),
	})
}

// Reserve moves funds from the available to the reserved bucket.
func (h *LedgerHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	h.bucketMove(w, r, h.ledgerUC.ReserveFunds)
}

// Release returns reserved funds to the available bucket.
func (h *LedgerHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.bucketMove(w, r, h.ledgerUC.ReleaseReservedFunds)
}

// Freeze moves funds from the available to the frozen bucket.
func (h *LedgerHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	h.bucketMove(w, r, h.ledgerUC.FreezeFunds)
}

// Unfreeze returns frozen funds to the available bucket.
func (h *LedgerHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	h.bucketMove(w, r, h.ledgerUC.UnfreezeFunds)
}

func (h *LedgerHandler) bucketMove(
	w http.ResponseWriter,
	r *http.Request,
	move func(context.Context, usecase.BucketMoveInput) (*domain.Account, error),
) {
	accountID := chi.URLParam(r, "id")

	var req dto.BucketMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := move(r.Context(), usecase.BucketMoveInput{
		AccountID: accountID,
		Currency:  req.Currency,
		Amount:    req.Amount,
	})
	if err != nil {
		writeDomainError(w, "failed to move funds", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Reverse reverses a completed transaction.
func (h *LedgerHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reversal, err := h.ledgerUC.ReverseTransaction(r.Context(), id, req.Reason)
	if err != nil {
		writeDomainError(w, "failed to reverse transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(reversal))
}

// Get retrieves a transaction by ID.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	txn, err := h.ledgerUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListByAccount lists transactions for an account.
func (h *LedgerHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.ledgerUC.ListTransactionsByAccount(r.Context(), usecase.ListTransactionsInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}

// ListByUser lists a user's transactions across accounts.
func (h *LedgerHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.ledgerUC.ListTransactionsByUser(r.Context(), usecase.ListUserTransactionsInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}
