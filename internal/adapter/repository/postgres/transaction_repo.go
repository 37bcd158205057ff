package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, account_id, user_id, type, status, amount, currency, balance_after,
	description, related_transaction_id, conversion_id, payment_id, workflow_id,
	failure_reason, cancellation_reason, reversal_reason, reversed_transaction_id,
	metadata, processed_at, created_at`

const insertTransaction = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

// Create persists a transaction on the pool, outside any unit of work.
// Used to retain FAILED rows after a rollback.
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	return r.insert(ctx, r.pool, txn)
}

// CreateTx persists a transaction inside a unit of work.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	return r.insert(ctx, txQuerier(tx), txn)
}

// Update rewrites the mutable fields of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE transactions
		SET status = $2, balance_after = $3, failure_reason = $4, cancellation_reason = $5,
		    reversal_reason = $6, reversed_transaction_id = $7, processed_at = $8
		WHERE id = $1`,
		txn.ID,
		string(txn.Status),
		decimalToNumeric(txn.BalanceAfter),
		txn.FailureReason,
		txn.CancellationReason,
		txn.ReversalReason,
		txn.ReversedTransactionID,
		txn.ProcessedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// GetByPaymentID retrieves the transaction linked to an external payment.
func (r *TransactionRepository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE payment_id = $1`, paymentID)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// ListByAccount lists an account's transactions, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	return r.list(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
}

// ListByUser lists a user's transactions, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	return r.list(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

func (r *TransactionRepository) insert(ctx context.Context, q querier, txn *domain.Transaction) error {
	metadata, err := json.Marshal(txn.Metadata)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, insertTransaction,
		txn.ID,
		txn.AccountID,
		txn.UserID,
		string(txn.Type),
		string(txn.Status),
		decimalToNumeric(txn.Amount),
		txn.Currency,
		decimalToNumeric(txn.BalanceAfter),
		txn.Description,
		txn.RelatedTransactionID,
		txn.ConversionID,
		txn.PaymentID,
		txn.WorkflowID,
		txn.FailureReason,
		txn.CancellationReason,
		txn.ReversalReason,
		txn.ReversedTransactionID,
		metadata,
		txn.ProcessedAt,
		txn.CreatedAt,
	)

	return err
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn          domain.Transaction
		txnType      string
		status       string
		amount       pgtype.Numeric
		balanceAfter pgtype.Numeric
		metadata     []byte
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.UserID,
		&txnType,
		&status,
		&amount,
		&txn.Currency,
		&balanceAfter,
		&txn.Description,
		&txn.RelatedTransactionID,
		&txn.ConversionID,
		&txn.PaymentID,
		&txn.WorkflowID,
		&txn.FailureReason,
		&txn.CancellationReason,
		&txn.ReversalReason,
		&txn.ReversedTransactionID,
		&metadata,
		&txn.ProcessedAt,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Status = domain.TransactionStatus(status)
	txn.Amount = numericToDecimal(amount)
	txn.BalanceAfter = numericToDecimal(balanceAfter)
	if metadata != nil {
		_ = json.Unmarshal(metadata, &txn.Metadata)
	}

	return &txn, nil
}
