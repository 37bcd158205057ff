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

// AccountRepository implements usecase.AccountRepository. An account
// aggregate spans the accounts row and one account_balances row per
// held currency; the account row lock guards both.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, user_id, status, default_currency, metadata, version, created_at, updated_at`

// Create creates a new account with its initial balances.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	metadata, err := json.Marshal(account.Metadata)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO accounts (id, user_id, status, default_currency, metadata, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID,
		account.UserID,
		string(account.Status),
		account.DefaultCurrency,
		metadata,
		account.Version,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for currency, bal := range account.Balances {
		if err := r.upsertBalance(ctx, r.pool, account.ID, currency, bal); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getBy(ctx, r.pool, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByUserID retrieves the account owned by a user.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return r.getBy(ctx, r.pool, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1`, userID)
}

// GetByIDForUpdate retrieves an account with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return r.getBy(ctx, txQuerier(tx), `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
}

// GetByIDsForUpdate locks multiple accounts in a single statement.
// Callers sort the ids so concurrent transfers lock in the same order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	q := txQuerier(tx)

	rows, err := q.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if err := r.loadBalances(ctx, q, account); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

// Save persists the account row and upserts every held balance. Must
// run inside the unit of work that locked the account.
func (r *AccountRepository) Save(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q := txQuerier(tx)

	metadata, err := json.Marshal(account.Metadata)
	if err != nil {
		return err
	}

	account.Version++

	_, err = q.Exec(ctx, `
		UPDATE accounts
		SET status = $2, default_currency = $3, metadata = $4, version = $5, updated_at = $6
		WHERE id = $1`,
		account.ID,
		string(account.Status),
		account.DefaultCurrency,
		metadata,
		account.Version,
		account.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for currency, bal := range account.Balances {
		if err := r.upsertBalance(ctx, q, account.ID, currency, bal); err != nil {
			return err
		}
	}

	return nil
}

// DeleteBalance removes a currency balance row.
func (r *AccountRepository) DeleteBalance(ctx context.Context, tx usecase.Transaction, accountID, currency string) error {
	_, err := txQuerier(tx).Exec(ctx, `
		DELETE FROM account_balances WHERE account_id = $1 AND currency = $2`,
		accountID, currency)

	return err
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if err := r.loadBalances(ctx, r.pool, account); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

func (r *AccountRepository) getBy(ctx context.Context, q querier, query, arg string) (*domain.Account, error) {
	row := q.QueryRow(ctx, query, arg)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	if err := r.loadBalances(ctx, q, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *AccountRepository) loadBalances(ctx context.Context, q querier, account *domain.Account) error {
	rows, err := q.Query(ctx, `
		SELECT currency, available, pending, reserved, frozen, last_updated
		FROM account_balances WHERE account_id = $1`, account.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	account.Balances = make(map[string]*domain.CurrencyBalance)
	for rows.Next() {
		var (
			currency string
			bal      domain.CurrencyBalance
		)

		var available, pending, reserved, frozen pgtype.Numeric
		if err := rows.Scan(&currency, &available, &pending, &reserved, &frozen, &bal.LastUpdated); err != nil {
			return err
		}

		bal.Available = numericToDecimal(available)
		bal.Pending = numericToDecimal(pending)
		bal.Reserved = numericToDecimal(reserved)
		bal.Frozen = numericToDecimal(frozen)

		account.Balances[currency] = &bal
	}

	return rows.Err()
}

func (r *AccountRepository) upsertBalance(ctx context.Context, q querier, accountID, currency string, bal *domain.CurrencyBalance) error {
	_, err := q.Exec(ctx, `
		INSERT INTO account_balances (account_id, currency, available, pending, reserved, frozen, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account_id, currency) DO UPDATE
		SET available = EXCLUDED.available,
		    pending = EXCLUDED.pending,
		    reserved = EXCLUDED.reserved,
		    frozen = EXCLUDED.frozen,
		    last_updated = EXCLUDED.last_updated`,
		accountID,
		currency,
		decimalToNumeric(bal.Available),
		decimalToNumeric(bal.Pending),
		decimalToNumeric(bal.Reserved),
		decimalToNumeric(bal.Frozen),
		bal.LastUpdated,
	)

	return err
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account  domain.Account
		status   string
		metadata []byte
	)

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&status,
		&account.DefaultCurrency,
		&metadata,
		&account.Version,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Status = domain.AccountStatus(status)
	if metadata != nil {
		_ = json.Unmarshal(metadata, &account.Metadata)
	}

	return &account, nil
}
