package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelora/fincore/internal/usecase"
)

// txBeginner is the slice of the pool the manager needs; tests swap in
// a pgxmock pool through it.
type txBeginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager on a pgx pool.
type TxManager struct {
	pool txBeginner
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

func newTxManagerWithPool(pool txBeginner) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &Tx{Tx: tx}, nil
}

// Tx adapts pgx.Tx to usecase.Transaction. Commit and Rollback are
// promoted from the embedded transaction.
type Tx struct {
	pgx.Tx
}

// PgxTx exposes the underlying pgx.Tx for repository queries.
func (t *Tx) PgxTx() pgx.Tx {
	return t.Tx
}
