package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func expectationsMet(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()

	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet pool expectations: %v", err)
	}
}

func TestTxManagerCommit(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectBegin()
	pool.ExpectCommit()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	expectationsMet(t, pool)
}

func TestTxManagerRollback(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectBegin()
	pool.ExpectRollback()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	expectationsMet(t, pool)
}

func TestTxManagerBeginFailure(t *testing.T) {
	pool := newMockPool(t)
	boom := errors.New("pool exhausted")
	pool.ExpectBegin().WillReturnError(boom)

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected begin error, got tx=%v err=%v", tx, err)
	}
}
