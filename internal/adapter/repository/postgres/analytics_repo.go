package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/usecase"
)

// AnalyticsRepository implements usecase.AnalyticsRepository with
// read-only aggregation queries.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// TransactionsByType groups completed transaction volume by type.
func (r *AnalyticsRepository) TransactionsByType(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error) {
	return r.aggregate(ctx, `
		SELECT type, currency, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY type, currency
		ORDER BY type, currency`,
		accountID, from, to)
}

// TransactionsByStatus groups transaction volume by status.
func (r *AnalyticsRepository) TransactionsByStatus(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error) {
	return r.aggregate(ctx, `
		SELECT status, currency, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY status, currency
		ORDER BY status, currency`,
		accountID, from, to)
}

// TransactionsByDay groups transaction volume by calendar day.
func (r *AnalyticsRepository) TransactionsByDay(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error) {
	return r.aggregate(ctx, `
		SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD'), currency, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY 1, currency
		ORDER BY 1, currency`,
		accountID, from, to)
}

// ConversionsByPair groups completed conversion volume and fees by
// currency pair.
func (r *AnalyticsRepository) ConversionsByPair(ctx context.Context, from, to time.Time) ([]usecase.ConversionAggregate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT from_currency, to_currency, COUNT(*), COALESCE(SUM(from_amount), 0), COALESCE(SUM(fee), 0)
		FROM conversions
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
		GROUP BY from_currency, to_currency
		ORDER BY from_currency, to_currency`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.ConversionAggregate
	for rows.Next() {
		var (
			agg       usecase.ConversionAggregate
			totalFrom pgtype.Numeric
			totalFees pgtype.Numeric
		)

		if err := rows.Scan(&agg.FromCurrency, &agg.ToCurrency, &agg.Count, &totalFrom, &totalFees); err != nil {
			return nil, err
		}

		agg.TotalFrom = numericToDecimal(totalFrom)
		agg.TotalFees = numericToDecimal(totalFees)
		out = append(out, agg)
	}

	return out, rows.Err()
}

// BalanceTotals sums every bucket of every account per currency. Used
// for reconciliation.
func (r *AnalyticsRepository) BalanceTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT currency, COALESCE(SUM(available + pending + reserved + frozen), 0)
		FROM account_balances
		GROUP BY currency`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			currency string
			total    pgtype.Numeric
		)

		if err := rows.Scan(&currency, &total); err != nil {
			return nil, err
		}

		totals[currency] = numericToDecimal(total)
	}

	return totals, rows.Err()
}

func (r *AnalyticsRepository) aggregate(ctx context.Context, query string, args ...any) ([]usecase.TransactionAggregate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.TransactionAggregate
	for rows.Next() {
		var (
			agg   usecase.TransactionAggregate
			total pgtype.Numeric
		)

		if err := rows.Scan(&agg.GroupKey, &agg.Currency, &agg.Count, &total); err != nil {
			return nil, err
		}

		agg.TotalAmount = numericToDecimal(total)
		out = append(out, agg)
	}

	return out, rows.Err()
}
