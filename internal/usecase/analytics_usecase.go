package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsUseCase exposes read-only aggregations over transactions,
// conversions and balances.
type AnalyticsUseCase struct {
	analyticsRepo AnalyticsRepository
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase.
func NewAnalyticsUseCase(analyticsRepo AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// DateRangeInput bounds an aggregation window. A zero To means now.
type DateRangeInput struct {
	AccountID string
	From      time.Time
	To        time.Time
}

func (in DateRangeInput) window() (time.Time, time.Time) {
	to := in.To
	if to.IsZero() {
		to = time.Now().UTC()
	}

	from := in.From
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}

	return from, to
}

// TransactionsByType summarizes an account's transactions grouped by type.
func (uc *AnalyticsUseCase) TransactionsByType(ctx context.Context, input DateRangeInput) ([]TransactionAggregate, error) {
	from, to := input.window()

	return uc.analyticsRepo.TransactionsByType(ctx, input.AccountID, from, to)
}

// TransactionsByStatus summarizes an account's transactions grouped by status.
func (uc *AnalyticsUseCase) TransactionsByStatus(ctx context.Context, input DateRangeInput) ([]TransactionAggregate, error) {
	from, to := input.window()

	return uc.analyticsRepo.TransactionsByStatus(ctx, input.AccountID, from, to)
}

// TransactionsByDay summarizes an account's transactions grouped by calendar day.
func (uc *AnalyticsUseCase) TransactionsByDay(ctx context.Context, input DateRangeInput) ([]TransactionAggregate, error) {
	from, to := input.window()

	return uc.analyticsRepo.TransactionsByDay(ctx, input.AccountID, from, to)
}

// ConversionsByPair summarizes conversion volume and fees per currency pair.
func (uc *AnalyticsUseCase) ConversionsByPair(ctx context.Context, input DateRangeInput) ([]ConversionAggregate, error) {
	from, to := input.window()

	return uc.analyticsRepo.ConversionsByPair(ctx, from, to)
}

// BalanceTotals returns the per-currency sum of all buckets across all
// accounts. Used for reconciliation against the ledger of record.
func (uc *AnalyticsUseCase) BalanceTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	return uc.analyticsRepo.BalanceTotals(ctx)
}
