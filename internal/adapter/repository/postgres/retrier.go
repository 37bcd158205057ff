package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Postgres reports both of these when a concurrent transaction won the
// row; the losing side is safe to run again.
const (
	pgCodeDeadlockDetected     = "40P01"
	pgCodeSerializationFailure = "40001"
)

// RetryPolicy bounds the backoff applied between attempts.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func defaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     4,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		MaxElapsedTime:  10 * time.Second,
	}
}

// Retrier re-runs operations that lost a deadlock or serialization
// race, with exponential backoff between attempts.
type Retrier struct {
	policy RetryPolicy
	logger zerolog.Logger
}

// NewRetrier creates a Retrier with the default policy.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return NewRetrierWithPolicy(logger, defaultRetryPolicy())
}

// NewRetrierWithPolicy creates a Retrier with an explicit policy.
func NewRetrierWithPolicy(logger zerolog.Logger, policy RetryPolicy) *Retrier {
	return &Retrier{policy: policy, logger: logger}
}

// Retry runs operation until it succeeds, fails with a non-retryable
// error, or the policy is exhausted.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.MaxInterval = r.policy.MaxInterval
	b.MaxElapsedTime = r.policy.MaxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		attempt++

		err := operation()
		switch {
		case err == nil:
			return nil
		case !isRetryable(err):
			return backoff.Permanent(err)
		case attempt >= r.policy.MaxAttempts:
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("transient database conflict, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgCodeDeadlockDetected || pgErr.Code == pgCodeSerializationFailure
}
