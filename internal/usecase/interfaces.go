package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/domain"
)

// AccountRepository defines data access for accounts and their balances.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// Save persists the account row and upserts every currency balance
	// the aggregate currently holds. Must run inside the unit of work
	// that locked the account.
	Save(ctx context.Context, tx Transaction, account *domain.Account) error
	DeleteBalance(ctx context.Context, tx Transaction, accountID, currency string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	// Create persists a transaction outside any unit of work. Used to
	// retain FAILED rows after the surrounding work was rolled back.
	Create(ctx context.Context, txn *domain.Transaction) error
	CreateTx(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error)
}

// ConversionRepository defines data access for currency conversions.
type ConversionRepository interface {
	CreateTx(ctx context.Context, tx Transaction, conv *domain.Conversion) error
	Update(ctx context.Context, tx Transaction, conv *domain.Conversion) error
	GetByID(ctx context.Context, id string) (*domain.Conversion, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Conversion, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Conversion, error)
	ListByPair(ctx context.Context, fromCurrency, toCurrency string, limit, offset int) ([]*domain.Conversion, error)
	ListByStatus(ctx context.Context, status domain.ConversionStatus, limit, offset int) ([]*domain.Conversion, error)
}

// TransactionAggregate is one row of a grouped transaction summary.
type TransactionAggregate struct {
	GroupKey    string
	Currency    string
	Count       int64
	TotalAmount decimal.Decimal
}

// ConversionAggregate is one row of a grouped conversion summary.
type ConversionAggregate struct {
	FromCurrency string
	ToCurrency   string
	Count        int64
	TotalFrom    decimal.Decimal
	TotalFees    decimal.Decimal
}

// AnalyticsRepository defines read-only aggregations over the ledger.
type AnalyticsRepository interface {
	TransactionsByType(ctx context.Context, accountID string, from, to time.Time) ([]TransactionAggregate, error)
	TransactionsByStatus(ctx context.Context, accountID string, from, to time.Time) ([]TransactionAggregate, error)
	TransactionsByDay(ctx context.Context, accountID string, from, to time.Time) ([]TransactionAggregate, error)
	ConversionsByPair(ctx context.Context, from, to time.Time) ([]ConversionAggregate, error)
	BalanceTotals(ctx context.Context) (map[string]decimal.Decimal, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs. Audit writes run
// after commit as best-effort side effects, so there is no in-tx write.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// RateQuote is an exchange rate returned by the rate provider.
type RateQuote struct {
	Rate      decimal.Decimal
	Timestamp time.Time
	Source    string
}

// RateProvider supplies exchange rates. Mandatory and synchronous on
// the conversion path; failure aborts the operation.
type RateProvider interface {
	GetRate(ctx context.Context, fromCurrency, toCurrency string) (RateQuote, error)
}

// TokenValuation is the fiat value of a token position.
type TokenValuation struct {
	Value    decimal.Decimal
	Currency string
}

// TokenizationService values and burns asset tokens.
type TokenizationService interface {
	GetTokenValue(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (TokenValuation, error)
	BurnTokens(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) error
}

// JournalEntry is a record posted to the external ledger of record.
type JournalEntry struct {
	UserID        string
	AccountID     string
	TransactionID string
	Type          string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	Metadata      map[string]any
}

// JournalRecorder posts entries to the ledger of record. Best-effort:
// failures are logged by the caller and never surfaced.
type JournalRecorder interface {
	Record(ctx context.Context, entry JournalEntry) error
}

// Notifier posts user notifications. Best-effort.
type Notifier interface {
	Notify(ctx context.Context, userID, notificationType string, data map[string]any) error
}
