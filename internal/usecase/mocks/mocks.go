package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByUserIDFunc       func(ctx context.Context, userID string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	SaveFunc              func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	DeleteBalanceFunc     func(ctx context.Context, tx usecase.Transaction, accountID, currency string) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Save(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account.Version++
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) DeleteBalance(ctx context.Context, tx usecase.Transaction, accountID, currency string) error {
	if m.DeleteBalanceFunc != nil {
		return m.DeleteBalanceFunc(ctx, tx, accountID, currency)
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc         func(ctx context.Context, txn *domain.Transaction) error
	CreateTxFunc       func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	UpdateFunc         func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccountFunc  func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListByUserFunc     func(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
	GetByPaymentIDFunc func(ctx context.Context, paymentID string) (*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, paymentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.transactions {
		if txn.PaymentID != nil && *txn.PaymentID == paymentID {
			return txn, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// All returns every stored transaction. Test helper.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(m.transactions))
	for _, txn := range m.transactions {
		out = append(out, txn)
	}
	return out
}

// MockConversionRepository is a mock implementation of ConversionRepository.
type MockConversionRepository struct {
	mu          sync.RWMutex
	conversions map[string]*domain.Conversion

	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, conv *domain.Conversion) error
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, conv *domain.Conversion) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Conversion, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Conversion, error)
	ListByAccountFunc    func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Conversion, error)
	ListByPairFunc       func(ctx context.Context, fromCurrency, toCurrency string, limit, offset int) ([]*domain.Conversion, error)
	ListByStatusFunc     func(ctx context.Context, status domain.ConversionStatus, limit, offset int) ([]*domain.Conversion, error)
}

func NewMockConversionRepository() *MockConversionRepository {
	return &MockConversionRepository{
		conversions: make(map[string]*domain.Conversion),
	}
}

func (m *MockConversionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, conv *domain.Conversion) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, conv)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversions[conv.ID] = conv
	return nil
}

func (m *MockConversionRepository) Update(ctx context.Context, tx usecase.Transaction, conv *domain.Conversion) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, conv)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversions[conv.ID] = conv
	return nil
}

func (m *MockConversionRepository) GetByID(ctx context.Context, id string) (*domain.Conversion, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if conv, ok := m.conversions[id]; ok {
		return conv, nil
	}
	return nil, domain.ErrConversionNotFound
}

func (m *MockConversionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Conversion, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockConversionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Conversion, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Conversion
	for _, conv := range m.conversions {
		if conv.AccountID == accountID {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (m *MockConversionRepository) ListByPair(ctx context.Context, fromCurrency, toCurrency string, limit, offset int) ([]*domain.Conversion, error) {
	if m.ListByPairFunc != nil {
		return m.ListByPairFunc(ctx, fromCurrency, toCurrency, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Conversion
	for _, conv := range m.conversions {
		if conv.FromCurrency == fromCurrency && conv.ToCurrency == toCurrency {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (m *MockConversionRepository) ListByStatus(ctx context.Context, status domain.ConversionStatus, limit, offset int) ([]*domain.Conversion, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Conversion
	for _, conv := range m.conversions {
		if conv.Status == status {
			out = append(out, conv)
		}
	}
	return out, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if e.AggregateType == aggregateType && e.AggregateID == aggregateID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return nil
}

// Events returns every stored event. Test helper.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc          func(ctx context.Context, log *domain.AuditLog) error
	ListFunc            func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceIDFunc func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	if m.GetByResourceIDFunc != nil {
		return m.GetByResourceIDFunc(ctx, resourceType, resourceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			out = append(out, l)
		}
	}
	return out, nil
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository.
type MockAnalyticsRepository struct {
	TransactionsByTypeFunc   func(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error)
	TransactionsByStatusFunc func(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error)
	TransactionsByDayFunc    func(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error)
	ConversionsByPairFunc    func(ctx context.Context, from, to time.Time) ([]usecase.ConversionAggregate, error)
	BalanceTotalsFunc        func(ctx context.Context) (map[string]decimal.Decimal, error)
}

func NewMockAnalyticsRepository() *MockAnalyticsRepository {
	return &MockAnalyticsRepository{}
}

func (m *MockAnalyticsRepository) TransactionsByType(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error) {
	if m.TransactionsByTypeFunc != nil {
		return m.TransactionsByTypeFunc(ctx, accountID, from, to)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) TransactionsByStatus(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error) {
	if m.TransactionsByStatusFunc != nil {
		return m.TransactionsByStatusFunc(ctx, accountID, from, to)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) TransactionsByDay(ctx context.Context, accountID string, from, to time.Time) ([]usecase.TransactionAggregate, error) {
	if m.TransactionsByDayFunc != nil {
		return m.TransactionsByDayFunc(ctx, accountID, from, to)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) ConversionsByPair(ctx context.Context, from, to time.Time) ([]usecase.ConversionAggregate, error) {
	if m.ConversionsByPairFunc != nil {
		return m.ConversionsByPairFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) BalanceTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	if m.BalanceTotalsFunc != nil {
		return m.BalanceTotalsFunc(ctx)
	}
	return map[string]decimal.Decimal{}, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

// MockRateProvider is a mock implementation of RateProvider.
type MockRateProvider struct {
	GetRateFunc func(ctx context.Context, fromCurrency, toCurrency string) (usecase.RateQuote, error)
}

func NewMockRateProvider() *MockRateProvider {
	return &MockRateProvider{}
}

func (m *MockRateProvider) GetRate(ctx context.Context, fromCurrency, toCurrency string) (usecase.RateQuote, error) {
	if m.GetRateFunc != nil {
		return m.GetRateFunc(ctx, fromCurrency, toCurrency)
	}
	return usecase.RateQuote{
		Rate:      decimal.NewFromInt(1),
		Timestamp: time.Now().UTC(),
		Source:    "mock",
	}, nil
}

// MockTokenizationService is a mock implementation of TokenizationService.
type MockTokenizationService struct {
	GetTokenValueFunc func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error)
	BurnTokensFunc    func(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) error

	mu     sync.Mutex
	burned []decimal.Decimal
}

func NewMockTokenizationService() *MockTokenizationService {
	return &MockTokenizationService{}
}

func (m *MockTokenizationService) GetTokenValue(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) (usecase.TokenValuation, error) {
	if m.GetTokenValueFunc != nil {
		return m.GetTokenValueFunc(ctx, assetID, tokenType, amount)
	}
	return usecase.TokenValuation{Value: amount, Currency: "USD"}, nil
}

func (m *MockTokenizationService) BurnTokens(ctx context.Context, assetID, tokenType string, amount decimal.Decimal) error {
	if m.BurnTokensFunc != nil {
		return m.BurnTokensFunc(ctx, assetID, tokenType, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.burned = append(m.burned, amount)
	return nil
}

// Burned returns the amounts burned so far. Test helper.
func (m *MockTokenizationService) Burned() []decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]decimal.Decimal, len(m.burned))
	copy(out, m.burned)
	return out
}

// MockJournalRecorder is a mock implementation of JournalRecorder.
type MockJournalRecorder struct {
	mu      sync.Mutex
	entries []usecase.JournalEntry

	RecordFunc func(ctx context.Context, entry usecase.JournalEntry) error
}

func NewMockJournalRecorder() *MockJournalRecorder {
	return &MockJournalRecorder{}
}

func (m *MockJournalRecorder) Record(ctx context.Context, entry usecase.JournalEntry) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

// Entries returns the recorded entries. Test helper.
func (m *MockJournalRecorder) Entries() []usecase.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]usecase.JournalEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mu    sync.Mutex
	sent  int
	Calls []string

	NotifyFunc func(ctx context.Context, userID, notificationType string, data map[string]any) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, userID, notificationType string, data map[string]any) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, userID, notificationType, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent++
	m.Calls = append(m.Calls, notificationType)
	return nil
}
