package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
)

// MockObligationRepository is a mock implementation of ObligationRepository.
type MockObligationRepository struct {
	mu          sync.RWMutex
	obligations map[string]*domain.ObligationRecord
	order       []string

	CreateFunc              func(ctx context.Context, rec *domain.ObligationRecord) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.ObligationRecord, error)
	ListFunc                func(ctx context.Context, limit, offset int) ([]*domain.ObligationRecord, error)
	ListAllFunc             func(ctx context.Context) ([]*domain.ObligationRecord, error)
	MarkPaidFunc            func(ctx context.Context, id string, paidAt time.Time) error
	MarkInstallmentPaidFunc func(ctx context.Context, id string, sequenceNumber int, paidAt time.Time) error
}

func NewMockObligationRepository() *MockObligationRepository {
	return &MockObligationRepository{
		obligations: make(map[string]*domain.ObligationRecord),
	}
}

func (m *MockObligationRepository) Create(ctx context.Context, rec *domain.ObligationRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obligations[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return nil
}

func (m *MockObligationRepository) GetByID(ctx context.Context, id string) (*domain.ObligationRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.obligations[id]; ok {
		return rec, nil
	}
	return nil, domain.ErrObligationNotFound
}

func (m *MockObligationRepository) List(ctx context.Context, limit, offset int) ([]*domain.ObligationRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	all, _ := m.ListAll(ctx)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockObligationRepository) ListAll(ctx context.Context) ([]*domain.ObligationRecord, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]*domain.ObligationRecord, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, m.obligations[id])
	}
	return records, nil
}

func (m *MockObligationRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, id, paidAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.obligations[id]
	if !ok {
		return domain.ErrObligationNotFound
	}
	rec.Paid = true
	rec.PaidDate = &paidAt
	return nil
}

func (m *MockObligationRepository) MarkInstallmentPaid(ctx context.Context, id string, sequenceNumber int, paidAt time.Time) error {
	if m.MarkInstallmentPaidFunc != nil {
		return m.MarkInstallmentPaidFunc(ctx, id, sequenceNumber, paidAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.obligations[id]
	if !ok {
		return domain.ErrObligationNotFound
	}
	for i := range rec.Installments {
		if rec.Installments[i].SequenceNumber == sequenceNumber {
			rec.Installments[i].Paid = true
			rec.Installments[i].PaidDate = &paidAt
			return nil
		}
	}
	return domain.ErrInstallmentNotFound
}

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	mu      sync.RWMutex
	budgets map[string]*domain.Budget

	UpsertFunc      func(ctx context.Context, budget *domain.Budget) error
	GetByPeriodFunc func(ctx context.Context, period string) (*domain.Budget, error)
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		budgets: make(map[string]*domain.Budget),
	}
}

func (m *MockBudgetRepository) Upsert(ctx context.Context, budget *domain.Budget) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets[budget.Period] = budget
	return nil
}

func (m *MockBudgetRepository) GetByPeriod(ctx context.Context, period string) (*domain.Budget, error) {
	if m.GetByPeriodFunc != nil {
		return m.GetByPeriodFunc(ctx, period)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.budgets[period]; ok {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// MockGoalRepository is a mock implementation of GoalRepository.
type MockGoalRepository struct {
	mu    sync.RWMutex
	goals map[string]*domain.Goal
	order []string

	CreateFunc        func(ctx context.Context, goal *domain.Goal) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Goal, error)
	ListFunc          func(ctx context.Context) ([]*domain.Goal, error)
	AddDepositFunc    func(ctx context.Context, deposit *domain.Deposit) error
	MarkCompletedFunc func(ctx context.Context, id string) error
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		goals: make(map[string]*domain.Goal),
	}
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, goal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.ID] = goal
	m.order = append(m.order, goal.ID)
	return nil
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.goals[id]; ok {
		return g, nil
	}
	return nil, domain.ErrGoalNotFound
}

func (m *MockGoalRepository) List(ctx context.Context) ([]*domain.Goal, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	goals := make([]*domain.Goal, 0, len(m.order))
	for _, id := range m.order {
		goals = append(goals, m.goals[id])
	}
	return goals, nil
}

func (m *MockGoalRepository) AddDeposit(ctx context.Context, deposit *domain.Deposit) error {
	if m.AddDepositFunc != nil {
		return m.AddDepositFunc(ctx, deposit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[deposit.GoalID]
	if !ok {
		return domain.ErrGoalNotFound
	}
	g.Deposits = append(g.Deposits, *deposit)
	return nil
}

func (m *MockGoalRepository) MarkCompleted(ctx context.Context, id string) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return domain.ErrGoalNotFound
	}
	g.Completed = true
	return nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	Categories domain.CategoryMap

	ListFunc func(ctx context.Context) (domain.CategoryMap, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: domain.CategoryMap{},
	}
}

func (m *MockCategoryRepository) List(ctx context.Context) (domain.CategoryMap, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.Categories, nil
}

// MockAlertStateStore is a mock implementation of AlertStateStore.
type MockAlertStateStore struct {
	mu   sync.Mutex
	seen map[string]bool

	MarkAnnouncedFunc  func(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ClearAnnouncedFunc func(ctx context.Context, key string) error
}

func NewMockAlertStateStore() *MockAlertStateStore {
	return &MockAlertStateStore{
		seen: make(map[string]bool),
	}
}

func (m *MockAlertStateStore) MarkAnnounced(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.MarkAnnouncedFunc != nil {
		return m.MarkAnnouncedFunc(ctx, key, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

func (m *MockAlertStateStore) ClearAnnounced(ctx context.Context, key string) error {
	if m.ClearAnnouncedFunc != nil {
		return m.ClearAnnouncedFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, key)
	return nil
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
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
	return fmt.Sprintf("id-%d", m.counter)
}
