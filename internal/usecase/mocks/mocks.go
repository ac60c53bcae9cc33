package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Expense, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Expense, error)
	UpdateTotalFunc       func(ctx context.Context, tx usecase.Transaction, id string, total int64, updatedAt time.Time) error
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, id string) error
	ListByPlanFunc        func(ctx context.Context, planID string, limit, offset int) ([]*domain.Expense, error)
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{expenses: make(map[string]*domain.Expense)}
}

func (m *MockExpenseRepository) Seed(expenses ...*domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range expenses {
		m.expenses[e.ID] = e
	}
}

func (m *MockExpenseRepository) CreateTx(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenses[id]; ok {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockExpenseRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Expense, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.Expense
	for _, id := range ids {
		if e, ok := m.expenses[id]; ok {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (m *MockExpenseRepository) UpdateTotal(ctx context.Context, tx usecase.Transaction, id string, total int64, updatedAt time.Time) error {
	if m.UpdateTotalFunc != nil {
		return m.UpdateTotalFunc(ctx, tx, id, total, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.expenses[id]; ok {
		e.Total = total
		e.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) ListByPlan(ctx context.Context, planID string, limit, offset int) ([]*domain.Expense, error) {
	if m.ListByPlanFunc != nil {
		return m.ListByPlanFunc(ctx, planID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.Expense
	for _, e := range m.expenses {
		if e.PlanID == planID {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	return expenses, nil
}

func (m *MockExpenseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.Expense
	for _, e := range m.expenses {
		expenses = append(expenses, e)
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	if offset >= len(expenses) {
		return nil, nil
	}
	end := offset + limit
	if end > len(expenses) {
		end = len(expenses)
	}
	return expenses[offset:end], nil
}

// MockParticipantRepository is a mock implementation of ParticipantRepository.
type MockParticipantRepository struct {
	mu           sync.RWMutex
	participants map[string]*domain.Participant

	CreateFunc     func(ctx context.Context, participant *domain.Participant) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Participant, error)
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, id string) error
	ListByPlanFunc func(ctx context.Context, planID string) ([]*domain.Participant, error)
}

func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{participants: make(map[string]*domain.Participant)}
}

func (m *MockParticipantRepository) Seed(participants ...*domain.Participant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range participants {
		m.participants[p.ID] = p
	}
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participants[participant.ID] = participant
	return nil
}

func (m *MockParticipantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.participants[id]; ok {
		return p, nil
	}
	return nil, domain.ErrParticipantNotFound
}

func (m *MockParticipantRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.participants, id)
	return nil
}

func (m *MockParticipantRepository) ListByPlan(ctx context.Context, planID string) ([]*domain.Participant, error) {
	if m.ListByPlanFunc != nil {
		return m.ListByPlanFunc(ctx, planID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var participants []*domain.Participant
	for _, p := range m.participants {
		if p.PlanID == planID {
			participants = append(participants, p)
		}
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].ID < participants[j].ID })
	return participants, nil
}

// MockContributionRepository is a mock implementation of
// ContributionRepository. It keeps insertion order so creation-order
// guarantees hold like in the real repository.
type MockContributionRepository struct {
	mu            sync.RWMutex
	contributions map[string]*domain.Contribution
	order         []string

	CreateTxFunc              func(ctx context.Context, tx usecase.Transaction, contribution *domain.Contribution) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Contribution, error)
	GetByIDForUpdateFunc      func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Contribution, error)
	GetByIDsForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Contribution, error)
	GetByExpenseFunc          func(ctx context.Context, expenseID string) ([]*domain.Contribution, error)
	GetByExpenseForUpdateFunc func(ctx context.Context, tx usecase.Transaction, expenseID string) ([]*domain.Contribution, error)
	GetOutstandingFunc        func(ctx context.Context, expenseID string) ([]*domain.Contribution, error)
	ListByParticipantFunc     func(ctx context.Context, participantID string) ([]*domain.Contribution, error)
	ListByPlanFunc            func(ctx context.Context, planID string) ([]*domain.Contribution, error)
	UpdatePaidFunc            func(ctx context.Context, tx usecase.Transaction, id string, amountPaid int64, method string, updatedAt time.Time) error
	UpdateDueFunc             func(ctx context.Context, tx usecase.Transaction, id string, amountDue int64, updatedAt time.Time) error
	SetOrderFunc              func(ctx context.Context, tx usecase.Transaction, ids []string, orderID string, updatedAt time.Time) error
	DeleteFunc                func(ctx context.Context, tx usecase.Transaction, id string) error
	DeleteByExpenseFunc       func(ctx context.Context, tx usecase.Transaction, expenseID string) error

	planByParticipant map[string]string
}

func NewMockContributionRepository() *MockContributionRepository {
	return &MockContributionRepository{
		contributions:     make(map[string]*domain.Contribution),
		planByParticipant: make(map[string]string),
	}
}

func (m *MockContributionRepository) Seed(contributions ...*domain.Contribution) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range contributions {
		m.contributions[c.ID] = c
		m.order = append(m.order, c.ID)
	}
}

// SeedPlan associates a participant with a plan for ListByPlan.
func (m *MockContributionRepository) SeedPlan(participantID, planID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planByParticipant[participantID] = planID
}

func (m *MockContributionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, contribution *domain.Contribution) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, contribution)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contributions[contribution.ID] = contribution
	m.order = append(m.order, contribution.ID)
	return nil
}

func (m *MockContributionRepository) GetByID(ctx context.Context, id string) (*domain.Contribution, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.contributions[id]; ok {
		return copyContribution(c), nil
	}
	return nil, domain.ErrContributionNotFound
}

func (m *MockContributionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Contribution, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockContributionRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Contribution, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var contributions []*domain.Contribution
	for _, id := range m.order {
		for _, want := range ids {
			if id == want {
				if c, ok := m.contributions[id]; ok {
					contributions = append(contributions, copyContribution(c))
				}
			}
		}
	}
	return contributions, nil
}

func (m *MockContributionRepository) GetByExpense(ctx context.Context, expenseID string) ([]*domain.Contribution, error) {
	if m.GetByExpenseFunc != nil {
		return m.GetByExpenseFunc(ctx, expenseID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byExpenseLocked(expenseID), nil
}

func (m *MockContributionRepository) GetByExpenseForUpdate(ctx context.Context, tx usecase.Transaction, expenseID string) ([]*domain.Contribution, error) {
	if m.GetByExpenseForUpdateFunc != nil {
		return m.GetByExpenseForUpdateFunc(ctx, tx, expenseID)
	}
	return m.GetByExpense(ctx, expenseID)
}

func (m *MockContributionRepository) GetOutstanding(ctx context.Context, expenseID string) ([]*domain.Contribution, error) {
	if m.GetOutstandingFunc != nil {
		return m.GetOutstandingFunc(ctx, expenseID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var outstanding []*domain.Contribution
	for _, c := range m.byExpenseLocked(expenseID) {
		if !c.Settled() {
			outstanding = append(outstanding, c)
		}
	}
	return outstanding, nil
}

func (m *MockContributionRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Contribution, error) {
	if m.ListByParticipantFunc != nil {
		return m.ListByParticipantFunc(ctx, participantID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var contributions []*domain.Contribution
	for _, id := range m.order {
		if c, ok := m.contributions[id]; ok && c.ParticipantID == participantID {
			contributions = append(contributions, copyContribution(c))
		}
	}
	return contributions, nil
}

func (m *MockContributionRepository) ListByPlan(ctx context.Context, planID string) ([]*domain.Contribution, error) {
	if m.ListByPlanFunc != nil {
		return m.ListByPlanFunc(ctx, planID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var contributions []*domain.Contribution
	for _, id := range m.order {
		if c, ok := m.contributions[id]; ok && m.planByParticipant[c.ParticipantID] == planID {
			contributions = append(contributions, copyContribution(c))
		}
	}
	return contributions, nil
}

func (m *MockContributionRepository) UpdatePaid(ctx context.Context, tx usecase.Transaction, id string, amountPaid int64, method string, updatedAt time.Time) error {
	if m.UpdatePaidFunc != nil {
		return m.UpdatePaidFunc(ctx, tx, id, amountPaid, method, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contributions[id]; ok {
		c.AmountPaid = amountPaid
		c.Method = method
		c.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockContributionRepository) UpdateDue(ctx context.Context, tx usecase.Transaction, id string, amountDue int64, updatedAt time.Time) error {
	if m.UpdateDueFunc != nil {
		return m.UpdateDueFunc(ctx, tx, id, amountDue, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contributions[id]; ok {
		c.AmountDue = amountDue
		c.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockContributionRepository) SetOrder(ctx context.Context, tx usecase.Transaction, ids []string, orderID string, updatedAt time.Time) error {
	if m.SetOrderFunc != nil {
		return m.SetOrderFunc(ctx, tx, ids, orderID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if c, ok := m.contributions[id]; ok {
			c.OrderID = orderID
			c.UpdatedAt = updatedAt
		}
	}
	return nil
}

func (m *MockContributionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contributions, id)
	return nil
}

func (m *MockContributionRepository) DeleteByExpense(ctx context.Context, tx usecase.Transaction, expenseID string) error {
	if m.DeleteByExpenseFunc != nil {
		return m.DeleteByExpenseFunc(ctx, tx, expenseID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.contributions {
		if c.ExpenseID == expenseID {
			delete(m.contributions, id)
		}
	}
	return nil
}

func (m *MockContributionRepository) byExpenseLocked(expenseID string) []*domain.Contribution {
	var contributions []*domain.Contribution
	for _, id := range m.order {
		if c, ok := m.contributions[id]; ok && c.ExpenseID == expenseID {
			contributions = append(contributions, copyContribution(c))
		}
	}
	return contributions
}

// copyContribution returns a snapshot of a stored contribution so reads
// behave like the real repository: later writes through the repo must not
// mutate structs handed out earlier.
func copyContribution(c *domain.Contribution) *domain.Contribution {
	cp := *c
	return &cp
}

// MockPaymentEventRepository is a mock implementation of PaymentEventRepository.
type MockPaymentEventRepository struct {
	mu     sync.RWMutex
	Events []*domain.PaymentEvent

	CreateTxFunc           func(ctx context.Context, tx usecase.Transaction, event *domain.PaymentEvent) error
	ListByExpenseFunc      func(ctx context.Context, expenseID string, limit, offset int) ([]*domain.PaymentEvent, error)
	ListByContributionFunc func(ctx context.Context, contributionID string) ([]*domain.PaymentEvent, error)
}

func NewMockPaymentEventRepository() *MockPaymentEventRepository {
	return &MockPaymentEventRepository{}
}

func (m *MockPaymentEventRepository) CreateTx(ctx context.Context, tx usecase.Transaction, event *domain.PaymentEvent) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockPaymentEventRepository) ListByExpense(ctx context.Context, expenseID string, limit, offset int) ([]*domain.PaymentEvent, error) {
	if m.ListByExpenseFunc != nil {
		return m.ListByExpenseFunc(ctx, expenseID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.PaymentEvent
	for _, e := range m.Events {
		if e.ExpenseID == expenseID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockPaymentEventRepository) ListByContribution(ctx context.Context, contributionID string) ([]*domain.PaymentEvent, error) {
	if m.ListByContributionFunc != nil {
		return m.ListByContributionFunc(ctx, contributionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.PaymentEvent
	for _, e := range m.Events {
		if e.ContributionID == contributionID {
			events = append(events, e)
		}
	}
	return events, nil
}

// MockPaymentOrderRepository is a mock implementation of PaymentOrderRepository.
type MockPaymentOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.PaymentOrder

	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, order *domain.PaymentOrder) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.PaymentOrder, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.PaymentOrder, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.OrderStatus, overpayment int64, updatedAt time.Time) error
}

func NewMockPaymentOrderRepository() *MockPaymentOrderRepository {
	return &MockPaymentOrderRepository{orders: make(map[string]*domain.PaymentOrder)}
}

func (m *MockPaymentOrderRepository) Seed(orders ...*domain.PaymentOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range orders {
		m.orders[o.ID] = o
	}
}

func (m *MockPaymentOrderRepository) CreateTx(ctx context.Context, tx usecase.Transaction, order *domain.PaymentOrder) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockPaymentOrderRepository) GetByID(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockPaymentOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PaymentOrder, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPaymentOrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.OrderStatus, overpayment int64, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, overpayment, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id]; ok {
		o.Status = status
		o.Overpayment = overpayment
		o.UpdatedAt = updatedAt
	}
	return nil
}

// MockTransaction is a no-op transaction that records its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator generates monotonically increasing ids so creation
// order matches lexicographic order, like ULIDs.
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
	return fmt.Sprintf("id-%010d", m.counter)
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockSignatureVerifier accepts every signature unless overridden.
type MockSignatureVerifier struct {
	VerifyFunc func(orderID, statusCode, grossAmount, signature string) error
}

func NewMockSignatureVerifier() *MockSignatureVerifier {
	return &MockSignatureVerifier{}
}

func (m *MockSignatureVerifier) Verify(orderID, statusCode, grossAmount, signature string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(orderID, statusCode, grossAmount, signature)
	}
	return nil
}
