package usecase

import (
	"context"
	"time"

	"github.com/iho/tripledger/internal/domain"
)

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	CreateTx(ctx context.Context, tx Transaction, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Expense, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Expense, error)
	UpdateTotal(ctx context.Context, tx Transaction, id string, total int64, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByPlan(ctx context.Context, planID string, limit, offset int) ([]*domain.Expense, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Expense, error)
}

// ParticipantRepository defines data access for participants.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByPlan(ctx context.Context, planID string) ([]*domain.Participant, error)
}

// ContributionRepository defines data access for contributions. Every
// listing method orders by id; ids are ULIDs, so that is creation order.
type ContributionRepository interface {
	CreateTx(ctx context.Context, tx Transaction, contribution *domain.Contribution) error
	GetByID(ctx context.Context, id string) (*domain.Contribution, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Contribution, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Contribution, error)
	GetByExpense(ctx context.Context, expenseID string) ([]*domain.Contribution, error)
	GetByExpenseForUpdate(ctx context.Context, tx Transaction, expenseID string) ([]*domain.Contribution, error)
	GetOutstanding(ctx context.Context, expenseID string) ([]*domain.Contribution, error)
	ListByParticipant(ctx context.Context, participantID string) ([]*domain.Contribution, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Contribution, error)
	UpdatePaid(ctx context.Context, tx Transaction, id string, amountPaid int64, method string, updatedAt time.Time) error
	UpdateDue(ctx context.Context, tx Transaction, id string, amountDue int64, updatedAt time.Time) error
	SetOrder(ctx context.Context, tx Transaction, ids []string, orderID string, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteByExpense(ctx context.Context, tx Transaction, expenseID string) error
}

// PaymentEventRepository defines data access for the append-only audit log.
type PaymentEventRepository interface {
	CreateTx(ctx context.Context, tx Transaction, event *domain.PaymentEvent) error
	ListByExpense(ctx context.Context, expenseID string, limit, offset int) ([]*domain.PaymentEvent, error)
	ListByContribution(ctx context.Context, contributionID string) ([]*domain.PaymentEvent, error)
}

// PaymentOrderRepository defines data access for payment orders.
type PaymentOrderRepository interface {
	CreateTx(ctx context.Context, tx Transaction, order *domain.PaymentOrder) error
	GetByID(ctx context.Context, id string) (*domain.PaymentOrder, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PaymentOrder, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.OrderStatus, overpayment int64, updatedAt time.Time) error
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
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
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

// SignatureVerifier checks gateway notification authenticity.
type SignatureVerifier interface {
	Verify(orderID, statusCode, grossAmount, signature string) error
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
