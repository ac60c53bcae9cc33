package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
	"github.com/iho/tripledger/internal/usecase/mocks"
)

func newConsistencyFixture() (*usecase.ConsistencyUseCase, *mocks.MockExpenseRepository, *mocks.MockContributionRepository, *mocks.MockPaymentEventRepository) {
	expenseRepo := mocks.NewMockExpenseRepository()
	contribRepo := mocks.NewMockContributionRepository()
	eventRepo := mocks.NewMockPaymentEventRepository()

	uc := usecase.NewConsistencyUseCase(expenseRepo, contribRepo, eventRepo)

	return uc, expenseRepo, contribRepo, eventRepo
}

func TestCheckExpenseConsistent(t *testing.T) {
	uc, expenseRepo, contribRepo, eventRepo := newConsistencyFixture()

	expenseRepo.Seed(&domain.Expense{ID: "exp-1", PlanID: "plan-1", Total: 900})
	contribRepo.Seed(
		&domain.Contribution{ID: "c1", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 500, AmountPaid: 200},
		&domain.Contribution{ID: "c2", ExpenseID: "exp-1", ParticipantID: "p2", AmountDue: 400},
	)
	_ = eventRepo.CreateTx(context.Background(), nil, &domain.PaymentEvent{
		ID: "e1", ContributionID: "c1", ExpenseID: "exp-1", Kind: domain.EventKindPaid, Delta: 200,
	})

	result, err := uc.CheckExpense(context.Background(), "exp-1")
	require.NoError(t, err)

	assert.True(t, result.IsConsistent)
	assert.Equal(t, int64(900), result.SumDue)
	assert.Empty(t, result.Problems)
}

func TestCheckExpenseDetectsDueDrift(t *testing.T) {
	uc, expenseRepo, contribRepo, _ := newConsistencyFixture()

	expenseRepo.Seed(&domain.Expense{ID: "exp-1", PlanID: "plan-1", Total: 900})
	contribRepo.Seed(
		&domain.Contribution{ID: "c1", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 500},
		&domain.Contribution{ID: "c2", ExpenseID: "exp-1", ParticipantID: "p2", AmountDue: 500},
	)

	result, err := uc.CheckExpense(context.Background(), "exp-1")
	require.NoError(t, err)

	assert.False(t, result.IsConsistent)
	assert.NotEmpty(t, result.Problems)
}

func TestCheckExpenseDetectsEventDrift(t *testing.T) {
	uc, expenseRepo, contribRepo, eventRepo := newConsistencyFixture()

	expenseRepo.Seed(&domain.Expense{ID: "exp-1", PlanID: "plan-1", Total: 300})
	contribRepo.Seed(&domain.Contribution{ID: "c1", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 300, AmountPaid: 300})
	_ = eventRepo.CreateTx(context.Background(), nil, &domain.PaymentEvent{
		ID: "e1", ContributionID: "c1", ExpenseID: "exp-1", Kind: domain.EventKindPaid, Delta: 100,
	})

	result, err := uc.CheckExpense(context.Background(), "exp-1")
	require.NoError(t, err)

	assert.False(t, result.IsConsistent)
}

func TestCheckAll(t *testing.T) {
	uc, expenseRepo, contribRepo, _ := newConsistencyFixture()

	expenseRepo.Seed(
		&domain.Expense{ID: "exp-1", PlanID: "plan-1", Total: 600},
		&domain.Expense{ID: "exp-2", PlanID: "plan-1", Total: 500},
	)
	contribRepo.Seed(
		&domain.Contribution{ID: "c1", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 600},
		&domain.Contribution{ID: "c2", ExpenseID: "exp-2", ParticipantID: "p1", AmountDue: 300},
	)

	report, err := uc.CheckAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalExpenses)
	assert.Equal(t, 1, report.ConsistentExpenses)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, "exp-2", report.Discrepancies[0].ExpenseID)
}
