package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
	"github.com/iho/tripledger/internal/usecase/mocks"
)

func newCheckoutFixture() (*usecase.CheckoutUseCase, *mocks.MockContributionRepository, *mocks.MockPaymentOrderRepository) {
	contribRepo := mocks.NewMockContributionRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	orderRepo := mocks.NewMockPaymentOrderRepository()

	expenseRepo.Seed(&domain.Expense{ID: "exp-1", PlanID: "plan-1", Total: 700})

	uc := usecase.NewCheckoutUseCase(
		mocks.NewMockTransactionManager(),
		contribRepo,
		expenseRepo,
		orderRepo,
		mocks.NewMockIDGenerator(),
		usecase.FeePolicy{
			Percent:      decimal.NewFromFloat(0.02),
			FixedFee:     1000,
			RoundingUnit: 100,
		},
		nil,
	)

	return uc, contribRepo, orderRepo
}

func TestInitiateCheckout(t *testing.T) {
	uc, contribRepo, orderRepo := newCheckoutFixture()
	contribRepo.Seed(
		&domain.Contribution{ID: "c1", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 300, AmountPaid: 100},
		&domain.Contribution{ID: "c2", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 400},
	)

	order, err := uc.InitiateCheckout(context.Background(), usecase.InitiateCheckoutInput{
		ContributionIDs: []string{"c2", "c1"},
		ParticipantID:   "p1",
	})
	require.NoError(t, err)

	// net = 200 remaining + 400 remaining; fee = ceil((600*0.02+1000)/100)*100.
	assert.Equal(t, int64(600), order.NetAmount)
	assert.Equal(t, int64(1100), order.ServiceFee)
	assert.Equal(t, int64(1700), order.GrossAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, []string{"c1", "c2"}, order.ContributionIDs)
	assert.Equal(t, "plan-1", order.PlanID)

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.GrossAmount, stored.GrossAmount)

	// Targets carry the order id as their correlation token.
	for _, id := range order.ContributionIDs {
		c, err := contribRepo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, order.ID, c.OrderID)
	}
}

func TestInitiateCheckoutRejectsMissingContribution(t *testing.T) {
	uc, contribRepo, _ := newCheckoutFixture()
	contribRepo.Seed(&domain.Contribution{ID: "c1", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 300})

	_, err := uc.InitiateCheckout(context.Background(), usecase.InitiateCheckoutInput{
		ContributionIDs: []string{"c1", "ghost"},
		ParticipantID:   "p1",
	})
	assert.ErrorIs(t, err, domain.ErrContributionNotFound)
}

func TestInitiateCheckoutRejectsSettledTargets(t *testing.T) {
	uc, contribRepo, _ := newCheckoutFixture()
	contribRepo.Seed(&domain.Contribution{ID: "c1", ExpenseID: "exp-1", ParticipantID: "p1", AmountDue: 300, AmountPaid: 300})

	_, err := uc.InitiateCheckout(context.Background(), usecase.InitiateCheckoutInput{
		ContributionIDs: []string{"c1"},
		ParticipantID:   "p1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInitiateCheckoutRejectsEmptyInput(t *testing.T) {
	uc, _, _ := newCheckoutFixture()

	_, err := uc.InitiateCheckout(context.Background(), usecase.InitiateCheckoutInput{ParticipantID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.InitiateCheckout(context.Background(), usecase.InitiateCheckoutInput{ContributionIDs: []string{"c1"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
