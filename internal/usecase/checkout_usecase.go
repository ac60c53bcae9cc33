package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/infrastructure/metrics"
)

// FeePolicy holds the checkout fee parameters. They are fixed in config;
// the reconciler never recomputes the fee from a notification.
type FeePolicy struct {
	Percent      decimal.Decimal
	FixedFee     int64
	RoundingUnit int64
}

// CheckoutUseCase creates payment orders for a payer's outstanding
// contributions.
type CheckoutUseCase struct {
	txManager   TransactionManager
	contribRepo ContributionRepository
	expenseRepo ExpenseRepository
	orderRepo   PaymentOrderRepository
	idGen       IDGenerator
	fees        FeePolicy
	metrics     *metrics.Metrics
}

// NewCheckoutUseCase creates a new CheckoutUseCase.
func NewCheckoutUseCase(
	txManager TransactionManager,
	contribRepo ContributionRepository,
	expenseRepo ExpenseRepository,
	orderRepo PaymentOrderRepository,
	idGen IDGenerator,
	fees FeePolicy,
	metrics *metrics.Metrics,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txManager:   txManager,
		contribRepo: contribRepo,
		expenseRepo: expenseRepo,
		orderRepo:   orderRepo,
		idGen:       idGen,
		fees:        fees,
		metrics:     metrics,
	}
}

// InitiateCheckoutInput represents input for initiating a checkout.
type InitiateCheckoutInput struct {
	ContributionIDs []string
	ParticipantID   string
}

// InitiateCheckout computes the net amount over the targeted outstanding
// contributions, charges the service fee on top and records a pending
// PaymentOrder keyed by the gateway order id. The targeted contributions
// are stamped with the order id as their correlation token.
func (uc *CheckoutUseCase) InitiateCheckout(ctx context.Context, input InitiateCheckoutInput) (*domain.PaymentOrder, error) {
	if len(input.ContributionIDs) == 0 || input.ParticipantID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Lock in sorted order so two concurrent checkouts over overlapping
	// contribution sets cannot deadlock.
	ids := make([]string, len(input.ContributionIDs))
	copy(ids, input.ContributionIDs)
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	contributions, err := uc.contribRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(contributions) != len(ids) {
		return nil, domain.ErrContributionNotFound
	}

	var net int64
	for _, c := range contributions {
		net += c.Remaining()
	}

	if net <= 0 {
		return nil, domain.ErrInvalidInput
	}

	expense, err := uc.expenseRepo.GetByID(ctx, contributions[0].ExpenseID)
	if err != nil {
		return nil, err
	}

	fee := domain.ServiceFee(net, uc.fees.Percent, uc.fees.FixedFee, uc.fees.RoundingUnit)
	now := time.Now().UTC()

	order := &domain.PaymentOrder{
		ID:              uc.idGen.Generate(),
		PlanID:          expense.PlanID,
		ParticipantID:   input.ParticipantID,
		ContributionIDs: ids,
		NetAmount:       net,
		ServiceFee:      fee,
		GrossAmount:     net + fee,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.orderRepo.CreateTx(ctx, tx, order)
	if err != nil {
		return nil, err
	}

	err = uc.contribRepo.SetOrder(ctx, tx, ids, order.ID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CheckoutsCreated.Inc()
	}

	return order, nil
}

// GetOrder retrieves a payment order by gateway order id.
func (uc *CheckoutUseCase) GetOrder(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	return uc.orderRepo.GetByID(ctx, id)
}
