package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/infrastructure/metrics"
)

// ReconcileUseCase consumes payment-gateway notifications and applies them
// idempotently to the contribution ledger. Per order the state machine is
// pending -> {success, failed}; a notification for a terminal order is
// acknowledged without touching the ledger, which is the guard against
// duplicate webhook delivery.
type ReconcileUseCase struct {
	txManager   TransactionManager
	orderRepo   PaymentOrderRepository
	contribRepo ContributionRepository
	ledger      *LedgerUseCase
	verifier    SignatureVerifier
	retrier     Retrier
	cache       Cache
	metrics     *metrics.Metrics
}

// NewReconcileUseCase creates a new ReconcileUseCase.
func NewReconcileUseCase(
	txManager TransactionManager,
	orderRepo PaymentOrderRepository,
	contribRepo ContributionRepository,
	ledger *LedgerUseCase,
	verifier SignatureVerifier,
	retrier Retrier,
	cache Cache,
	metrics *metrics.Metrics,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txManager:   txManager,
		orderRepo:   orderRepo,
		contribRepo: contribRepo,
		ledger:      ledger,
		verifier:    verifier,
		retrier:     retrier,
		cache:       cache,
		metrics:     metrics,
	}
}

// NotificationInput is one gateway webhook delivery.
type NotificationInput struct {
	OrderID           string
	StatusCode        string
	GrossAmount       string
	Signature         string
	TransactionStatus string
	FraudStatus       string
}

// NotificationResult reports what a notification did to the ledger.
type NotificationResult struct {
	Accepted    bool
	Duplicate   bool
	Status      domain.OrderStatus
	Credited    int64
	Overpayment int64
}

// HandleNotification verifies, maps and applies one notification.
// Signature and unknown-order failures are returned to the caller so the
// gateway's retry policy reacts; everything else answers accepted.
func (uc *ReconcileUseCase) HandleNotification(ctx context.Context, input NotificationInput) (*NotificationResult, error) {
	err := uc.verifier.Verify(input.OrderID, input.StatusCode, input.GrossAmount, input.Signature)
	if err != nil {
		return nil, err
	}

	gross, err := parseGrossAmount(input.GrossAmount)
	if err != nil {
		return nil, err
	}

	outcome := domain.NotificationOutcome(input.TransactionStatus, input.FraudStatus)

	var result *NotificationResult
	err = uc.retrier.Retry(ctx, func() error {
		var opErr error
		result, opErr = uc.apply(ctx, input.OrderID, outcome, gross)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Notifications.WithLabelValues(string(result.Status)).Inc()
		if result.Overpayment > 0 {
			uc.metrics.Overpayments.Inc()
		}
	}

	return result, nil
}

func (uc *ReconcileUseCase) apply(ctx context.Context, orderID string, outcome domain.OrderStatus, gross int64) (*NotificationResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The row lock serializes notifications per order; the terminal check
	// below happens under it, so check-then-act is atomic.
	order, err := uc.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Terminal() {
		return &NotificationResult{Accepted: true, Duplicate: true, Status: order.Status}, nil
	}

	now := time.Now().UTC()

	switch outcome {
	case domain.OrderStatusPending:
		// No mutation; the order stays pending for a later retry.
		return &NotificationResult{Accepted: true, Status: domain.OrderStatusPending}, nil

	case domain.OrderStatusFailed:
		err = uc.orderRepo.UpdateStatus(ctx, tx, order.ID, domain.OrderStatusFailed, 0, now)
		if err != nil {
			return nil, err
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		_ = uc.cache.Delete(ctx, snapshotKey(order.PlanID))

		return &NotificationResult{Accepted: true, Status: domain.OrderStatusFailed}, nil
	}

	// Success path. The fee was fixed at checkout; subtracting it from the
	// signed gross prevents fee-manipulation drift.
	remaining := gross - order.ServiceFee
	if remaining < 0 {
		return nil, domain.ErrInvalidInput
	}

	contributions, err := uc.contribRepo.GetByIDsForUpdate(ctx, tx, order.ContributionIDs)
	if err != nil {
		return nil, err
	}

	var credited int64
	for _, contribution := range contributions {
		if remaining == 0 {
			break
		}

		due := contribution.Remaining()
		if due == 0 {
			continue
		}

		amount := due
		if remaining < amount {
			amount = remaining
		}

		_, err = uc.ledger.CreditTx(ctx, tx, contribution.ID, amount, domain.MethodGateway, order.ID)
		if err != nil {
			return nil, err
		}

		remaining -= amount
		credited += amount
	}

	// Leftover funds beyond every targeted due are not applied elsewhere;
	// they are recorded on the order as overpayment.
	err = uc.orderRepo.UpdateStatus(ctx, tx, order.ID, domain.OrderStatusSuccess, remaining, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_ = uc.cache.Delete(ctx, snapshotKey(order.PlanID))

	return &NotificationResult{
		Accepted:    true,
		Status:      domain.OrderStatusSuccess,
		Credited:    credited,
		Overpayment: remaining,
	}, nil
}

// parseGrossAmount parses the gateway's decimal string ("10000.00") into
// smallest currency units, rejecting fractional or negative values.
func parseGrossAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}

	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, domain.ErrInvalidInput
	}

	return d.IntPart(), nil
}
