package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// PaymentOrderRepository implements usecase.PaymentOrderRepository.
// ContributionIDs are stored as a text array column.
type PaymentOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentOrderRepository creates a new PaymentOrderRepository.
func NewPaymentOrderRepository(pool *pgxpool.Pool) *PaymentOrderRepository {
	return &PaymentOrderRepository{pool: pool}
}

const paymentOrderColumns = `id, plan_id, participant_id, contribution_ids, net_amount, service_fee, gross_amount, overpayment, status, created_at, updated_at`

// CreateTx inserts an order within a transaction.
func (r *PaymentOrderRepository) CreateTx(ctx context.Context, tx usecase.Transaction, order *domain.PaymentOrder) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO payment_orders (id, plan_id, participant_id, contribution_ids, net_amount, service_fee, gross_amount, overpayment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		order.ID,
		order.PlanID,
		order.ParticipantID,
		order.ContributionIDs,
		order.NetAmount,
		order.ServiceFee,
		order.GrossAmount,
		order.Overpayment,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	return err
}

// GetByID retrieves an order by ID.
func (r *PaymentOrderRepository) GetByID(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentOrderColumns+` FROM payment_orders WHERE id = $1
	`, id)

	return scanPaymentOrder(row)
}

// GetByIDForUpdate locks an order row. Concurrent notifications for the
// same order serialize on it.
func (r *PaymentOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PaymentOrder, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+paymentOrderColumns+` FROM payment_orders WHERE id = $1 FOR UPDATE
	`, id)

	return scanPaymentOrder(row)
}

// UpdateStatus sets the order status and any recorded overpayment.
func (r *PaymentOrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.OrderStatus, overpayment int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE payment_orders SET status = $2, overpayment = $3, updated_at = $4 WHERE id = $1
	`, id, status, overpayment, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func scanPaymentOrder(row pgx.Row) (*domain.PaymentOrder, error) {
	var o domain.PaymentOrder
	err := row.Scan(
		&o.ID,
		&o.PlanID,
		&o.ParticipantID,
		&o.ContributionIDs,
		&o.NetAmount,
		&o.ServiceFee,
		&o.GrossAmount,
		&o.Overpayment,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}
