package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// PaymentEventRepository implements usecase.PaymentEventRepository.
// Events are append-only: there is no update or delete path, and no
// foreign key to contributions, so history survives roster changes.
type PaymentEventRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentEventRepository creates a new PaymentEventRepository.
func NewPaymentEventRepository(pool *pgxpool.Pool) *PaymentEventRepository {
	return &PaymentEventRepository{pool: pool}
}

const paymentEventColumns = `id, contribution_id, expense_id, participant_id, kind, previous_amount, new_amount, delta, method, order_id, created_at`

// CreateTx appends an event within a transaction.
func (r *PaymentEventRepository) CreateTx(ctx context.Context, tx usecase.Transaction, event *domain.PaymentEvent) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO payment_events (id, contribution_id, expense_id, participant_id, kind, previous_amount, new_amount, delta, method, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		event.ID,
		event.ContributionID,
		event.ExpenseID,
		event.ParticipantID,
		event.Kind,
		event.PreviousAmount,
		event.NewAmount,
		event.Delta,
		event.Method,
		event.OrderID,
		event.CreatedAt,
	)

	return err
}

// ListByExpense lists an expense's events, oldest first.
func (r *PaymentEventRepository) ListByExpense(ctx context.Context, expenseID string, limit, offset int) ([]*domain.PaymentEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentEventColumns+` FROM payment_events
		WHERE expense_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, expenseID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPaymentEvents(rows)
}

// ListByContribution lists one contribution's events, oldest first.
func (r *PaymentEventRepository) ListByContribution(ctx context.Context, contributionID string) ([]*domain.PaymentEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentEventColumns+` FROM payment_events
		WHERE contribution_id = $1
		ORDER BY id
	`, contributionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPaymentEvents(rows)
}

func scanPaymentEvents(rows pgx.Rows) ([]*domain.PaymentEvent, error) {
	var events []*domain.PaymentEvent
	for rows.Next() {
		var e domain.PaymentEvent
		err := rows.Scan(
			&e.ID,
			&e.ContributionID,
			&e.ExpenseID,
			&e.ParticipantID,
			&e.Kind,
			&e.PreviousAmount,
			&e.NewAmount,
			&e.Delta,
			&e.Method,
			&e.OrderID,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
