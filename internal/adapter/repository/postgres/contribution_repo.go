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

// ContributionRepository implements usecase.ContributionRepository.
//
// Ordering contract: every list query orders by id. IDs are ULIDs, so
// lexicographic order is creation order and "oldest first" tie-breaks in
// payment walks stay stable across reads.
type ContributionRepository struct {
	pool *pgxpool.Pool
}

// NewContributionRepository creates a new ContributionRepository.
func NewContributionRepository(pool *pgxpool.Pool) *ContributionRepository {
	return &ContributionRepository{pool: pool}
}

const contributionColumns = `id, expense_id, participant_id, amount_due, amount_paid, order_id, method, created_at, updated_at`

// CreateTx inserts a contribution within a transaction.
func (r *ContributionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, c *domain.Contribution) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO contributions (id, expense_id, participant_id, amount_due, amount_paid, order_id, method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		c.ID,
		c.ExpenseID,
		c.ParticipantID,
		c.AmountDue,
		c.AmountPaid,
		c.OrderID,
		c.Method,
		c.CreatedAt,
		c.UpdatedAt,
	)

	return err
}

// GetByID retrieves a contribution by ID.
func (r *ContributionRepository) GetByID(ctx context.Context, id string) (*domain.Contribution, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+contributionColumns+` FROM contributions WHERE id = $1
	`, id)

	return scanContribution(row)
}

// GetByIDForUpdate retrieves a contribution with a FOR UPDATE lock.
func (r *ContributionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Contribution, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+contributionColumns+` FROM contributions WHERE id = $1 FOR UPDATE
	`, id)

	return scanContribution(row)
}

// GetByIDsForUpdate locks multiple contributions in id order. Callers sort
// the ids they pass so concurrent lockers agree on acquisition order.
func (r *ContributionRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Contribution, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+contributionColumns+` FROM contributions
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

// GetByExpense lists an expense's contributions, oldest first.
func (r *ContributionRepository) GetByExpense(ctx context.Context, expenseID string) ([]*domain.Contribution, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contributionColumns+` FROM contributions
		WHERE expense_id = $1
		ORDER BY id
	`, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

// GetByExpenseForUpdate locks an expense's contributions, oldest first.
func (r *ContributionRepository) GetByExpenseForUpdate(ctx context.Context, tx usecase.Transaction, expenseID string) ([]*domain.Contribution, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+contributionColumns+` FROM contributions
		WHERE expense_id = $1
		ORDER BY id
		FOR UPDATE
	`, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

// GetOutstanding lists an expense's unsettled contributions, oldest first.
func (r *ContributionRepository) GetOutstanding(ctx context.Context, expenseID string) ([]*domain.Contribution, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contributionColumns+` FROM contributions
		WHERE expense_id = $1 AND amount_paid < amount_due
		ORDER BY id
	`, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

// ListByParticipant lists a participant's contributions across expenses.
func (r *ContributionRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Contribution, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contributionColumns+` FROM contributions
		WHERE participant_id = $1
		ORDER BY id
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

// ListByPlan lists every contribution of a plan via the participants table.
func (r *ContributionRepository) ListByPlan(ctx context.Context, planID string) ([]*domain.Contribution, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.expense_id, c.participant_id, c.amount_due, c.amount_paid, c.order_id, c.method, c.created_at, c.updated_at
		FROM contributions c
		JOIN participants p ON p.id = c.participant_id
		WHERE p.plan_id = $1
		ORDER BY c.id
	`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

// UpdatePaid sets the paid amount and method within a transaction.
func (r *ContributionRepository) UpdatePaid(ctx context.Context, tx usecase.Transaction, id string, amountPaid int64, method string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE contributions SET amount_paid = $2, method = $3, updated_at = $4 WHERE id = $1
	`, id, amountPaid, method, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContributionNotFound
	}

	return nil
}

// UpdateDue sets the due amount within a transaction.
func (r *ContributionRepository) UpdateDue(ctx context.Context, tx usecase.Transaction, id string, amountDue int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE contributions SET amount_due = $2, updated_at = $3 WHERE id = $1
	`, id, amountDue, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContributionNotFound
	}

	return nil
}

// SetOrder stamps the order id on a checkout's contributions.
func (r *ContributionRepository) SetOrder(ctx context.Context, tx usecase.Transaction, ids []string, orderID string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE contributions SET order_id = $2, updated_at = $3 WHERE id = ANY($1)
	`, ids, orderID, updatedAt)

	return err
}

// Delete removes a contribution within a transaction.
func (r *ContributionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM contributions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContributionNotFound
	}

	return nil
}

// DeleteByExpense removes every contribution of an expense.
func (r *ContributionRepository) DeleteByExpense(ctx context.Context, tx usecase.Transaction, expenseID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `DELETE FROM contributions WHERE expense_id = $1`, expenseID)

	return err
}

func scanContribution(row pgx.Row) (*domain.Contribution, error) {
	var c domain.Contribution
	err := row.Scan(
		&c.ID,
		&c.ExpenseID,
		&c.ParticipantID,
		&c.AmountDue,
		&c.AmountPaid,
		&c.OrderID,
		&c.Method,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContributionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanContributions(rows pgx.Rows) ([]*domain.Contribution, error) {
	var contributions []*domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		err := rows.Scan(
			&c.ID,
			&c.ExpenseID,
			&c.ParticipantID,
			&c.AmountDue,
			&c.AmountPaid,
			&c.OrderID,
			&c.Method,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, &c)
	}
	return contributions, rows.Err()
}
