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

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, plan_id, name, total, category, created_at, updated_at`

// CreateTx inserts an expense within a transaction.
func (r *ExpenseRepository) CreateTx(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO expenses (id, plan_id, name, total, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		expense.ID,
		expense.PlanID,
		expense.Name,
		expense.Total,
		expense.Category,
		expense.CreatedAt,
		expense.UpdatedAt,
	)

	return err
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE id = $1
	`, id)

	return scanExpense(row)
}

// GetByIDForUpdate retrieves an expense by ID with a FOR UPDATE lock.
func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE id = $1 FOR UPDATE
	`, id)

	return scanExpense(row)
}

// GetByIDsForUpdate locks multiple expenses. IDs must be pre-sorted by the
// caller so concurrent lockers acquire rows in the same order.
func (r *ExpenseRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Expense, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// UpdateTotal updates an expense's total within a transaction.
func (r *ExpenseRepository) UpdateTotal(ctx context.Context, tx usecase.Transaction, id string, total int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE expenses SET total = $2, updated_at = $3 WHERE id = $1
	`, id, total, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// Delete removes an expense within a transaction.
func (r *ExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ListByPlan lists expenses for a plan, oldest first.
func (r *ExpenseRepository) ListByPlan(ctx context.Context, planID string, limit, offset int) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE plan_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, planID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// List lists all expenses, oldest first.
func (r *ExpenseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.PlanID, &e.Name, &e.Total, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &e, nil
}

func scanExpenses(rows pgx.Rows) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.PlanID, &e.Name, &e.Total, &e.Category, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}
