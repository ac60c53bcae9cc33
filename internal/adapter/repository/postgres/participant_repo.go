package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// ParticipantRepository implements usecase.ParticipantRepository.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// Create inserts a participant.
func (r *ParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO participants (id, plan_id, display_name, created_at)
		VALUES ($1, $2, $3, $4)
	`,
		participant.ID,
		participant.PlanID,
		participant.DisplayName,
		participant.CreatedAt,
	)

	return err
}

// GetByID retrieves a participant by ID.
func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	var p domain.Participant
	err := r.pool.QueryRow(ctx, `
		SELECT id, plan_id, display_name, created_at FROM participants WHERE id = $1
	`, id).Scan(&p.ID, &p.PlanID, &p.DisplayName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Delete removes a participant within a transaction.
func (r *ParticipantRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}

	return nil
}

// ListByPlan lists a plan's roster, oldest member first.
func (r *ParticipantRepository) ListByPlan(ctx context.Context, planID string) ([]*domain.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, plan_id, display_name, created_at FROM participants
		WHERE plan_id = $1
		ORDER BY id
	`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.PlanID, &p.DisplayName, &p.CreatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, &p)
	}

	return participants, rows.Err()
}
