package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/iho/tripledger/internal/domain"
)

// RosterUseCase reacts to roster changes. Removing a participant re-splits
// every expense the participant contributes to inside one transaction:
// either all expenses are re-split and the participant is gone, or nothing
// changed at all.
type RosterUseCase struct {
	txManager       TransactionManager
	participantRepo ParticipantRepository
	contribRepo     ContributionRepository
	split           *SplitUseCase
	idGen           IDGenerator
	retrier         Retrier
	cache           Cache
}

// NewRosterUseCase creates a new RosterUseCase.
func NewRosterUseCase(
	txManager TransactionManager,
	participantRepo ParticipantRepository,
	contribRepo ContributionRepository,
	split *SplitUseCase,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *RosterUseCase {
	return &RosterUseCase{
		txManager:       txManager,
		participantRepo: participantRepo,
		contribRepo:     contribRepo,
		split:           split,
		idGen:           idGen,
		retrier:         retrier,
		cache:           cache,
	}
}

// CreateParticipantInput represents input for creating a participant.
type CreateParticipantInput struct {
	PlanID      string
	DisplayName string
}

// CreateParticipant registers a new plan member. Existing expenses are not
// re-split on join; new members share newly created expenses.
func (uc *RosterUseCase) CreateParticipant(ctx context.Context, input CreateParticipantInput) (*domain.Participant, error) {
	if err := domain.ValidateName(input.DisplayName); err != nil {
		return nil, err
	}

	if input.PlanID == "" {
		return nil, domain.ErrInvalidInput
	}

	participant := &domain.Participant{
		ID:          uc.idGen.Generate(),
		PlanID:      input.PlanID,
		DisplayName: input.DisplayName,
		CreatedAt:   time.Now().UTC(),
	}

	err := uc.participantRepo.Create(ctx, participant)
	if err != nil {
		return nil, err
	}

	return participant, nil
}

// GetParticipant retrieves a participant by ID.
func (uc *RosterUseCase) GetParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	return uc.participantRepo.GetByID(ctx, id)
}

// RemoveParticipant re-splits all of the participant's expenses with the
// participant excluded, then deletes the participant record last. The
// whole operation commits atomically and is retried on serialization
// failures, so no expense is ever left re-split while another is not.
func (uc *RosterUseCase) RemoveParticipant(ctx context.Context, participantID string) error {
	participant, err := uc.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return err
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.removeOnce(ctx, participantID)
	})
	if err != nil {
		return err
	}

	_ = uc.cache.Delete(ctx, snapshotKey(participant.PlanID))

	return nil
}

func (uc *RosterUseCase) removeOnce(ctx context.Context, participantID string) error {
	contributions, err := uc.contribRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return err
	}

	// Lock expenses in sorted id order so a concurrent removal of another
	// participant sharing the same expenses cannot deadlock.
	expenseIDs := make([]string, 0, len(contributions))
	seen := make(map[string]bool, len(contributions))
	for _, c := range contributions {
		if !seen[c.ExpenseID] {
			seen[c.ExpenseID] = true
			expenseIDs = append(expenseIDs, c.ExpenseID)
		}
	}
	sort.Strings(expenseIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, expenseID := range expenseIDs {
		err = uc.split.ResplitTx(ctx, tx, expenseID, participantID)
		if err != nil {
			return err
		}
	}

	err = uc.participantRepo.Delete(ctx, tx, participantID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
