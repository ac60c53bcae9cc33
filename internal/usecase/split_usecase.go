package usecase

import (
	"context"
	"time"

	"github.com/iho/tripledger/internal/domain"
)

// SplitUseCase is the split engine: it creates and refreshes an expense's
// contribution set so that the dues always sum exactly to the total.
type SplitUseCase struct {
	txManager       TransactionManager
	expenseRepo     ExpenseRepository
	participantRepo ParticipantRepository
	contribRepo     ContributionRepository
	ledger          *LedgerUseCase
	idGen           IDGenerator
	cache           Cache
}

// NewSplitUseCase creates a new SplitUseCase.
func NewSplitUseCase(
	txManager TransactionManager,
	expenseRepo ExpenseRepository,
	participantRepo ParticipantRepository,
	contribRepo ContributionRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	cache Cache,
) *SplitUseCase {
	return &SplitUseCase{
		txManager:       txManager,
		expenseRepo:     expenseRepo,
		participantRepo: participantRepo,
		contribRepo:     contribRepo,
		ledger:          ledger,
		idGen:           idGen,
		cache:           cache,
	}
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	PlanID         string
	Name           string
	Category       string
	Total          int64
	ParticipantIDs []string
}

// CreateExpense creates an expense and one contribution per roster member,
// dues computed by SplitEvenly, inside one transaction.
func (uc *SplitUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, []*domain.Contribution, error) {
	if err := domain.ValidateTotal(input.Total); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, nil, err
	}

	if len(input.ParticipantIDs) == 0 {
		return nil, nil, domain.ErrNoParticipants
	}

	// Roster members must exist and belong to the plan before any write.
	for _, pid := range input.ParticipantIDs {
		participant, err := uc.participantRepo.GetByID(ctx, pid)
		if err != nil {
			return nil, nil, err
		}

		if participant.PlanID != input.PlanID {
			return nil, nil, domain.ErrInvalidInput
		}
	}

	shares, err := domain.SplitEvenly(input.Total, len(input.ParticipantIDs))
	if err != nil {
		return nil, nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	expense := &domain.Expense{
		ID:        uc.idGen.Generate(),
		PlanID:    input.PlanID,
		Name:      input.Name,
		Total:     input.Total,
		Category:  input.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := expense.Validate(); err != nil {
		return nil, nil, err
	}

	err = uc.expenseRepo.CreateTx(ctx, tx, expense)
	if err != nil {
		return nil, nil, err
	}

	contributions := make([]*domain.Contribution, 0, len(input.ParticipantIDs))
	for i, pid := range input.ParticipantIDs {
		contribution := &domain.Contribution{
			ID:            uc.idGen.Generate(),
			ExpenseID:     expense.ID,
			ParticipantID: pid,
			AmountDue:     shares[i],
			AmountPaid:    0,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		err = uc.contribRepo.CreateTx(ctx, tx, contribution)
		if err != nil {
			return nil, nil, err
		}

		contributions = append(contributions, contribution)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	_ = uc.cache.Delete(ctx, snapshotKey(input.PlanID))

	return expense, contributions, nil
}

// GetExpense retrieves an expense with its contributions.
func (uc *SplitUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, []*domain.Contribution, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	contributions, err := uc.contribRepo.GetByExpense(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return expense, contributions, nil
}

// UpdateExpenseTotal changes an expense's total and re-splits every live
// contribution's due amount from the new total, emitting due-kind events.
func (uc *SplitUseCase) UpdateExpenseTotal(ctx context.Context, expenseID string, total int64) (*domain.Expense, error) {
	if err := domain.ValidateTotal(total); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	expense, err := uc.expenseRepo.GetByIDForUpdate(ctx, tx, expenseID)
	if err != nil {
		return nil, err
	}

	contributions, err := uc.contribRepo.GetByExpenseForUpdate(ctx, tx, expenseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if len(contributions) > 0 {
		shares, err := domain.SplitEvenly(total, len(contributions))
		if err != nil {
			return nil, err
		}

		for i, contribution := range contributions {
			err = uc.ledger.SetDueTx(ctx, tx, contribution, shares[i], now)
			if err != nil {
				return nil, err
			}
		}
	}

	err = uc.expenseRepo.UpdateTotal(ctx, tx, expenseID, total, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_ = uc.cache.Delete(ctx, snapshotKey(expense.PlanID))

	expense.Total = total
	expense.UpdatedAt = now

	return expense, nil
}

// DeleteExpense removes an expense together with its contributions. The
// payment-event history stays behind for audit.
func (uc *SplitUseCase) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	expense, err := uc.expenseRepo.GetByIDForUpdate(ctx, tx, expenseID)
	if err != nil {
		return err
	}

	err = uc.contribRepo.DeleteByExpense(ctx, tx, expenseID)
	if err != nil {
		return err
	}

	err = uc.expenseRepo.Delete(ctx, tx, expenseID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	_ = uc.cache.Delete(ctx, snapshotKey(expense.PlanID))

	return nil
}

// ResplitTx re-splits one expense after a participant leaves, inside the
// caller's transaction. The removed participant's contribution is audited
// (due driven to zero) and deleted, then the remaining contributions' dues
// are recomputed from the full expense total. Collected money is not
// subtracted from the total first: remaining participants cover their
// recomputed share regardless of what the leaver already paid, and the
// leaver's payment history stays in the event log.
func (uc *SplitUseCase) ResplitTx(ctx context.Context, tx Transaction, expenseID, removedParticipantID string) error {
	expense, err := uc.expenseRepo.GetByIDForUpdate(ctx, tx, expenseID)
	if err != nil {
		return err
	}

	contributions, err := uc.contribRepo.GetByExpenseForUpdate(ctx, tx, expenseID)
	if err != nil {
		return err
	}

	var removed *domain.Contribution
	remaining := make([]*domain.Contribution, 0, len(contributions))
	for _, c := range contributions {
		if c.ParticipantID == removedParticipantID {
			removed = c
			continue
		}

		remaining = append(remaining, c)
	}

	if removed == nil {
		return domain.ErrContributionNotFound
	}

	if len(remaining) == 0 {
		return domain.ErrNoParticipants
	}

	now := time.Now().UTC()

	// Audit the removal before deleting, so the due change is explained.
	err = uc.ledger.SetDueTx(ctx, tx, removed, 0, now)
	if err != nil {
		return err
	}

	err = uc.contribRepo.Delete(ctx, tx, removed.ID)
	if err != nil {
		return err
	}

	shares, err := domain.SplitEvenly(expense.Total, len(remaining))
	if err != nil {
		return err
	}

	for i, contribution := range remaining {
		err = uc.ledger.SetDueTx(ctx, tx, contribution, shares[i], now)
		if err != nil {
			return err
		}
	}

	return nil
}
