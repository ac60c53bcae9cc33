package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iho/tripledger/internal/domain"
)

// LedgerUseCase is the single mutation path for contribution amounts.
// Split engine, reconciler and roster handler all write through it so the
// sum-conservation and monotonic-paid invariants are enforced in one place.
type LedgerUseCase struct {
	txManager       TransactionManager
	contribRepo     ContributionRepository
	participantRepo ParticipantRepository
	eventRepo       PaymentEventRepository
	idGen           IDGenerator
	cache           Cache
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	contribRepo ContributionRepository,
	participantRepo ParticipantRepository,
	eventRepo PaymentEventRepository,
	idGen IDGenerator,
	cache Cache,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		contribRepo:     contribRepo,
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		idGen:           idGen,
		cache:           cache,
	}
}

// GetOutstanding returns an expense's unsettled contributions oldest first.
// The ordering is the tie-break used when a lump payment is distributed
// across several contributions.
func (uc *LedgerUseCase) GetOutstanding(ctx context.Context, expenseID string) ([]*domain.Contribution, error) {
	return uc.contribRepo.GetOutstanding(ctx, expenseID)
}

// GetContribution retrieves a contribution by ID.
func (uc *LedgerUseCase) GetContribution(ctx context.Context, id string) (*domain.Contribution, error) {
	return uc.contribRepo.GetByID(ctx, id)
}

// CreditTx increases a locked contribution's paid amount by amount within
// the caller's transaction and appends one paid-kind event. Automated
// methods never push the paid amount past the due amount; the credit is
// clamped and the event records the amount actually applied.
func (uc *LedgerUseCase) CreditTx(ctx context.Context, tx Transaction, contributionID string, amount int64, method, orderID string) (*domain.Contribution, error) {
	if amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	contribution, err := uc.contribRepo.GetByIDForUpdate(ctx, tx, contributionID)
	if err != nil {
		return nil, err
	}

	newPaid := contribution.AmountPaid + amount
	if method != domain.MethodManual && newPaid > contribution.AmountDue {
		newPaid = contribution.AmountDue
	}

	now := time.Now().UTC()

	err = uc.contribRepo.UpdatePaid(ctx, tx, contributionID, newPaid, method, now)
	if err != nil {
		return nil, err
	}

	event := &domain.PaymentEvent{
		ID:             uc.idGen.Generate(),
		ContributionID: contribution.ID,
		ExpenseID:      contribution.ExpenseID,
		ParticipantID:  contribution.ParticipantID,
		Kind:           domain.EventKindPaid,
		PreviousAmount: contribution.AmountPaid,
		NewAmount:      newPaid,
		Delta:          newPaid - contribution.AmountPaid,
		Method:         method,
		OrderID:        orderID,
		CreatedAt:      now,
	}

	err = uc.eventRepo.CreateTx(ctx, tx, event)
	if err != nil {
		return nil, err
	}

	contribution.AmountPaid = newPaid
	contribution.Method = method
	contribution.UpdatedAt = now

	return contribution, nil
}

// SetDueTx rewrites a locked contribution's due amount within the caller's
// transaction and appends one due-kind event. No money moves; the event
// exists so audit trails explain balance changes after a re-split.
func (uc *LedgerUseCase) SetDueTx(ctx context.Context, tx Transaction, contribution *domain.Contribution, amountDue int64, now time.Time) error {
	if amountDue < 0 {
		return domain.ErrInvalidAmount
	}

	if amountDue == contribution.AmountDue {
		return nil
	}

	err := uc.contribRepo.UpdateDue(ctx, tx, contribution.ID, amountDue, now)
	if err != nil {
		return err
	}

	event := &domain.PaymentEvent{
		ID:             uc.idGen.Generate(),
		ContributionID: contribution.ID,
		ExpenseID:      contribution.ExpenseID,
		ParticipantID:  contribution.ParticipantID,
		Kind:           domain.EventKindDue,
		PreviousAmount: contribution.AmountDue,
		NewAmount:      amountDue,
		Delta:          amountDue - contribution.AmountDue,
		Method:         domain.MethodResplit,
		CreatedAt:      now,
	}

	err = uc.eventRepo.CreateTx(ctx, tx, event)
	if err != nil {
		return err
	}

	contribution.AmountDue = amountDue
	contribution.UpdatedAt = now

	return nil
}

// SetPaid is the manual override for cash reconciliation: it sets the paid
// amount directly, bypassing the monotonic clamp, and audits the full
// transition with a manual-method event.
func (uc *LedgerUseCase) SetPaid(ctx context.Context, contributionID string, amount int64) (*domain.Contribution, error) {
	if amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	contribution, err := uc.contribRepo.GetByIDForUpdate(ctx, tx, contributionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	err = uc.contribRepo.UpdatePaid(ctx, tx, contributionID, amount, domain.MethodManual, now)
	if err != nil {
		return nil, err
	}

	event := &domain.PaymentEvent{
		ID:             uc.idGen.Generate(),
		ContributionID: contribution.ID,
		ExpenseID:      contribution.ExpenseID,
		ParticipantID:  contribution.ParticipantID,
		Kind:           domain.EventKindPaid,
		PreviousAmount: contribution.AmountPaid,
		NewAmount:      amount,
		Delta:          amount - contribution.AmountPaid,
		Method:         domain.MethodManual,
		CreatedAt:      now,
	}

	err = uc.eventRepo.CreateTx(ctx, tx, event)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	contribution.AmountPaid = amount
	contribution.Method = domain.MethodManual
	contribution.UpdatedAt = now

	uc.invalidateSnapshot(ctx, contribution)

	return contribution, nil
}

// RecordManualPayment credits a contribution through the manual method in
// its own transaction. Unlike SetPaid it adds to the paid amount instead
// of overwriting it.
func (uc *LedgerUseCase) RecordManualPayment(ctx context.Context, contributionID string, amount int64) (*domain.Contribution, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	contribution, err := uc.CreditTx(ctx, tx, contributionID, amount, domain.MethodManual, "")
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateSnapshot(ctx, contribution)

	return contribution, nil
}

// ListEvents returns the audit history for an expense.
func (uc *LedgerUseCase) ListEvents(ctx context.Context, expenseID string, limit, offset int) ([]*domain.PaymentEvent, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.eventRepo.ListByExpense(ctx, expenseID, limit, offset)
}

// ParticipantSnapshot is one participant's aggregate position in a plan.
type ParticipantSnapshot struct {
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	TotalDue      int64  `json:"total_due"`
	TotalPaid     int64  `json:"total_paid"`
	Outstanding   int64  `json:"outstanding"`
	Settled       bool   `json:"settled"`
}

// PlanSnapshot is the per-participant due/paid view rendered by the UI.
type PlanSnapshot struct {
	PlanID       string                `json:"plan_id"`
	Participants []ParticipantSnapshot `json:"participants"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

// Snapshot aggregates a plan's contributions per participant. Results are
// cached briefly; every mutation path deletes the cache entry.
func (uc *LedgerUseCase) Snapshot(ctx context.Context, planID string) (*PlanSnapshot, error) {
	if cached, err := uc.cache.Get(ctx, snapshotKey(planID)); err == nil && cached != nil {
		var snapshot PlanSnapshot
		if err := json.Unmarshal(cached, &snapshot); err == nil {
			return &snapshot, nil
		}
	}

	participants, err := uc.participantRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	contributions, err := uc.contribRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*ParticipantSnapshot, len(participants))
	for _, p := range participants {
		totals[p.ID] = &ParticipantSnapshot{
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
		}
	}

	for _, c := range contributions {
		entry, ok := totals[c.ParticipantID]
		if !ok {
			continue
		}

		entry.TotalDue += c.AmountDue
		entry.TotalPaid += c.AmountPaid
		entry.Outstanding += c.Remaining()
	}

	snapshot := &PlanSnapshot{
		PlanID:      planID,
		GeneratedAt: time.Now().UTC(),
	}

	for _, p := range participants {
		entry := totals[p.ID]
		entry.Settled = entry.Outstanding == 0
		snapshot.Participants = append(snapshot.Participants, *entry)
	}

	if data, err := json.Marshal(snapshot); err == nil {
		_ = uc.cache.Set(ctx, snapshotKey(planID), data, SnapshotTTL)
	}

	return snapshot, nil
}

func (uc *LedgerUseCase) invalidateSnapshot(ctx context.Context, contribution *domain.Contribution) {
	// The contribution carries no plan id; resolve it lazily through the
	// participant, which shares the plan.
	participant, err := uc.participantRepo.GetByID(ctx, contribution.ParticipantID)
	if err != nil {
		return
	}

	_ = uc.cache.Delete(ctx, snapshotKey(participant.PlanID))
}
