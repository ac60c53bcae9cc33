package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/tripledger/internal/domain"
)

// ConsistencyUseCase verifies the ledger invariants after the fact: per
// expense the live dues must sum exactly to the total, and the paid-event
// deltas of each live contribution must reconcile with its stored paid
// amount.
type ConsistencyUseCase struct {
	expenseRepo ExpenseRepository
	contribRepo ContributionRepository
	eventRepo   PaymentEventRepository
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(
	expenseRepo ExpenseRepository,
	contribRepo ContributionRepository,
	eventRepo PaymentEventRepository,
) *ConsistencyUseCase {
	return &ConsistencyUseCase{
		expenseRepo: expenseRepo,
		contribRepo: contribRepo,
		eventRepo:   eventRepo,
	}
}

// ExpenseConsistencyResult is the outcome of checking one expense.
type ExpenseConsistencyResult struct {
	ExpenseID    string    `json:"expense_id"`
	Total        int64     `json:"total"`
	SumDue       int64     `json:"sum_due"`
	IsConsistent bool      `json:"is_consistent"`
	Problems     []string  `json:"problems,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}

// CheckExpense verifies one expense's invariants.
func (uc *ConsistencyUseCase) CheckExpense(ctx context.Context, expenseID string) (*ExpenseConsistencyResult, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	contributions, err := uc.contribRepo.GetByExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	result := &ExpenseConsistencyResult{
		ExpenseID: expenseID,
		Total:     expense.Total,
		CheckedAt: time.Now().UTC(),
	}

	for _, c := range contributions {
		result.SumDue += c.AmountDue

		if c.AmountDue < 0 || c.AmountPaid < 0 {
			result.Problems = append(result.Problems,
				fmt.Sprintf("contribution %s has negative amounts", c.ID))
		}

		if err := uc.checkEvents(ctx, c, result); err != nil {
			return nil, err
		}
	}

	if len(contributions) > 0 && result.SumDue != expense.Total {
		result.Problems = append(result.Problems,
			fmt.Sprintf("dues sum to %d, expense total is %d", result.SumDue, expense.Total))
	}

	result.IsConsistent = len(result.Problems) == 0

	return result, nil
}

func (uc *ConsistencyUseCase) checkEvents(ctx context.Context, c *domain.Contribution, result *ExpenseConsistencyResult) error {
	events, err := uc.eventRepo.ListByContribution(ctx, c.ID)
	if err != nil {
		return err
	}

	var paidDelta int64
	for _, e := range events {
		if e.Kind == domain.EventKindPaid {
			paidDelta += e.Delta
		}
	}

	if paidDelta != c.AmountPaid {
		result.Problems = append(result.Problems,
			fmt.Sprintf("contribution %s: event deltas sum to %d, stored paid is %d", c.ID, paidDelta, c.AmountPaid))
	}

	return nil
}

// ConsistencyReport summarizes a full ledger sweep.
type ConsistencyReport struct {
	TotalExpenses      int                         `json:"total_expenses"`
	ConsistentExpenses int                         `json:"consistent_expenses"`
	Discrepancies      []*ExpenseConsistencyResult `json:"discrepancies,omitempty"`
	CheckedAt          time.Time                   `json:"checked_at"`
}

// CheckAll sweeps every expense.
func (uc *ConsistencyUseCase) CheckAll(ctx context.Context) (*ConsistencyReport, error) {
	limit, offset := domain.ValidatePagination(1000, 0)

	report := &ConsistencyReport{CheckedAt: time.Now().UTC()}

	for {
		expenses, err := uc.expenseRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		if len(expenses) == 0 {
			break
		}

		for _, expense := range expenses {
			result, err := uc.CheckExpense(ctx, expense.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check expense %s: %w", expense.ID, err)
			}

			report.TotalExpenses++
			if result.IsConsistent {
				report.ConsistentExpenses++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		offset += limit
	}

	return report, nil
}
