package receivable

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// OverdueItem is a lapsed receivable with its lateness in days.
type OverdueItem struct {
	Income      *entity.IncomeEntry
	DaysOverdue int
}

// ListOverdueUseCase lists receivables past their grace period, whatever their
// stored status, excluding held, received and archived ones.
type ListOverdueUseCase struct {
	incomeRepo adapter.IncomeRepository
	clock      adapter.Clock
	graceDays  int
}

// NewListOverdueUseCase creates a new ListOverdueUseCase instance.
func NewListOverdueUseCase(incomeRepo adapter.IncomeRepository, clock adapter.Clock, graceDays int) *ListOverdueUseCase {
	return &ListOverdueUseCase{
		incomeRepo: incomeRepo,
		clock:      clock,
		graceDays:  graceDays,
	}
}

// Execute returns the overdue items, most overdue first.
func (uc *ListOverdueUseCase) Execute(ctx context.Context) ([]OverdueItem, error) {
	today := uc.clock.Now()
	notHeld := false
	entries, err := uc.incomeRepo.FindByFilter(ctx, adapter.IncomeFilter{
		ExcludeStatuses: []entity.IncomeStatus{entity.IncomeStatusReceived, entity.IncomeStatusArchived},
		OnHold:          &notHeld,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}

	items := make([]OverdueItem, 0)
	for _, e := range entries {
		if IsSweepCandidate(e) && IsOverdue(e, today, uc.graceDays) {
			items = append(items, OverdueItem{Income: e, DaysOverdue: DaysOverdue(e, today)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysOverdue > items[j].DaysOverdue
	})
	return items, nil
}

// ListOnHoldUseCase lists held receivables, most recently held first.
type ListOnHoldUseCase struct {
	incomeRepo adapter.IncomeRepository
}

// NewListOnHoldUseCase creates a new ListOnHoldUseCase instance.
func NewListOnHoldUseCase(incomeRepo adapter.IncomeRepository) *ListOnHoldUseCase {
	return &ListOnHoldUseCase{incomeRepo: incomeRepo}
}

// Execute returns the held receivables.
func (uc *ListOnHoldUseCase) Execute(ctx context.Context) ([]*entity.IncomeEntry, error) {
	held := true
	entries, err := uc.incomeRepo.FindByFilter(ctx, adapter.IncomeFilter{OnHold: &held})
	if err != nil {
		return nil, fmt.Errorf("failed to list held receivables: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return holdStart(entries[i]).After(holdStart(entries[j]))
	})
	return entries, nil
}

func holdStart(e *entity.IncomeEntry) time.Time {
	if e.HoldStartDate == nil {
		return time.Time{}
	}
	return *e.HoldStartDate
}

func digestInput(flagged []*entity.IncomeEntry, today time.Time) adapter.QueueOverdueDigestInput {
	lines := make([]adapter.OverdueDigestLine, 0, len(flagged))
	for _, e := range flagged {
		lines = append(lines, adapter.OverdueDigestLine{
			ClientName:  e.ClientName,
			Description: e.Description,
			Amount:      e.Outstanding(),
			DueDate:     e.EffectiveDate(),
			DaysOverdue: DaysOverdue(e, today),
		})
	}
	return adapter.QueueOverdueDigestInput{
		SweptAt: today,
		Lines:   lines,
	}
}
