package receivable

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// SnoozeInput represents the input for snoozing a receivable.
type SnoozeInput struct {
	IncomeID     uuid.UUID
	ExpectedDate time.Time
}

// SnoozeUseCase moves a receivable's expected date without touching its status.
type SnoozeUseCase struct {
	incomeRepo adapter.IncomeRepository
	clock      adapter.Clock
}

// NewSnoozeUseCase creates a new SnoozeUseCase instance.
func NewSnoozeUseCase(incomeRepo adapter.IncomeRepository, clock adapter.Clock) *SnoozeUseCase {
	return &SnoozeUseCase{
		incomeRepo: incomeRepo,
		clock:      clock,
	}
}

// Execute performs the snooze.
func (uc *SnoozeUseCase) Execute(ctx context.Context, input SnoozeInput) (*entity.IncomeEntry, error) {
	if input.ExpectedDate.IsZero() {
		return nil, domainerror.NewReceivableError(domainerror.ErrCodeMissingDate, "expected date is required", domainerror.ErrMissingDate)
	}
	now := uc.clock.Now()
	day := valueobject.StartOfDay(input.ExpectedDate)
	if day.Before(valueobject.StartOfDay(now)) {
		return nil, domainerror.NewReceivableError(
			domainerror.ErrCodePastDate,
			fmt.Sprintf("expected date %s is before today", day.Format(valueobject.DateLayout)),
			domainerror.ErrPastDate,
		)
	}

	entry, err := loadOpen(ctx, uc.incomeRepo, input.IncomeID)
	if err != nil {
		return nil, err
	}

	entry.ExpectedDate = &day
	entry.UpdatedAt = now.UTC()
	if err := uc.incomeRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to snooze income entry: %w", err)
	}

	slog.Info("Receivable snoozed", "income_id", entry.ID, "expected_date", day.Format(valueobject.DateLayout))
	return entry, nil
}

// HoldInput represents the input for holding a receivable.
type HoldInput struct {
	IncomeID uuid.UUID
	Reason   string
	Note     string
	With     entity.HoldCounterpart
}

// HoldUseCase parks a receivable outside the overdue sweep.
type HoldUseCase struct {
	incomeRepo adapter.IncomeRepository
	clock      adapter.Clock
}

// NewHoldUseCase creates a new HoldUseCase instance.
func NewHoldUseCase(incomeRepo adapter.IncomeRepository, clock adapter.Clock) *HoldUseCase {
	return &HoldUseCase{
		incomeRepo: incomeRepo,
		clock:      clock,
	}
}

// Execute places the hold.
func (uc *HoldUseCase) Execute(ctx context.Context, input HoldInput) (*entity.IncomeEntry, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, domainerror.NewReceivableError(domainerror.ErrCodeMissingHoldReason, "hold reason is required", domainerror.ErrMissingHoldReason)
	}
	with := input.With
	if with == "" {
		with = entity.HoldWithClient
	}
	if !with.IsValid() {
		return nil, domainerror.NewReceivableError(
			domainerror.ErrCodeInvalidHoldCounterpart,
			fmt.Sprintf("unknown hold counterpart %q", with),
			domainerror.ErrInvalidHoldCounterpart,
		)
	}

	entry, err := loadOpen(ctx, uc.incomeRepo, input.IncomeID)
	if err != nil {
		return nil, err
	}
	if entry.IsOnHold {
		return nil, domainerror.NewReceivableError(domainerror.ErrCodeAlreadyOnHold, "receivable is already on hold", domainerror.ErrAlreadyOnHold)
	}

	now := uc.clock.Now().UTC()
	entry.PlaceOnHold(reason, strings.TrimSpace(input.Note), with, now)
	entry.UpdatedAt = now
	if err := uc.incomeRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to hold income entry: %w", err)
	}

	slog.Info("Receivable placed on hold", "income_id", entry.ID, "hold_with", with)
	return entry, nil
}

// loadOpen fetches an entry that is still collectable.
func loadOpen(ctx context.Context, repo adapter.IncomeRepository, id uuid.UUID) (*entity.IncomeEntry, error) {
	entry, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case entry.Status == entity.IncomeStatusArchived || entry.SupersededByID != nil:
		return nil, domainerror.NewReceivableError(domainerror.ErrCodeAlreadySettled, "receivable was already settled", domainerror.ErrAlreadySettled)
	case entry.Status == entity.IncomeStatusReceived:
		return nil, domainerror.NewReceivableError(domainerror.ErrCodeReceivableClosed, "receivable was already received", domainerror.ErrReceivableClosed)
	}
	return entry, nil
}
