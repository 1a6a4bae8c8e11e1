package cashflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// CloseMonthInput represents the input for closing a month.
type CloseMonthInput struct {
	// Month is any day of the month to close. Zero closes the previous month.
	Month time.Time
}

// CloseMonthUseCase writes the immutable P&L snapshot of a finished month.
// Revenue and expenses are accrual based: open receivables and payables count.
type CloseMonthUseCase struct {
	reader       *LedgerReader
	snapshotRepo adapter.SnapshotRepository
	payrollRepo  adapter.PayrollRepository
	clock        adapter.Clock
}

// NewCloseMonthUseCase creates a new CloseMonthUseCase instance.
func NewCloseMonthUseCase(
	reader *LedgerReader,
	snapshotRepo adapter.SnapshotRepository,
	payrollRepo adapter.PayrollRepository,
	clock adapter.Clock,
) *CloseMonthUseCase {
	return &CloseMonthUseCase{
		reader:       reader,
		snapshotRepo: snapshotRepo,
		payrollRepo:  payrollRepo,
		clock:        clock,
	}
}

// Execute closes the month.
func (uc *CloseMonthUseCase) Execute(ctx context.Context, input CloseMonthInput) (*entity.MonthlyPLSnapshot, error) {
	now := uc.clock.Now()
	month := input.Month
	if month.IsZero() {
		month = valueobject.StartOfMonth(now).AddDate(0, -1, 0)
	}
	start := valueobject.StartOfMonth(month)
	next := start.AddDate(0, 1, 0)

	if !start.Before(valueobject.StartOfMonth(now)) {
		return nil, domainerror.NewCashflowError(
			domainerror.ErrCodeInvalidMonth,
			fmt.Sprintf("month %s has not ended yet", start.Format("2006-01")),
			domainerror.ErrInvalidMonth,
		)
	}

	existing, err := uc.snapshotRepo.FindByMonth(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to check snapshot: %w", err)
	}
	if existing != nil {
		return nil, monthClosed(start)
	}

	set, err := uc.reader.load(ctx)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, e := range set.income {
		if !inMonth(e.Date, start, next) {
			continue
		}
		switch e.Status {
		case entity.IncomeStatusReceived, entity.IncomeStatusPending, entity.IncomeStatusPartial, entity.IncomeStatusOverdue:
			revenue = revenue.Add(e.AmountExpected)
		}
	}

	expenses := decimal.Zero
	for _, e := range set.expenses {
		if !inMonth(e.IncurredDate, start, next) {
			continue
		}
		if e.Status == entity.ExpenseStatusPaid || e.Status == entity.ExpenseStatusPendingPayment {
			expenses = expenses.Add(e.Amount)
		}
	}

	payroll, err := uc.payrollRepo.FindByMonth(ctx, start.Format("2006-01"))
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll: %w", err)
	}
	payrollCost := decimal.Zero
	for _, p := range payroll {
		payrollCost = payrollCost.Add(p.TotalCostToCompany)
	}

	liquid := CalculateLiquidCash(entity.TotalOpeningBalance(set.accounts), set.income, set.expenses)
	burn := CalculateMonthlyBurn(set.expenses, next)

	snapshot := &entity.MonthlyPLSnapshot{
		ID:                   uuid.New(),
		Month:                start,
		TotalRevenue:         revenue,
		TotalExpenses:        expenses,
		NetProfit:            revenue.Sub(expenses),
		PayrollCost:          payrollCost,
		BurnRateSnapshot:     burn,
		RunwayMonthsSnapshot: CalculateRunway(liquid, burn),
		CreatedAt:            now,
	}

	if err := uc.snapshotRepo.Create(ctx, snapshot); err != nil {
		if errors.Is(err, domainerror.ErrMonthAlreadyClosed) {
			return nil, monthClosed(start)
		}
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	slog.Info("Month closed",
		"month", snapshot.MonthKey(),
		"revenue", revenue.String(),
		"expenses", expenses.String(),
		"net_profit", snapshot.NetProfit.String(),
	)

	return snapshot, nil
}

// ListSnapshotsUseCase lists closed months.
type ListSnapshotsUseCase struct {
	snapshotRepo adapter.SnapshotRepository
}

// NewListSnapshotsUseCase creates a new ListSnapshotsUseCase instance.
func NewListSnapshotsUseCase(snapshotRepo adapter.SnapshotRepository) *ListSnapshotsUseCase {
	return &ListSnapshotsUseCase{snapshotRepo: snapshotRepo}
}

// Execute returns every snapshot, newest first.
func (uc *ListSnapshotsUseCase) Execute(ctx context.Context) ([]*entity.MonthlyPLSnapshot, error) {
	snapshots, err := uc.snapshotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

func inMonth(t, start, next time.Time) bool {
	return !t.Before(start) && t.Before(next)
}

func monthClosed(start time.Time) error {
	return domainerror.NewCashflowError(
		domainerror.ErrCodeMonthAlreadyClosed,
		fmt.Sprintf("month %s is already closed", start.Format("2006-01")),
		domainerror.ErrMonthAlreadyClosed,
	)
}
