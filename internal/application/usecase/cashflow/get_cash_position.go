package cashflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// LedgerReader loads the record sets the calculator works on.
type LedgerReader struct {
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
	accountRepo adapter.CashAccountRepository
}

// NewLedgerReader creates a new LedgerReader instance.
func NewLedgerReader(
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	accountRepo adapter.CashAccountRepository,
) *LedgerReader {
	return &LedgerReader{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
	}
}

// load returns the opening balance of active accounts and every non-archived record.
func (r *LedgerReader) load(ctx context.Context) (ledgerSet, error) {
	accounts, err := r.accountRepo.FindActive(ctx)
	if err != nil {
		return ledgerSet{}, fmt.Errorf("failed to load cash accounts: %w", err)
	}
	income, err := r.incomeRepo.FindByFilter(ctx, adapter.IncomeFilter{
		ExcludeStatuses: []entity.IncomeStatus{entity.IncomeStatusArchived},
	})
	if err != nil {
		return ledgerSet{}, fmt.Errorf("failed to load income entries: %w", err)
	}
	expenses, err := r.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{})
	if err != nil {
		return ledgerSet{}, fmt.Errorf("failed to load expense entries: %w", err)
	}
	return ledgerSet{
		accounts: accounts,
		income:   income,
		expenses: expenses,
	}, nil
}

type ledgerSet struct {
	accounts []*entity.CashAccount
	income   []*entity.IncomeEntry
	expenses []*entity.ExpenseEntry
}

func (s ledgerSet) position(asOf time.Time) *valueobject.CashPosition {
	initial := entity.TotalOpeningBalance(s.accounts)
	liquid := CalculateLiquidCash(initial, s.income, s.expenses)
	burn := CalculateMonthlyBurn(s.expenses, asOf)
	return &valueobject.CashPosition{
		InitialBalance:   initial,
		LiquidCash:       liquid,
		MonthlyBurn:      burn,
		RunwayMonths:     CalculateRunway(liquid, burn),
		PendingIncome:    PendingIncome(s.income),
		PendingExpenses:  PendingExpenses(s.expenses),
		ProjectedBalance: ProjectedCashBalance(liquid, s.income, s.expenses),
		AsOf:             asOf,
	}
}

// GetCashPositionUseCase computes the current cash position, serving it from
// the cache until a ledger event invalidates it.
type GetCashPositionUseCase struct {
	reader *LedgerReader
	cache  adapter.CashPositionCache
	clock  adapter.Clock
	ttl    time.Duration
}

// NewGetCashPositionUseCase creates a new GetCashPositionUseCase instance.
// cache may be nil, in which case every call recomputes.
func NewGetCashPositionUseCase(
	reader *LedgerReader,
	cache adapter.CashPositionCache,
	clock adapter.Clock,
	ttl time.Duration,
) *GetCashPositionUseCase {
	return &GetCashPositionUseCase{
		reader: reader,
		cache:  cache,
		clock:  clock,
		ttl:    ttl,
	}
}

// Execute returns the cash position.
func (uc *GetCashPositionUseCase) Execute(ctx context.Context) (*valueobject.CashPosition, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx)
		if err != nil {
			slog.Warn("Failed to read cached cash position", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	set, err := uc.reader.load(ctx)
	if err != nil {
		return nil, err
	}
	position := set.position(uc.clock.Now())

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, position, uc.ttl); err != nil {
			slog.Warn("Failed to cache cash position", "error", err)
		}
	}

	slog.Debug("Cash position recomputed",
		"liquid_cash", position.LiquidCash.String(),
		"runway_months", position.RunwayMonths.String(),
	)

	return position, nil
}
