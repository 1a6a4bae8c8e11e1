// Package cashflow derives cash-position metrics from the ledger.
package cashflow

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// RunwaySentinel is returned by CalculateRunway when burn is not positive.
const RunwaySentinel = 999

// burnWindowMonths is both the trailing window and the divisor of the burn average.
// The divisor stays fixed even when fewer months of history exist.
const burnWindowMonths = 3

// CalculateLiquidCash returns initialBalance plus realized income minus paid expenses.
// Only RECEIVED and PARTIAL income and PAID expenses count.
func CalculateLiquidCash(initialBalance decimal.Decimal, income []*entity.IncomeEntry, expenses []*entity.ExpenseEntry) decimal.Decimal {
	cash := initialBalance
	for _, e := range income {
		if e.Status.IsCashBasis() {
			cash = cash.Add(e.AmountReceived)
		}
	}
	for _, e := range expenses {
		if e.Status == entity.ExpenseStatusPaid {
			cash = cash.Sub(e.Amount)
		}
	}
	return cash
}

// CalculateMonthlyBurn averages PAID recurring expenses paid strictly inside
// (referenceDate - 3 months, referenceDate).
func CalculateMonthlyBurn(expenses []*entity.ExpenseEntry, referenceDate time.Time) decimal.Decimal {
	windowStart := referenceDate.AddDate(0, -burnWindowMonths, 0)
	total := decimal.Zero
	for _, e := range expenses {
		if e.Status != entity.ExpenseStatusPaid || e.Type == entity.ExpenseTypeOneOff || e.PaidDate == nil {
			continue
		}
		if e.PaidDate.After(windowStart) && e.PaidDate.Before(referenceDate) {
			total = total.Add(e.Amount)
		}
	}
	return total.Div(decimal.NewFromInt(burnWindowMonths))
}

// CalculateRunway returns the months of cash left at the given burn.
func CalculateRunway(liquidCash, monthlyBurn decimal.Decimal) decimal.Decimal {
	if monthlyBurn.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(RunwaySentinel)
	}
	return liquidCash.Div(monthlyBurn)
}

// PendingIncome sums the outstanding amount of income not yet fully received.
func PendingIncome(income []*entity.IncomeEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range income {
		switch e.Status {
		case entity.IncomeStatusPending, entity.IncomeStatusPartial, entity.IncomeStatusOverdue:
			total = total.Add(e.Outstanding())
		}
	}
	return total
}

// PendingExpenses sums every expense not yet paid.
func PendingExpenses(expenses []*entity.ExpenseEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Status != entity.ExpenseStatusPaid {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// ProjectedCashBalance layers open receivables and payables onto liquid cash.
func ProjectedCashBalance(liquidCash decimal.Decimal, income []*entity.IncomeEntry, expenses []*entity.ExpenseEntry) decimal.Decimal {
	return liquidCash.Add(PendingIncome(income)).Sub(PendingExpenses(expenses))
}

// ProjectDaily walks horizonDays days forward from today. Each day adds the
// outstanding PENDING and PARTIAL income whose effective date falls on it and
// subtracts the unpaid expenses incurred on it.
func ProjectDaily(
	liquidCash decimal.Decimal,
	income []*entity.IncomeEntry,
	expenses []*entity.ExpenseEntry,
	today time.Time,
	horizonDays int,
) []valueobject.ForecastPoint {
	inflows := make(map[string]decimal.Decimal)
	for _, e := range income {
		if e.Status != entity.IncomeStatusPending && e.Status != entity.IncomeStatusPartial {
			continue
		}
		key := e.EffectiveDate().Format(valueobject.DateLayout)
		inflows[key] = inflows[key].Add(e.Outstanding())
	}

	outflows := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.Status == entity.ExpenseStatusPaid {
			continue
		}
		key := e.IncurredDate.Format(valueobject.DateLayout)
		outflows[key] = outflows[key].Add(e.Amount)
	}

	start := valueobject.StartOfDay(today)
	balance := liquidCash
	points := make([]valueobject.ForecastPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(valueobject.DateLayout)
		in := inflows[key]
		out := outflows[key]
		balance = balance.Add(in).Sub(out)
		points = append(points, valueobject.ForecastPoint{
			Date:    day,
			Inflow:  in,
			Outflow: out,
			Balance: balance,
		})
	}
	return points
}
