package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashPosition is the set of cash figures derived from the ledger at a point in time.
type CashPosition struct {
	InitialBalance   decimal.Decimal `json:"initial_balance"`
	LiquidCash       decimal.Decimal `json:"liquid_cash"`
	MonthlyBurn      decimal.Decimal `json:"monthly_burn"`
	RunwayMonths     decimal.Decimal `json:"runway_months"`
	PendingIncome    decimal.Decimal `json:"pending_income"`
	PendingExpenses  decimal.Decimal `json:"pending_expenses"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
	AsOf             time.Time       `json:"as_of"`
}

// ForecastPoint is one day of a day-by-day cash projection.
type ForecastPoint struct {
	Date    time.Time
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Balance decimal.Decimal
}
