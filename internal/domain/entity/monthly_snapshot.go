package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyPLSnapshot is an immutable P&L rollup written once when a month is closed.
type MonthlyPLSnapshot struct {
	ID                   uuid.UUID
	Month                time.Time // First day of the month
	TotalRevenue         decimal.Decimal
	TotalExpenses        decimal.Decimal
	NetProfit            decimal.Decimal
	PayrollCost          decimal.Decimal
	BurnRateSnapshot     decimal.Decimal
	RunwayMonthsSnapshot decimal.Decimal
	CreatedAt            time.Time
}

// MonthKey formats the snapshot month as YYYY-MM.
func (s *MonthlyPLSnapshot) MonthKey() string {
	return s.Month.Format("2006-01")
}
