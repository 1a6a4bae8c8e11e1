package dto

import (
	"github.com/ledgerly/backend/internal/application/usecase/cashflow"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// CashPositionResponse represents the derived cash figures.
type CashPositionResponse struct {
	InitialBalance   float64 `json:"initial_balance"`
	LiquidCash       float64 `json:"liquid_cash"`
	MonthlyBurn      float64 `json:"monthly_burn"`
	RunwayMonths     float64 `json:"runway_months"`
	PendingIncome    float64 `json:"pending_income"`
	PendingExpenses  float64 `json:"pending_expenses"`
	ProjectedBalance float64 `json:"projected_balance"`
	AsOf             string  `json:"as_of"`
}

// ForecastQuery represents the query parameters for the daily forecast.
type ForecastQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=366"`
}

// ForecastPointResponse is one projected day.
type ForecastPointResponse struct {
	Date    string  `json:"date"`
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
	Balance float64 `json:"balance"`
}

// ForecastResponse represents a day-by-day projection.
type ForecastResponse struct {
	StartingCash float64                 `json:"starting_cash"`
	HorizonDays  int                     `json:"horizon_days"`
	Points       []ForecastPointResponse `json:"points"`
}

// CloseMonthRequest represents the request body for closing a month.
// An empty month closes the previous calendar month.
type CloseMonthRequest struct {
	Month string `json:"month,omitempty" binding:"omitempty,datetime=2006-01"`
}

// SnapshotResponse represents a monthly P&L snapshot.
type SnapshotResponse struct {
	ID                   string  `json:"id"`
	Month                string  `json:"month"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalExpenses        float64 `json:"total_expenses"`
	NetProfit            float64 `json:"net_profit"`
	PayrollCost          float64 `json:"payroll_cost"`
	BurnRateSnapshot     float64 `json:"burn_rate_snapshot"`
	RunwayMonthsSnapshot float64 `json:"runway_months_snapshot"`
	CreatedAt            string  `json:"created_at"`
}

// SnapshotListResponse represents the list of closed months.
type SnapshotListResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
}

// ToCashPositionResponse converts a cash position.
func ToCashPositionResponse(p *valueobject.CashPosition) CashPositionResponse {
	return CashPositionResponse{
		InitialBalance:   p.InitialBalance.InexactFloat64(),
		LiquidCash:       p.LiquidCash.InexactFloat64(),
		MonthlyBurn:      p.MonthlyBurn.InexactFloat64(),
		RunwayMonths:     p.RunwayMonths.InexactFloat64(),
		PendingIncome:    p.PendingIncome.InexactFloat64(),
		PendingExpenses:  p.PendingExpenses.InexactFloat64(),
		ProjectedBalance: p.ProjectedBalance.InexactFloat64(),
		AsOf:             p.AsOf.Format(valueobject.DateLayout),
	}
}

// ToForecastResponse converts a forecast.
func ToForecastResponse(out *cashflow.GetForecastOutput) ForecastResponse {
	resp := ForecastResponse{
		StartingCash: out.StartingCash.InexactFloat64(),
		HorizonDays:  len(out.Points),
		Points:       make([]ForecastPointResponse, 0, len(out.Points)),
	}
	for _, p := range out.Points {
		resp.Points = append(resp.Points, ForecastPointResponse{
			Date:    p.Date.Format(valueobject.DateLayout),
			Inflow:  p.Inflow.InexactFloat64(),
			Outflow: p.Outflow.InexactFloat64(),
			Balance: p.Balance.InexactFloat64(),
		})
	}
	return resp
}

// ToSnapshotResponse converts a snapshot.
func ToSnapshotResponse(s *entity.MonthlyPLSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:                   s.ID.String(),
		Month:                s.MonthKey(),
		TotalRevenue:         s.TotalRevenue.InexactFloat64(),
		TotalExpenses:        s.TotalExpenses.InexactFloat64(),
		NetProfit:            s.NetProfit.InexactFloat64(),
		PayrollCost:          s.PayrollCost.InexactFloat64(),
		BurnRateSnapshot:     s.BurnRateSnapshot.InexactFloat64(),
		RunwayMonthsSnapshot: s.RunwayMonthsSnapshot.InexactFloat64(),
		CreatedAt:            s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToSnapshotListResponse converts a list of snapshots.
func ToSnapshotListResponse(snapshots []*entity.MonthlyPLSnapshot) SnapshotListResponse {
	resp := SnapshotListResponse{Snapshots: make([]SnapshotResponse, 0, len(snapshots))}
	for _, s := range snapshots {
		resp.Snapshots = append(resp.Snapshots, ToSnapshotResponse(s))
	}
	return resp
}
