package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// MonthlySnapshotModel represents the monthly_pl_snapshots table in the database.
type MonthlySnapshotModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Month                string          `gorm:"type:varchar(7);not null;uniqueIndex"` // YYYY-MM
	TotalRevenue         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalExpenses        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetProfit            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PayrollCost          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	BurnRateSnapshot     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RunwayMonthsSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt            time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MonthlySnapshotModel.
func (MonthlySnapshotModel) TableName() string {
	return "monthly_pl_snapshots"
}

// ToEntity converts a MonthlySnapshotModel to a domain MonthlyPLSnapshot entity.
func (m *MonthlySnapshotModel) ToEntity() *entity.MonthlyPLSnapshot {
	month, _ := time.Parse("2006-01", m.Month)
	return &entity.MonthlyPLSnapshot{
		ID:                   m.ID,
		Month:                month,
		TotalRevenue:         m.TotalRevenue,
		TotalExpenses:        m.TotalExpenses,
		NetProfit:            m.NetProfit,
		PayrollCost:          m.PayrollCost,
		BurnRateSnapshot:     m.BurnRateSnapshot,
		RunwayMonthsSnapshot: m.RunwayMonthsSnapshot,
		CreatedAt:            m.CreatedAt,
	}
}

// MonthlySnapshotModelFromEntity creates a MonthlySnapshotModel from a domain snapshot.
func MonthlySnapshotModelFromEntity(s *entity.MonthlyPLSnapshot) *MonthlySnapshotModel {
	return &MonthlySnapshotModel{
		ID:                   s.ID,
		Month:                s.MonthKey(),
		TotalRevenue:         s.TotalRevenue,
		TotalExpenses:        s.TotalExpenses,
		NetProfit:            s.NetProfit,
		PayrollCost:          s.PayrollCost,
		BurnRateSnapshot:     s.BurnRateSnapshot,
		RunwayMonthsSnapshot: s.RunwayMonthsSnapshot,
		CreatedAt:            s.CreatedAt,
	}
}
