package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// PayrollRecordModel represents the payroll_records table. Rows are maintained
// by the HR tooling; the ledger only reads them.
type PayrollRecordModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Role               string          `gorm:"type:varchar(100)"`
	BaseSalary         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Bonus              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalCostToCompany decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentStatus      string          `gorm:"type:varchar(20);not null"`
	MonthReference     string          `gorm:"type:varchar(7);not null;index"`
}

// TableName returns the table name for the PayrollRecordModel.
func (PayrollRecordModel) TableName() string {
	return "payroll_records"
}

// ToEntity converts a PayrollRecordModel to a domain PayrollRecord entity.
func (m *PayrollRecordModel) ToEntity() *entity.PayrollRecord {
	return &entity.PayrollRecord{
		ID:                 m.ID,
		EmployeeID:         m.EmployeeID,
		Role:               m.Role,
		BaseSalary:         m.BaseSalary,
		Bonus:              m.Bonus,
		TotalCostToCompany: m.TotalCostToCompany,
		PaymentStatus:      entity.PayrollStatus(m.PaymentStatus),
		MonthReference:     m.MonthReference,
	}
}

// PayrollRecordModelFromEntity creates a PayrollRecordModel from a domain record.
func PayrollRecordModelFromEntity(r *entity.PayrollRecord) *PayrollRecordModel {
	return &PayrollRecordModel{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		Role:               r.Role,
		BaseSalary:         r.BaseSalary,
		Bonus:              r.Bonus,
		TotalCostToCompany: r.TotalCostToCompany,
		PaymentStatus:      string(r.PaymentStatus),
		MonthReference:     r.MonthReference,
	}
}
