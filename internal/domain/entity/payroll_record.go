package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollStatus represents whether a salary was paid out.
type PayrollStatus string

const (
	PayrollStatusScheduled PayrollStatus = "SCHEDULED"
	PayrollStatusDisbursed PayrollStatus = "DISBURSED"
)

// PayrollRecord is an administrative salary record. The ledger reads it for
// reporting and never mutates it.
type PayrollRecord struct {
	ID                 uuid.UUID
	EmployeeID         uuid.UUID
	Role               string
	BaseSalary         decimal.Decimal
	Bonus              decimal.Decimal
	TotalCostToCompany decimal.Decimal
	PaymentStatus      PayrollStatus
	MonthReference     string // YYYY-MM
}
