package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// ExpenseModel represents the expense_entries table in the database.
type ExpenseModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IncurredDate    time.Time       `gorm:"type:date;not null;index"`
	PaidDate        sql.NullTime    `gorm:"type:date;index"`
	Category        string          `gorm:"type:varchar(20);not null"`
	Type            string          `gorm:"type:varchar(20);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	Vendor          string          `gorm:"type:varchar(255)"`
	IsTaxDeductible bool            `gorm:"not null;default:false"`
	Description     string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expense_entries"
}

// ToEntity converts an ExpenseModel to a domain ExpenseEntry entity.
func (m *ExpenseModel) ToEntity() *entity.ExpenseEntry {
	return &entity.ExpenseEntry{
		ID:              m.ID,
		Amount:          m.Amount,
		IncurredDate:    m.IncurredDate.UTC(),
		PaidDate:        fromNullTime(m.PaidDate),
		Category:        entity.ExpenseCategory(m.Category),
		Type:            entity.ExpenseType(m.Type),
		Status:          entity.ExpenseStatus(m.Status),
		Vendor:          m.Vendor,
		IsTaxDeductible: m.IsTaxDeductible,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ExpenseModelFromEntity creates an ExpenseModel from a domain ExpenseEntry entity.
func ExpenseModelFromEntity(e *entity.ExpenseEntry) *ExpenseModel {
	return &ExpenseModel{
		ID:              e.ID,
		Amount:          e.Amount,
		IncurredDate:    e.IncurredDate,
		PaidDate:        toNullTime(e.PaidDate),
		Category:        string(e.Category),
		Type:            string(e.Type),
		Status:          string(e.Status),
		Vendor:          e.Vendor,
		IsTaxDeductible: e.IsTaxDeductible,
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
