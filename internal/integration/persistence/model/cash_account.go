package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// CashAccountModel represents the cash_accounts table in the database.
type CashAccountModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Type             string          `gorm:"type:varchar(20);not null"`
	Currency         string          `gorm:"type:varchar(3);not null;default:'INR'"`
	OpeningBalance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive         bool            `gorm:"not null;default:true;index"`
	LastReconciledAt sql.NullTime    `gorm:"type:timestamp"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CashAccountModel.
func (CashAccountModel) TableName() string {
	return "cash_accounts"
}

// ToEntity converts a CashAccountModel to a domain CashAccount entity.
func (m *CashAccountModel) ToEntity() *entity.CashAccount {
	return &entity.CashAccount{
		ID:               m.ID,
		Name:             m.Name,
		Type:             entity.CashAccountType(m.Type),
		Currency:         m.Currency,
		OpeningBalance:   m.OpeningBalance,
		IsActive:         m.IsActive,
		LastReconciledAt: fromNullTime(m.LastReconciledAt),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// CashAccountModelFromEntity creates a CashAccountModel from a domain CashAccount entity.
func CashAccountModelFromEntity(a *entity.CashAccount) *CashAccountModel {
	return &CashAccountModel{
		ID:               a.ID,
		Name:             a.Name,
		Type:             string(a.Type),
		Currency:         a.Currency,
		OpeningBalance:   a.OpeningBalance,
		IsActive:         a.IsActive,
		LastReconciledAt: toNullTime(a.LastReconciledAt),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
