// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// IncomeModel represents the income_entries table in the database.
type IncomeModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SourceRefID      *string         `gorm:"type:varchar(255);uniqueIndex"`
	AmountExpected   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AmountReceived   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ReceivedDate     sql.NullTime    `gorm:"type:date;index"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	Category         string          `gorm:"type:varchar(20);not null"`
	ClientName       string          `gorm:"type:varchar(255)"`
	Description      string          `gorm:"type:text"`
	ServiceName      string          `gorm:"type:varchar(255)"`
	DepositAccountID *uuid.UUID      `gorm:"type:uuid"`
	Date             time.Time       `gorm:"type:date;not null;index"`
	ExpectedDate     sql.NullTime    `gorm:"type:date"`

	IsOnHold      bool         `gorm:"not null;default:false"`
	HoldReason    string       `gorm:"type:varchar(255)"`
	HoldNote      string       `gorm:"type:text"`
	HoldWith      string       `gorm:"type:varchar(20)"`
	HoldStartDate sql.NullTime `gorm:"type:timestamp"`

	RetainerInstanceID *uuid.UUID `gorm:"type:uuid;index"`

	// A unique supersedes_id lets only one realized record point at an original.
	SupersedesID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	SupersededByID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "income_entries"
}

// ToEntity converts an IncomeModel to a domain IncomeEntry entity.
func (m *IncomeModel) ToEntity() *entity.IncomeEntry {
	return &entity.IncomeEntry{
		ID:                 m.ID,
		SourceRefID:        m.SourceRefID,
		AmountExpected:     m.AmountExpected,
		AmountReceived:     m.AmountReceived,
		ReceivedDate:       fromNullTime(m.ReceivedDate),
		Status:             entity.IncomeStatus(m.Status),
		Category:           entity.IncomeCategory(m.Category),
		ClientName:         m.ClientName,
		Description:        m.Description,
		ServiceName:        m.ServiceName,
		DepositAccountID:   m.DepositAccountID,
		Date:               m.Date.UTC(),
		ExpectedDate:       fromNullTime(m.ExpectedDate),
		IsOnHold:           m.IsOnHold,
		HoldReason:         m.HoldReason,
		HoldNote:           m.HoldNote,
		HoldWith:           entity.HoldCounterpart(m.HoldWith),
		HoldStartDate:      fromNullTime(m.HoldStartDate),
		RetainerInstanceID: m.RetainerInstanceID,
		SupersedesID:       m.SupersedesID,
		SupersededByID:     m.SupersededByID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// IncomeModelFromEntity creates an IncomeModel from a domain IncomeEntry entity.
func IncomeModelFromEntity(e *entity.IncomeEntry) *IncomeModel {
	return &IncomeModel{
		ID:                 e.ID,
		SourceRefID:        e.SourceRefID,
		AmountExpected:     e.AmountExpected,
		AmountReceived:     e.AmountReceived,
		ReceivedDate:       toNullTime(e.ReceivedDate),
		Status:             string(e.Status),
		Category:           string(e.Category),
		ClientName:         e.ClientName,
		Description:        e.Description,
		ServiceName:        e.ServiceName,
		DepositAccountID:   e.DepositAccountID,
		Date:               e.Date,
		ExpectedDate:       toNullTime(e.ExpectedDate),
		IsOnHold:           e.IsOnHold,
		HoldReason:         e.HoldReason,
		HoldNote:           e.HoldNote,
		HoldWith:           string(e.HoldWith),
		HoldStartDate:      toNullTime(e.HoldStartDate),
		RetainerInstanceID: e.RetainerInstanceID,
		SupersedesID:       e.SupersedesID,
		SupersededByID:     e.SupersededByID,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
