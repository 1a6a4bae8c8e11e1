// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeStatus represents the lifecycle state of a receivable.
type IncomeStatus string

const (
	IncomeStatusPending  IncomeStatus = "PENDING"
	IncomeStatusReceived IncomeStatus = "RECEIVED"
	IncomeStatusPartial  IncomeStatus = "PARTIAL"
	IncomeStatusOverdue  IncomeStatus = "OVERDUE"
	// IncomeStatusArchived marks a record superseded by a realized record.
	// It is operational and never produced by the external status mapping.
	IncomeStatusArchived IncomeStatus = "ARCHIVED"
)

// IsValid reports whether the status is a known income status.
func (s IncomeStatus) IsValid() bool {
	switch s {
	case IncomeStatusPending, IncomeStatusReceived, IncomeStatusPartial, IncomeStatusOverdue, IncomeStatusArchived:
		return true
	}
	return false
}

// IsCashBasis reports whether a record in this status reflects actual cash movement.
func (s IncomeStatus) IsCashBasis() bool {
	return s == IncomeStatusReceived || s == IncomeStatusPartial
}

// IsTerminal reports whether no further transition is allowed from this status.
func (s IncomeStatus) IsTerminal() bool {
	return s == IncomeStatusArchived
}

// IncomeCategory classifies a receivable.
type IncomeCategory string

const (
	IncomeCategoryRetainer   IncomeCategory = "RETAINER"
	IncomeCategoryProjectFee IncomeCategory = "PROJECT_FEE"
	IncomeCategoryOneOff     IncomeCategory = "ONE_OFF"
)

// IsValid reports whether the category is known.
func (c IncomeCategory) IsValid() bool {
	return c == IncomeCategoryRetainer || c == IncomeCategoryProjectFee || c == IncomeCategoryOneOff
}

// HoldCounterpart tags who a held receivable is waiting on.
type HoldCounterpart string

const (
	HoldWithClient   HoldCounterpart = "client"
	HoldWithInternal HoldCounterpart = "internal"
	HoldWithProject  HoldCounterpart = "project"
)

// IsValid reports whether the counterpart tag is known.
func (h HoldCounterpart) IsValid() bool {
	return h == HoldWithClient || h == HoldWithInternal || h == HoldWithProject
}

// convertedSuffix is appended to the description of a settled original.
const convertedSuffix = "(Converted)"

// IncomeEntry represents a receivable in the ledger.
type IncomeEntry struct {
	ID             uuid.UUID
	SourceRefID    *string // External reference, e.g. an invoicing system id
	AmountExpected decimal.Decimal
	AmountReceived decimal.Decimal
	ReceivedDate   *time.Time
	Status         IncomeStatus
	Category       IncomeCategory
	ClientName     string
	Description    string
	ServiceName    string

	// DepositAccountID is the cash account the receipt was verified into.
	DepositAccountID *uuid.UUID

	// Date is the originally expected date. ExpectedDate overrides it after a snooze.
	Date         time.Time
	ExpectedDate *time.Time

	IsOnHold      bool
	HoldReason    string
	HoldNote      string
	HoldWith      HoldCounterpart
	HoldStartDate *time.Time

	// RetainerInstanceID links the record to an externally generated billing instance.
	RetainerInstanceID *uuid.UUID

	// Supersession links between an archived original and its realized record.
	SupersedesID   *uuid.UUID
	SupersededByID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDate returns the snoozed expected date when present, else the original date.
func (e *IncomeEntry) EffectiveDate() time.Time {
	if e.ExpectedDate != nil {
		return *e.ExpectedDate
	}
	return e.Date
}

// IsRetainerLinked reports whether the record belongs to a retainer billing instance.
func (e *IncomeEntry) IsRetainerLinked() bool {
	return e.RetainerInstanceID != nil && *e.RetainerInstanceID != uuid.Nil
}

// Outstanding returns the amount still expected for the record.
func (e *IncomeEntry) Outstanding() decimal.Decimal {
	return e.AmountExpected.Sub(e.AmountReceived)
}

// PlaceOnHold flags the record as held.
func (e *IncomeEntry) PlaceOnHold(reason, note string, with HoldCounterpart, at time.Time) {
	e.IsOnHold = true
	e.HoldReason = reason
	e.HoldNote = note
	e.HoldWith = with
	e.HoldStartDate = &at
}

// ClearHold removes every hold field.
func (e *IncomeEntry) ClearHold() {
	e.IsOnHold = false
	e.HoldReason = ""
	e.HoldNote = ""
	e.HoldWith = ""
	e.HoldStartDate = nil
}

// ConvertedDescription returns the description used once the record is archived by settlement.
func (e *IncomeEntry) ConvertedDescription() string {
	if e.Description == "" {
		return convertedSuffix
	}
	return e.Description + " " + convertedSuffix
}

// Clone returns a copy of the entry that shares no pointers with the original.
func (e *IncomeEntry) Clone() *IncomeEntry {
	c := *e
	c.SourceRefID = cloneString(e.SourceRefID)
	c.ReceivedDate = cloneTime(e.ReceivedDate)
	c.DepositAccountID = cloneUUID(e.DepositAccountID)
	c.ExpectedDate = cloneTime(e.ExpectedDate)
	c.HoldStartDate = cloneTime(e.HoldStartDate)
	c.RetainerInstanceID = cloneUUID(e.RetainerInstanceID)
	c.SupersedesID = cloneUUID(e.SupersedesID)
	c.SupersededByID = cloneUUID(e.SupersededByID)
	return &c
}

// IncomePayload is the normalized input used to ingest a receivable.
type IncomePayload struct {
	SourceRefID        *string
	AmountExpected     decimal.Decimal
	AmountReceived     decimal.Decimal
	ReceivedDate       *time.Time
	Status             IncomeStatus // Status reported by the source, applied through verification only
	Category           IncomeCategory
	ClientName         string
	Description        string
	ServiceName        string
	Date               time.Time
	RetainerInstanceID *uuid.UUID
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
