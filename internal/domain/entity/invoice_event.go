package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteForgeSourceSystem is the only external invoicing system accepted.
const QuoteForgeSourceSystem = "QuoteForge"

// IncomingInvoiceEvent is the event shape delivered by the external invoicing system.
type IncomingInvoiceEvent struct {
	ExternalID     string          `validate:"required"`
	SourceSystem   string          `validate:"required,eq=QuoteForge"`
	AmountInvoiced decimal.Decimal `validate:"-"`
	AmountReceived decimal.Decimal `validate:"-"`
	Currency       string          `validate:"required,len=3"`
	IssueDate      time.Time       `validate:"required"`
	DueDate        time.Time       `validate:"required"`
	PaymentDate    *time.Time      `validate:"omitempty"`
	ExternalStatus string          `validate:"required"`
	ClientName     string          `validate:"required"`
	ProjectRef     string
}
