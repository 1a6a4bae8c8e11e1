package adapters

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// quoteForgeStatuses maps QuoteForge invoice statuses onto ledger statuses.
// Anything missing maps to PENDING so no event is ever dropped.
var quoteForgeStatuses = map[string]entity.IncomeStatus{
	"PAID":    entity.IncomeStatusReceived,
	"PARTIAL": entity.IncomeStatusPartial,
	"OVERDUE": entity.IncomeStatusOverdue,
	"SENT":    entity.IncomeStatusPending,
	"VIEWED":  entity.IncomeStatusPending,
}

// MapStatus translates a QuoteForge status, ignoring case and surrounding space.
// The amounts are accepted for signature parity with the event and do not
// influence the mapping.
func MapStatus(externalStatus string, amountReceived, amountExpected decimal.Decimal) entity.IncomeStatus {
	if status, ok := quoteForgeStatuses[strings.ToUpper(strings.TrimSpace(externalStatus))]; ok {
		return status
	}
	return entity.IncomeStatusPending
}

// QuoteForgeAdapter turns QuoteForge invoice events into ingestion payloads.
// It never touches the store.
type QuoteForgeAdapter struct {
	validate *validator.Validate
}

// NewQuoteForgeAdapter creates a new QuoteForge adapter.
func NewQuoteForgeAdapter() *QuoteForgeAdapter {
	return &QuoteForgeAdapter{validate: validator.New()}
}

// TransformEvent validates the event and builds the payload.
func (a *QuoteForgeAdapter) TransformEvent(event entity.IncomingInvoiceEvent) (*entity.IncomePayload, error) {
	if event.SourceSystem != entity.QuoteForgeSourceSystem {
		return nil, domainerror.NewIntegrationError(
			domainerror.ErrCodeUnsupportedSourceSystem,
			fmt.Sprintf("unsupported source system %q", event.SourceSystem),
			domainerror.ErrUnsupportedSourceSystem,
		)
	}
	if err := a.validate.Struct(event); err != nil {
		return nil, domainerror.NewIntegrationError(
			domainerror.ErrCodeInvalidInvoiceEvent,
			describeValidation(err),
			domainerror.ErrInvalidInvoiceEvent,
		)
	}
	if !event.AmountInvoiced.IsPositive() || event.AmountReceived.IsNegative() {
		return nil, domainerror.NewIntegrationError(
			domainerror.ErrCodeInvalidInvoiceEvent,
			"amount_invoiced must be positive and amount_received non-negative",
			domainerror.ErrInvalidInvoiceEvent,
		)
	}

	ref := event.ExternalID
	payload := &entity.IncomePayload{
		SourceRefID:    &ref,
		AmountExpected: event.AmountInvoiced,
		AmountReceived: event.AmountReceived,
		Status:         MapStatus(event.ExternalStatus, event.AmountReceived, event.AmountInvoiced),
		Category:       entity.IncomeCategoryProjectFee,
		ClientName:     strings.TrimSpace(event.ClientName),
		Description:    event.ProjectRef,
		Date:           event.DueDate,
	}
	if event.PaymentDate != nil {
		paid := *event.PaymentDate
		payload.ReceivedDate = &paid
	}
	return payload, nil
}

func describeValidation(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return "invalid invoice event: " + strings.Join(fields, ", ")
}

var _ adapter.InvoiceEventTranslator = (*QuoteForgeAdapter)(nil)
