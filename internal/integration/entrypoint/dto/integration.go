package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/usecase/integrity"
	"github.com/ledgerly/backend/internal/application/usecase/invoicing"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// InvoiceEventRequest is the webhook body delivered by QuoteForge. Field
// validation beyond JSON shape happens in the adapter.
type InvoiceEventRequest struct {
	ExternalID     string  `json:"external_id"`
	SourceSystem   string  `json:"source_system"`
	AmountInvoiced float64 `json:"amount_invoiced"`
	AmountReceived float64 `json:"amount_received"`
	Currency       string  `json:"currency"`
	IssueDate      string  `json:"issue_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate        string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentDate    *string `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	ExternalStatus string  `json:"external_status"`
	ClientName     string  `json:"client_name"`
	ProjectRef     string  `json:"project_ref"`
}

// ToEvent converts the request into the adapter's event shape.
func (r InvoiceEventRequest) ToEvent() (entity.IncomingInvoiceEvent, error) {
	issue, err := ParseDate(r.IssueDate)
	if err != nil {
		return entity.IncomingInvoiceEvent{}, err
	}
	due, err := ParseDate(r.DueDate)
	if err != nil {
		return entity.IncomingInvoiceEvent{}, err
	}
	var payment *time.Time
	if r.PaymentDate != nil && *r.PaymentDate != "" {
		p, err := ParseDate(*r.PaymentDate)
		if err != nil {
			return entity.IncomingInvoiceEvent{}, err
		}
		payment = &p
	}
	return entity.IncomingInvoiceEvent{
		ExternalID:     r.ExternalID,
		SourceSystem:   r.SourceSystem,
		AmountInvoiced: decimal.NewFromFloat(r.AmountInvoiced),
		AmountReceived: decimal.NewFromFloat(r.AmountReceived),
		Currency:       r.Currency,
		IssueDate:      issue,
		DueDate:        due,
		PaymentDate:    payment,
		ExternalStatus: r.ExternalStatus,
		ClientName:     r.ClientName,
		ProjectRef:     r.ProjectRef,
	}, nil
}

// InvoiceEventResponse acknowledges an ingested event.
type InvoiceEventResponse struct {
	Income    IncomeResponse `json:"income"`
	Duplicate bool           `json:"duplicate"`
	Updated   bool           `json:"updated"`
}

// ToInvoiceEventResponse converts the ingestion result.
func ToInvoiceEventResponse(out *invoicing.IngestInvoiceEventOutput) InvoiceEventResponse {
	return InvoiceEventResponse{
		Income:    ToIncomeResponse(out.Income),
		Duplicate: out.Duplicate,
		Updated:   out.Updated,
	}
}

// ViolationResponse describes one integrity violation.
type ViolationResponse struct {
	RecordKind string `json:"record_kind"`
	RecordID   string `json:"record_id"`
	Message    string `json:"message"`
}

// IntegrityResponse represents an integrity audit.
type IntegrityResponse struct {
	Passed         bool                `json:"passed"`
	IncomeChecked  int                 `json:"income_checked"`
	ExpenseChecked int                 `json:"expense_checked"`
	Violations     []ViolationResponse `json:"violations"`
}

// ToIntegrityResponse converts an integrity audit.
func ToIntegrityResponse(out *integrity.VerifyIntegrityOutput) IntegrityResponse {
	resp := IntegrityResponse{
		Passed:         out.Passed(),
		IncomeChecked:  out.IncomeChecked,
		ExpenseChecked: out.ExpenseChecked,
		Violations:     make([]ViolationResponse, 0, len(out.Violations)),
	}
	for _, v := range out.Violations {
		resp.Violations = append(resp.Violations, ViolationResponse{
			RecordKind: v.RecordKind,
			RecordID:   v.RecordID.String(),
			Message:    v.Message,
		})
	}
	return resp
}
