package adapter

import "github.com/ledgerly/backend/internal/domain/entity"

// InvoiceEventTranslator turns an external invoice event into an ingestion payload.
type InvoiceEventTranslator interface {
	TransformEvent(event entity.IncomingInvoiceEvent) (*entity.IncomePayload, error)
}
