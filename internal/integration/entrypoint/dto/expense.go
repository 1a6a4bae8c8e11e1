package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// CreateExpenseRequest represents the request body for posting a payable.
type CreateExpenseRequest struct {
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	IncurredDate    string  `json:"incurred_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Category        string  `json:"category" binding:"required,oneof=SALARY TOOLS OFFICE MARKETING SERVER MISC"`
	Type            string  `json:"type" binding:"required,oneof=FIXED VARIABLE ONE_OFF"`
	Vendor          string  `json:"vendor" binding:"required,max=255"`
	IsTaxDeductible bool    `json:"is_tax_deductible"`
	Description     string  `json:"description,omitempty"`
}

// ToPayload converts the request into an expense payload.
func (r CreateExpenseRequest) ToPayload() (entity.ExpensePayload, error) {
	incurred, err := ParseDate(r.IncurredDate)
	if err != nil {
		return entity.ExpensePayload{}, err
	}
	return entity.ExpensePayload{
		Amount:          decimal.NewFromFloat(r.Amount),
		IncurredDate:    incurred,
		Category:        entity.ExpenseCategory(r.Category),
		Type:            entity.ExpenseType(r.Type),
		Vendor:          r.Vendor,
		IsTaxDeductible: r.IsTaxDeductible,
		Description:     r.Description,
	}, nil
}

// PayExpenseRequest represents the request body for paying an expense.
type PayExpenseRequest struct {
	PaidDate string `json:"paid_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// ListExpensesQuery represents the query parameters for listing payables.
type ListExpensesQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PLANNED PENDING_PAYMENT PAID"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ExpenseResponse represents a payable in API responses.
type ExpenseResponse struct {
	ID              string    `json:"id"`
	Amount          float64   `json:"amount"`
	IncurredDate    string    `json:"incurred_date"`
	PaidDate        *string   `json:"paid_date"`
	Category        string    `json:"category"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Vendor          string    `json:"vendor"`
	IsTaxDeductible bool      `json:"is_tax_deductible"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing payables.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain ExpenseEntry to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.ExpenseEntry) ExpenseResponse {
	return ExpenseResponse{
		ID:              e.ID.String(),
		Amount:          e.Amount.InexactFloat64(),
		IncurredDate:    e.IncurredDate.Format(valueobject.DateLayout),
		PaidDate:        formatDate(e.PaidDate),
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

// ToExpenseListResponse converts a list of entries.
func ToExpenseListResponse(entries []*entity.ExpenseEntry) ExpenseListResponse {
	resp := ExpenseListResponse{Expenses: make([]ExpenseResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Expenses = append(resp.Expenses, ToExpenseResponse(e))
	}
	return resp
}
