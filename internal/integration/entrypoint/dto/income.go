package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// CreateIncomeRequest represents the request body for recording a receivable.
type CreateIncomeRequest struct {
	SourceRefID        *string `json:"source_ref_id,omitempty"`
	AmountExpected     float64 `json:"amount_expected" binding:"required,gt=0"`
	Category           string  `json:"category,omitempty" binding:"omitempty,oneof=RETAINER PROJECT_FEE ONE_OFF"`
	ClientName         string  `json:"client_name" binding:"required,max=255"`
	Description        string  `json:"description,omitempty"`
	ServiceName        string  `json:"service_name,omitempty"`
	Date               string  `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	RetainerInstanceID *string `json:"retainer_instance_id,omitempty" binding:"omitempty,uuid"`
}

// ToPayload converts the request into an ingestion payload.
func (r CreateIncomeRequest) ToPayload() (entity.IncomePayload, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return entity.IncomePayload{}, err
	}
	retainerID, err := ParseOptionalUUID(r.RetainerInstanceID)
	if err != nil {
		return entity.IncomePayload{}, err
	}
	return entity.IncomePayload{
		SourceRefID:        r.SourceRefID,
		AmountExpected:     decimal.NewFromFloat(r.AmountExpected),
		Category:           entity.IncomeCategory(r.Category),
		ClientName:         r.ClientName,
		Description:        r.Description,
		ServiceName:        r.ServiceName,
		Date:               date,
		RetainerInstanceID: retainerID,
	}, nil
}

// VerifyIncomeRequest represents the request body for verifying a receipt.
type VerifyIncomeRequest struct {
	ReceivedDate   string   `json:"received_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	AccountID      *string  `json:"account_id,omitempty" binding:"omitempty,uuid"`
	AmountReceived *float64 `json:"amount_received,omitempty" binding:"omitempty,gt=0"`
	Partial        bool     `json:"partial,omitempty"`
}

// ListIncomeQuery represents the query parameters for listing receivables.
type ListIncomeQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING RECEIVED PARTIAL OVERDUE ARCHIVED"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// IncomeResponse represents a receivable in API responses.
type IncomeResponse struct {
	ID                 string    `json:"id"`
	SourceRefID        *string   `json:"source_ref_id"`
	AmountExpected     float64   `json:"amount_expected"`
	AmountReceived     float64   `json:"amount_received"`
	ReceivedDate       *string   `json:"received_date"`
	Status             string    `json:"status"`
	Category           string    `json:"category"`
	ClientName         string    `json:"client_name"`
	Description        string    `json:"description,omitempty"`
	ServiceName        string    `json:"service_name,omitempty"`
	DepositAccountID   *string   `json:"deposit_account_id,omitempty"`
	Date               string    `json:"date"`
	ExpectedDate       *string   `json:"expected_date,omitempty"`
	IsOnHold           bool      `json:"is_on_hold"`
	HoldReason         string    `json:"hold_reason,omitempty"`
	HoldNote           string    `json:"hold_note,omitempty"`
	HoldWith           string    `json:"hold_with,omitempty"`
	HoldStartDate      *string   `json:"hold_start_date,omitempty"`
	RetainerInstanceID *string   `json:"retainer_instance_id,omitempty"`
	SupersedesID       *string   `json:"supersedes_id,omitempty"`
	SupersededByID     *string   `json:"superseded_by_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IncomeListResponse represents the response for listing receivables.
type IncomeListResponse struct {
	Income []IncomeResponse `json:"income"`
}

// ToIncomeResponse converts a domain IncomeEntry to an IncomeResponse DTO.
func ToIncomeResponse(e *entity.IncomeEntry) IncomeResponse {
	return IncomeResponse{
		ID:                 e.ID.String(),
		SourceRefID:        e.SourceRefID,
		AmountExpected:     e.AmountExpected.InexactFloat64(),
		AmountReceived:     e.AmountReceived.InexactFloat64(),
		ReceivedDate:       formatDate(e.ReceivedDate),
		Status:             string(e.Status),
		Category:           string(e.Category),
		ClientName:         e.ClientName,
		Description:        e.Description,
		ServiceName:        e.ServiceName,
		DepositAccountID:   formatUUID(e.DepositAccountID),
		Date:               e.Date.Format(valueobject.DateLayout),
		ExpectedDate:       formatDate(e.ExpectedDate),
		IsOnHold:           e.IsOnHold,
		HoldReason:         e.HoldReason,
		HoldNote:           e.HoldNote,
		HoldWith:           string(e.HoldWith),
		HoldStartDate:      formatDate(e.HoldStartDate),
		RetainerInstanceID: formatUUID(e.RetainerInstanceID),
		SupersedesID:       formatUUID(e.SupersedesID),
		SupersededByID:     formatUUID(e.SupersededByID),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// ToIncomeListResponse converts a list of entries.
func ToIncomeListResponse(entries []*entity.IncomeEntry) IncomeListResponse {
	resp := IncomeListResponse{Income: make([]IncomeResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Income = append(resp.Income, ToIncomeResponse(e))
	}
	return resp
}
