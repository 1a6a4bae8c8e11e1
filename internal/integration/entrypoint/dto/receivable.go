package dto

import (
	"github.com/ledgerly/backend/internal/application/usecase/receivable"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// SnoozeRequest represents the request body for snoozing a receivable.
type SnoozeRequest struct {
	ExpectedDate string `json:"expected_date" binding:"required,datetime=2006-01-02"`
}

// HoldRequest represents the request body for holding a receivable.
type HoldRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
	Note   string `json:"note,omitempty"`
	With   string `json:"with,omitempty" binding:"omitempty,oneof=client internal project"`
}

// ResolveHoldRequest represents the request body for resolving a hold.
type ResolveHoldRequest struct {
	Action    string  `json:"action" binding:"required,oneof=received new_date"`
	NewDate   string  `json:"new_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	AccountID *string `json:"account_id,omitempty" binding:"omitempty,uuid"`
}

// SettleRequest represents the request body for settling a receivable.
type SettleRequest struct {
	AccountID *string `json:"account_id,omitempty" binding:"omitempty,uuid"`
}

// OverdueItemResponse is a receivable with its days past due.
type OverdueItemResponse struct {
	IncomeResponse
	DaysOverdue int `json:"days_overdue"`
}

// OverdueListResponse represents the overdue listing.
type OverdueListResponse struct {
	Receivables []OverdueItemResponse `json:"receivables"`
}

// OnHoldListResponse represents the on-hold listing.
type OnHoldListResponse struct {
	Receivables []IncomeResponse `json:"receivables"`
}

// SweepResponse represents the result of an overdue sweep.
type SweepResponse struct {
	Scanned int              `json:"scanned"`
	Flagged []IncomeResponse `json:"flagged"`
}

// SettlementResponse represents the result of a settlement.
type SettlementResponse struct {
	Original IncomeResponse  `json:"original"`
	Realized *IncomeResponse `json:"realized"`
	InPlace  bool            `json:"in_place"`
}

// ResolveHoldResponse represents the result of resolving a hold.
type ResolveHoldResponse struct {
	Income     IncomeResponse      `json:"income"`
	Settlement *SettlementResponse `json:"settlement,omitempty"`
}

// BackfillResponse represents the result of a client name backfill.
type BackfillResponse struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
}

// ToOverdueListResponse converts the overdue listing.
func ToOverdueListResponse(items []receivable.OverdueItem) OverdueListResponse {
	resp := OverdueListResponse{Receivables: make([]OverdueItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Receivables = append(resp.Receivables, OverdueItemResponse{
			IncomeResponse: ToIncomeResponse(item.Income),
			DaysOverdue:    item.DaysOverdue,
		})
	}
	return resp
}

// ToOnHoldListResponse converts the on-hold listing.
func ToOnHoldListResponse(entries []*entity.IncomeEntry) OnHoldListResponse {
	return OnHoldListResponse{Receivables: ToIncomeListResponse(entries).Income}
}

// ToSweepResponse converts a sweep result.
func ToSweepResponse(out *receivable.SweepOverdueOutput) SweepResponse {
	return SweepResponse{
		Scanned: out.Scanned,
		Flagged: ToIncomeListResponse(out.Flagged).Income,
	}
}

// ToSettlementResponse converts a settlement result.
func ToSettlementResponse(out *receivable.SettleOutput) SettlementResponse {
	resp := SettlementResponse{
		Original: ToIncomeResponse(out.Original),
		InPlace:  out.InPlace,
	}
	if out.Realized != nil {
		realized := ToIncomeResponse(out.Realized)
		resp.Realized = &realized
	}
	return resp
}

// ToResolveHoldResponse converts a hold resolution result.
func ToResolveHoldResponse(out *receivable.ResolveHoldOutput) ResolveHoldResponse {
	resp := ResolveHoldResponse{Income: ToIncomeResponse(out.Income)}
	if out.Settlement != nil {
		settlement := ToSettlementResponse(out.Settlement)
		resp.Settlement = &settlement
	}
	return resp
}
