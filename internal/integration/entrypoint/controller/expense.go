package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles payable endpoints.
type ExpenseController struct {
	recordUseCase         *ledger.RecordExpenseUseCase
	requestPaymentUseCase *ledger.RequestExpensePaymentUseCase
	payUseCase            *ledger.PayExpenseUseCase
	listUseCase           *ledger.ListExpensesUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	recordUseCase *ledger.RecordExpenseUseCase,
	requestPaymentUseCase *ledger.RequestExpensePaymentUseCase,
	payUseCase *ledger.PayExpenseUseCase,
	listUseCase *ledger.ListExpensesUseCase,
) *ExpenseController {
	return &ExpenseController{
		recordUseCase:         recordUseCase,
		requestPaymentUseCase: requestPaymentUseCase,
		payUseCase:            payUseCase,
		listUseCase:           listUseCase,
	}
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}
	payload, err := req.ToPayload()
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), ledger.RecordExpenseInput{Payload: payload})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	var query dto.ListExpensesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	var filter adapter.ExpenseFilter
	if query.Status != "" {
		filter.Statuses = []entity.ExpenseStatus{entity.ExpenseStatus(query.Status)}
	}
	if from, _ := dto.ParseDate(query.From); !from.IsZero() {
		filter.IncurredFrom = &from
	}
	if to, _ := dto.ParseDate(query.To); !to.IsZero() {
		filter.IncurredTo = &to
	}

	entries, err := c.listUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(entries))
}

// RequestPayment handles POST /expenses/:id/request-payment requests.
func (c *ExpenseController) RequestPayment(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.requestPaymentUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Pay handles POST /expenses/:id/pay requests.
func (c *ExpenseController) Pay(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	var req dto.PayExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}
	paidDate, err := dto.ParseDate(req.PaidDate)
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.payUseCase.Execute(ctx.Request.Context(), ledger.PayExpenseInput{
		ExpenseID: id,
		PaidDate:  paidDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}
