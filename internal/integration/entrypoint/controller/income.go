package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
)

// IncomeController handles receivable endpoints.
type IncomeController struct {
	recordUseCase *ledger.RecordIncomeUseCase
	verifyUseCase *ledger.VerifyIncomeUseCase
	listUseCase   *ledger.ListIncomeUseCase
}

// NewIncomeController creates a new income controller instance.
func NewIncomeController(
	recordUseCase *ledger.RecordIncomeUseCase,
	verifyUseCase *ledger.VerifyIncomeUseCase,
	listUseCase *ledger.ListIncomeUseCase,
) *IncomeController {
	return &IncomeController{
		recordUseCase: recordUseCase,
		verifyUseCase: verifyUseCase,
		listUseCase:   listUseCase,
	}
}

// Create handles POST /income requests.
func (c *IncomeController) Create(ctx *gin.Context) {
	var req dto.CreateIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}
	payload, err := req.ToPayload()
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), ledger.RecordIncomeInput{Payload: payload})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToIncomeResponse(output.Income))
}

// List handles GET /income requests.
func (c *IncomeController) List(ctx *gin.Context) {
	var query dto.ListIncomeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	var filter adapter.IncomeFilter
	if query.Status != "" {
		filter.Statuses = []entity.IncomeStatus{entity.IncomeStatus(query.Status)}
	}
	if from, _ := dto.ParseDate(query.From); !from.IsZero() {
		filter.DateFrom = &from
	}
	if to, _ := dto.ParseDate(query.To); !to.IsZero() {
		filter.DateTo = &to
	}

	entries, err := c.listUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeListResponse(entries))
}

// Verify handles POST /income/:id/verify requests.
func (c *IncomeController) Verify(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	var req dto.VerifyIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}
	receivedDate, err := dto.ParseDate(req.ReceivedDate)
	if err != nil {
		respondBindingError(ctx, err)
		return
	}
	accountID, err := dto.ParseOptionalUUID(req.AccountID)
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	input := ledger.VerifyIncomeInput{
		IncomeID:     id,
		ReceivedDate: receivedDate,
		AccountID:    accountID,
		Partial:      req.Partial,
	}
	if req.AmountReceived != nil {
		amount := decimal.NewFromFloat(*req.AmountReceived)
		input.VerifiedAmount = &amount
	}

	output, err := c.verifyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeResponse(output.Income))
}
