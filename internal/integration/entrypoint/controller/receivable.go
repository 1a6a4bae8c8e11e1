package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/usecase/receivable"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
)

// ReceivableController handles receivable lifecycle endpoints.
type ReceivableController struct {
	listOverdueUseCase *receivable.ListOverdueUseCase
	listOnHoldUseCase  *receivable.ListOnHoldUseCase
	sweepUseCase       *receivable.SweepOverdueUseCase
	snoozeUseCase      *receivable.SnoozeUseCase
	holdUseCase        *receivable.HoldUseCase
	resolveUseCase     *receivable.ResolveHoldUseCase
	settleUseCase      *receivable.SettleUseCase
	backfillUseCase    *receivable.BackfillClientNamesUseCase
}

// ReceivableUseCases groups the use cases behind the receivable endpoints.
type ReceivableUseCases struct {
	ListOverdue *receivable.ListOverdueUseCase
	ListOnHold  *receivable.ListOnHoldUseCase
	Sweep       *receivable.SweepOverdueUseCase
	Snooze      *receivable.SnoozeUseCase
	Hold        *receivable.HoldUseCase
	Resolve     *receivable.ResolveHoldUseCase
	Settle      *receivable.SettleUseCase
	Backfill    *receivable.BackfillClientNamesUseCase
}

// NewReceivableController creates a new receivable controller instance.
func NewReceivableController(uc ReceivableUseCases) *ReceivableController {
	return &ReceivableController{
		listOverdueUseCase: uc.ListOverdue,
		listOnHoldUseCase:  uc.ListOnHold,
		sweepUseCase:       uc.Sweep,
		snoozeUseCase:      uc.Snooze,
		holdUseCase:        uc.Hold,
		resolveUseCase:     uc.Resolve,
		settleUseCase:      uc.Settle,
		backfillUseCase:    uc.Backfill,
	}
}

// ListOverdue handles GET /receivables/overdue requests.
func (c *ReceivableController) ListOverdue(ctx *gin.Context) {
	items, err := c.listOverdueUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOverdueListResponse(items))
}

// ListOnHold handles GET /receivables/on-hold requests.
func (c *ReceivableController) ListOnHold(ctx *gin.Context) {
	entries, err := c.listOnHoldUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOnHoldListResponse(entries))
}

// Sweep handles POST /receivables/sweep requests.
func (c *ReceivableController) Sweep(ctx *gin.Context) {
	output, err := c.sweepUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSweepResponse(output))
}

// Snooze handles POST /receivables/:id/snooze requests.
func (c *ReceivableController) Snooze(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.SnoozeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}
	expected, err := dto.ParseDate(req.ExpectedDate)
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	entry, err := c.snoozeUseCase.Execute(ctx.Request.Context(), receivable.SnoozeInput{
		IncomeID:     id,
		ExpectedDate: expected,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToIncomeResponse(entry))
}

// Hold handles POST /receivables/:id/hold requests.
func (c *ReceivableController) Hold(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.HoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	entry, err := c.holdUseCase.Execute(ctx.Request.Context(), receivable.HoldInput{
		IncomeID: id,
		Reason:   req.Reason,
		Note:     req.Note,
		With:     entity.HoldCounterpart(req.With),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToIncomeResponse(entry))
}

// Resolve handles POST /receivables/:id/resolve requests.
func (c *ReceivableController) Resolve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ResolveHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}
	newDate, err := dto.ParseDate(req.NewDate)
	if err != nil {
		respondBindingError(ctx, err)
		return
	}
	accountID, err := dto.ParseOptionalUUID(req.AccountID)
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.resolveUseCase.Execute(ctx.Request.Context(), receivable.ResolveHoldInput{
		IncomeID:  id,
		Action:    valueobject.ResolveAction(req.Action),
		NewDate:   newDate,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToResolveHoldResponse(output))
}

// Settle handles POST /receivables/:id/settle requests.
func (c *ReceivableController) Settle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.SettleRequest
	// The body is optional.
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondBindingError(ctx, err)
			return
		}
	}
	accountID, err := dto.ParseOptionalUUID(req.AccountID)
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.settleUseCase.Execute(ctx.Request.Context(), receivable.SettleInput{
		IncomeID:  id,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	operator, _ := middleware.GetSubjectFromContext(ctx)
	slog.Info("Receivable settled through API", "income_id", id, "operator", operator)
	ctx.JSON(http.StatusOK, dto.ToSettlementResponse(output))
}

// Backfill handles POST /receivables/backfill-clients requests.
func (c *ReceivableController) Backfill(ctx *gin.Context) {
	output, err := c.backfillUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BackfillResponse{
		Scanned: output.Scanned,
		Updated: output.Updated,
	})
}

func parseIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBindingError(ctx, err)
		return uuid.Nil, false
	}
	return id, true
}
