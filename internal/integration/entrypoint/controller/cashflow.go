package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/application/usecase/cashflow"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
)

// CashflowController handles cash position, forecast and month close endpoints.
type CashflowController struct {
	positionUseCase   *cashflow.GetCashPositionUseCase
	forecastUseCase   *cashflow.GetForecastUseCase
	closeMonthUseCase *cashflow.CloseMonthUseCase
	snapshotsUseCase  *cashflow.ListSnapshotsUseCase
}

// NewCashflowController creates a new cashflow controller instance.
func NewCashflowController(
	positionUseCase *cashflow.GetCashPositionUseCase,
	forecastUseCase *cashflow.GetForecastUseCase,
	closeMonthUseCase *cashflow.CloseMonthUseCase,
	snapshotsUseCase *cashflow.ListSnapshotsUseCase,
) *CashflowController {
	return &CashflowController{
		positionUseCase:   positionUseCase,
		forecastUseCase:   forecastUseCase,
		closeMonthUseCase: closeMonthUseCase,
		snapshotsUseCase:  snapshotsUseCase,
	}
}

// Position handles GET /cashflow/position requests.
func (c *CashflowController) Position(ctx *gin.Context) {
	position, err := c.positionUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCashPositionResponse(position))
}

// Forecast handles GET /cashflow/forecast requests.
func (c *CashflowController) Forecast(ctx *gin.Context) {
	var query dto.ForecastQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.forecastUseCase.Execute(ctx.Request.Context(), query.Days)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToForecastResponse(output))
}

// CloseMonth handles POST /cashflow/close-month requests.
func (c *CashflowController) CloseMonth(ctx *gin.Context) {
	var req dto.CloseMonthRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondBindingError(ctx, err)
			return
		}
	}

	var month time.Time
	if req.Month != "" {
		parsed, err := time.Parse("2006-01", req.Month)
		if err != nil {
			respondBindingError(ctx, err)
			return
		}
		month = parsed
	}

	snapshot, err := c.closeMonthUseCase.Execute(ctx.Request.Context(), cashflow.CloseMonthInput{Month: month})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToSnapshotResponse(snapshot))
}

// Snapshots handles GET /cashflow/snapshots requests.
func (c *CashflowController) Snapshots(ctx *gin.Context) {
	snapshots, err := c.snapshotsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSnapshotListResponse(snapshots))
}
