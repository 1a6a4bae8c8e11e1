package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
)

// respondError maps a use case error to an HTTP response. Invariant violations
// win over the wrapping error so the client sees the rule that was broken.
func respondError(ctx *gin.Context, err error) {
	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
	}
	ctx.JSON(status, resp)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var invErr *domainerror.InvariantError
	if errors.As(err, &invErr) {
		return http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "Ledger invariant violated",
			Code:    string(invErr.Code),
			Details: invErr.Message,
		}
	}

	switch {
	case errors.Is(err, domainerror.ErrIncomeNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: "Income entry not found", Code: string(domainerror.ErrCodeIncomeNotFound)}
	case errors.Is(err, domainerror.ErrExpenseNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: "Expense entry not found", Code: string(domainerror.ErrCodeExpenseNotFound)}
	case errors.Is(err, domainerror.ErrCashAccountNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: "Cash account not found", Code: string(domainerror.ErrCodeCashAccountNotFound)}
	}

	var rcvErr *domainerror.ReceivableError
	if errors.As(err, &rcvErr) {
		return receivableStatus(rcvErr.Code), dto.ErrorResponse{Error: rcvErr.Message, Code: string(rcvErr.Code)}
	}
	var cshErr *domainerror.CashflowError
	if errors.As(err, &cshErr) {
		return cashflowStatus(cshErr.Code), dto.ErrorResponse{Error: cshErr.Message, Code: string(cshErr.Code)}
	}
	var intErr *domainerror.IntegrationError
	if errors.As(err, &intErr) {
		resp := dto.ErrorResponse{Error: intErr.Message, Code: string(intErr.Code)}
		if intErr.Err != nil {
			resp.Details = intErr.Err.Error()
		}
		return integrationStatus(intErr.Code), resp
	}
	var ldgErr *domainerror.LedgerError
	if errors.As(err, &ldgErr) {
		return ledgerStatus(ldgErr.Code), dto.ErrorResponse{Error: ldgErr.Message, Code: string(ldgErr.Code)}
	}

	return http.StatusInternalServerError, dto.ErrorResponse{Error: "An internal error occurred"}
}

func ledgerStatus(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPayload, domainerror.ErrCodeInvalidAmount, domainerror.ErrCodeInvalidDate:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvariantViolation, domainerror.ErrCodeInactiveAccount:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeIncomeNotFound, domainerror.ErrCodeExpenseNotFound, domainerror.ErrCodeCashAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransition, domainerror.ErrCodeDuplicateSource:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func receivableStatus(code domainerror.ReceivableErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidHoldCounterpart,
		domainerror.ErrCodeInvalidResolveAction,
		domainerror.ErrCodeMissingDate,
		domainerror.ErrCodeMissingHoldReason,
		domainerror.ErrCodePastDate:
		return http.StatusBadRequest
	case domainerror.ErrCodeAlreadySettled,
		domainerror.ErrCodeNotOnHold,
		domainerror.ErrCodeAlreadyOnHold,
		domainerror.ErrCodeReceivableClosed:
		return http.StatusConflict
	case domainerror.ErrCodeSettlementFailed:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeReceivableNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func cashflowStatus(code domainerror.CashflowErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidMonth, domainerror.ErrCodeInvalidHorizon:
		return http.StatusBadRequest
	case domainerror.ErrCodeMonthAlreadyClosed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func integrationStatus(code domainerror.IntegrationErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidInvoiceEvent:
		return http.StatusBadRequest
	case domainerror.ErrCodeUnsupportedSourceSystem, domainerror.ErrCodeInvoiceIngestFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondBindingError answers a request that failed binding or parsing.
func respondBindingError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    string(domainerror.ErrCodeInvalidPayload),
		Details: describeBindingError(err),
	})
}

func describeBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
