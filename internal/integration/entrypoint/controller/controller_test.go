package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/application/usecase/cashflow"
	"github.com/ledgerly/backend/internal/application/usecase/invoicing"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/application/usecase/receivable"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/adapters"
	"github.com/ledgerly/backend/internal/integration/events"
	"github.com/ledgerly/backend/internal/integration/persistence/memory"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := fixedClock{now: time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)}
	incomeRepo := memory.NewIncomeStore()
	expenseRepo := memory.NewExpenseStore()
	accountRepo := memory.NewCashAccountStore()
	snapshotRepo := memory.NewSnapshotStore()
	publisher := events.NewDispatcher(nil)
	engine := ledger.NewEngine(clock)

	settle := receivable.NewSettleUseCase(engine, incomeRepo, accountRepo, publisher, clock)
	reader := cashflow.NewLedgerReader(incomeRepo, expenseRepo, accountRepo)

	income := NewIncomeController(
		ledger.NewRecordIncomeUseCase(engine, incomeRepo),
		ledger.NewVerifyIncomeUseCase(engine, incomeRepo, accountRepo, publisher, clock),
		ledger.NewListIncomeUseCase(incomeRepo),
	)
	expense := NewExpenseController(
		ledger.NewRecordExpenseUseCase(engine, expenseRepo),
		ledger.NewRequestExpensePaymentUseCase(engine, expenseRepo),
		ledger.NewPayExpenseUseCase(engine, expenseRepo, publisher, clock),
		ledger.NewListExpensesUseCase(expenseRepo),
	)
	rcv := NewReceivableController(ReceivableUseCases{
		ListOverdue: receivable.NewListOverdueUseCase(incomeRepo, clock, 7),
		ListOnHold:  receivable.NewListOnHoldUseCase(incomeRepo),
		Sweep:       receivable.NewSweepOverdueUseCase(engine, incomeRepo, publisher, nil, clock, 7),
		Snooze:      receivable.NewSnoozeUseCase(incomeRepo, clock),
		Hold:        receivable.NewHoldUseCase(incomeRepo, clock),
		Resolve:     receivable.NewResolveHoldUseCase(engine, incomeRepo, settle),
		Settle:      settle,
		Backfill:    receivable.NewBackfillClientNamesUseCase(incomeRepo, clock),
	})
	cash := NewCashflowController(
		cashflow.NewGetCashPositionUseCase(reader, nil, clock, time.Minute),
		cashflow.NewGetForecastUseCase(reader, clock, 30),
		cashflow.NewCloseMonthUseCase(reader, snapshotRepo, memory.NewPayrollStore(), clock),
		cashflow.NewListSnapshotsUseCase(snapshotRepo),
	)
	integration := NewIntegrationController(
		invoicing.NewIngestInvoiceEventUseCase(adapters.NewQuoteForgeAdapter(), engine, incomeRepo, publisher, clock),
	)

	r := gin.New()
	r.POST("/income", income.Create)
	r.GET("/income", income.List)
	r.POST("/income/:id/verify", income.Verify)
	r.POST("/expenses", expense.Create)
	r.POST("/expenses/:id/pay", expense.Pay)
	r.GET("/receivables/overdue", rcv.ListOverdue)
	r.POST("/receivables/sweep", rcv.Sweep)
	r.POST("/receivables/:id/hold", rcv.Hold)
	r.POST("/receivables/:id/resolve", rcv.Resolve)
	r.POST("/receivables/:id/settle", rcv.Settle)
	r.GET("/cashflow/position", cash.Position)
	r.GET("/cashflow/forecast", cash.Forecast)
	r.POST("/cashflow/close-month", cash.CloseMonth)
	r.POST("/integrations/quoteforge/events", integration.QuoteForgeEvent)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func createIncome(t *testing.T, r http.Handler, date string) string {
	t.Helper()
	w, body := doJSON(t, r, http.MethodPost, "/income", map[string]any{
		"amount_expected": 1500,
		"client_name":     "Acme",
		"description":     "Acme: Website redesign",
		"date":            date,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body["id"].(string)
}

func TestIncomeController_CreateAndVerify(t *testing.T) {
	r := newTestRouter(t)

	id := createIncome(t, r, "2026-03-01")

	w, body := doJSON(t, r, http.MethodPost, "/income/"+id+"/verify", map[string]any{
		"received_date": "2026-03-18",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "RECEIVED", body["status"])
	assert.Equal(t, "2026-03-18", body["received_date"])

	w, body = doJSON(t, r, http.MethodPost, "/income/"+id+"/verify", map[string]any{})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidTransition), body["code"])

	w, body = doJSON(t, r, http.MethodGet, "/income?status=RECEIVED", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["income"], 1)
}

func TestIncomeController_Errors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing client name",
			method:   http.MethodPost,
			path:     "/income",
			body:     map[string]any{"amount_expected": 10},
			wantCode: http.StatusBadRequest,
			wantErr:  string(domainerror.ErrCodeInvalidPayload),
		},
		{
			name:     "non positive amount",
			method:   http.MethodPost,
			path:     "/income",
			body:     map[string]any{"amount_expected": -5, "client_name": "Acme"},
			wantCode: http.StatusBadRequest,
			wantErr:  string(domainerror.ErrCodeInvalidPayload),
		},
		{
			name:     "malformed id",
			method:   http.MethodPost,
			path:     "/income/not-a-uuid/verify",
			body:     map[string]any{},
			wantCode: http.StatusBadRequest,
			wantErr:  string(domainerror.ErrCodeInvalidPayload),
		},
		{
			name:     "unknown entry",
			method:   http.MethodPost,
			path:     "/income/6f1c3a52-3f7e-4d0e-9a43-0f4f6b2a2c11/verify",
			body:     map[string]any{},
			wantCode: http.StatusNotFound,
			wantErr:  string(domainerror.ErrCodeIncomeNotFound),
		},
		{
			name:     "forecast horizon out of range",
			method:   http.MethodGet,
			path:     "/cashflow/forecast?days=400",
			wantCode: http.StatusBadRequest,
			wantErr:  string(domainerror.ErrCodeInvalidPayload),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doJSON(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Equal(t, tt.wantErr, body["code"])
		})
	}
}

func TestReceivableController_HoldResolveSettle(t *testing.T) {
	r := newTestRouter(t)

	id := createIncome(t, r, "2026-02-01")

	w, body := doJSON(t, r, http.MethodPost, "/receivables/sweep", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), body["scanned"])
	assert.Len(t, body["flagged"], 1)

	w, body = doJSON(t, r, http.MethodGet, "/receivables/overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := body["receivables"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(47), items[0].(map[string]any)["days_overdue"])

	w, body = doJSON(t, r, http.MethodPost, "/receivables/"+id+"/hold", map[string]any{
		"reason": "Waiting for PO",
		"with":   "client",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["is_on_hold"])

	w, body = doJSON(t, r, http.MethodPost, "/receivables/"+id+"/hold", map[string]any{"reason": "again"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeAlreadyOnHold), body["code"])

	w, body = doJSON(t, r, http.MethodPost, "/receivables/"+id+"/resolve", map[string]any{"action": "received"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	settlement := body["settlement"].(map[string]any)
	assert.Equal(t, false, settlement["in_place"])
	original := settlement["original"].(map[string]any)
	assert.Equal(t, "ARCHIVED", original["status"])
	assert.Equal(t, "Acme: Website redesign (Converted)", original["description"])

	w, body = doJSON(t, r, http.MethodPost, "/receivables/"+id+"/settle", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeAlreadySettled), body["code"])
}

func TestCashflowController_PositionAndCloseMonth(t *testing.T) {
	r := newTestRouter(t)

	id := createIncome(t, r, "2026-02-10")
	w, _ := doJSON(t, r, http.MethodPost, "/income/"+id+"/verify", map[string]any{"received_date": "2026-02-12"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body := doJSON(t, r, http.MethodGet, "/cashflow/position", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1500), body["liquid_cash"])

	w, body = doJSON(t, r, http.MethodPost, "/cashflow/close-month", map[string]any{"month": "2026-02"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2026-02", body["month"])
	assert.Equal(t, float64(1500), body["total_revenue"])

	w, body = doJSON(t, r, http.MethodPost, "/cashflow/close-month", map[string]any{"month": "2026-02"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeMonthAlreadyClosed), body["code"])

	w, body = doJSON(t, r, http.MethodGet, "/cashflow/forecast?days=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, body["points"], 5)
}

func TestExpenseController_Pay(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/expenses", map[string]any{
		"amount":   49.9,
		"category": "TOOLS",
		"type":     "FIXED",
		"vendor":   "Figma",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "PLANNED", body["status"])
	id := body["id"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/expenses/"+id+"/pay", map[string]any{"paid_date": "2026-03-19"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "PAID", body["status"])

	w, body = doJSON(t, r, http.MethodPost, "/expenses/"+id+"/pay", map[string]any{"paid_date": "2026-03-19"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidTransition), body["code"])
}

func TestIntegrationController_QuoteForgeEvent(t *testing.T) {
	r := newTestRouter(t)

	event := map[string]any{
		"external_id":     "QF-1042",
		"source_system":   "QuoteForge",
		"amount_invoiced": 2400,
		"amount_received": 0,
		"currency":        "EUR",
		"issue_date":      "2026-03-01",
		"due_date":        "2026-03-31",
		"external_status": "SENT",
		"client_name":     "Globex",
		"project_ref":     "Brand refresh",
	}

	w, body := doJSON(t, r, http.MethodPost, "/integrations/quoteforge/events", event)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, body["duplicate"])

	w, body = doJSON(t, r, http.MethodPost, "/integrations/quoteforge/events", event)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["duplicate"])

	event["external_status"] = "PAID"
	event["amount_received"] = 2400
	event["payment_date"] = "2026-03-18"
	w, body = doJSON(t, r, http.MethodPost, "/integrations/quoteforge/events", event)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, body["duplicate"])
	assert.Equal(t, true, body["updated"])
	income, ok := body["income"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RECEIVED", income["status"])

	event["source_system"] = "Stripe"
	w, body = doJSON(t, r, http.MethodPost, "/integrations/quoteforge/events", event)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeUnsupportedSourceSystem), body["code"])
}

func TestErrorResponse(t *testing.T) {
	invariant := domainerror.NewInvariantError(domainerror.ErrCodeExpensePaidWithoutDate, "paid expense needs a paid date")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invariant inside ledger error",
			err:        domainerror.NewLedgerError(domainerror.ErrCodeInvariantViolation, "rejected", invariant),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   string(domainerror.ErrCodeExpensePaidWithoutDate),
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("failed to load: %w", domainerror.ErrExpenseNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeExpenseNotFound),
		},
		{
			name: "ingest failure keeps the outer code",
			err: domainerror.NewIntegrationError(domainerror.ErrCodeInvoiceIngestFailed, "rejected",
				domainerror.NewLedgerError(domainerror.ErrCodeInvalidTransition, "bad", domainerror.ErrInvalidTransition)),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   string(domainerror.ErrCodeInvoiceIngestFailed),
		},
		{
			name:       "invalid month",
			err:        domainerror.NewCashflowError(domainerror.ErrCodeInvalidMonth, "bad month", domainerror.ErrInvalidMonth),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidMonth),
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := errorResponse(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
