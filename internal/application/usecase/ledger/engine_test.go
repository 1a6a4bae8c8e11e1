package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 20, 10, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(fixedClock{now: testNow})
}

func acmePayload() entity.IncomePayload {
	return entity.IncomePayload{
		AmountExpected: decimal.NewFromInt(10000),
		ClientName:     "Acme",
		Description:    "Acme: Website redesign",
		Date:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEngine_IngestIncome(t *testing.T) {
	t.Run("creates a pending entry with no receipt facts", func(t *testing.T) {
		res := newTestEngine().IngestIncome(acmePayload())

		require.True(t, res.Success, res.Error)
		assert.Equal(t, entity.IncomeStatusPending, res.Data.Status)
		assert.Nil(t, res.Data.ReceivedDate)
		assert.True(t, res.Data.AmountReceived.IsZero())
		assert.Equal(t, entity.IncomeCategoryProjectFee, res.Data.Category)
		assert.NotEqual(t, uuid.Nil, res.Data.ID)
		assert.Empty(t, res.Events)
	})

	t.Run("ignores receipt facts carried by the payload", func(t *testing.T) {
		payload := acmePayload()
		received := testNow
		payload.Status = entity.IncomeStatusReceived
		payload.AmountReceived = decimal.NewFromInt(10000)
		payload.ReceivedDate = &received

		res := newTestEngine().IngestIncome(payload)

		require.True(t, res.Success)
		assert.Equal(t, entity.IncomeStatusPending, res.Data.Status)
		assert.Nil(t, res.Data.ReceivedDate)
	})

	t.Run("defaults the date to today", func(t *testing.T) {
		payload := acmePayload()
		payload.Date = time.Time{}

		res := newTestEngine().IngestIncome(payload)

		require.True(t, res.Success)
		assert.Equal(t, valueobject.StartOfDay(testNow), res.Data.Date)
	})

	t.Run("rejects a non-positive expected amount", func(t *testing.T) {
		payload := acmePayload()
		payload.AmountExpected = decimal.Zero

		res := newTestEngine().IngestIncome(payload)

		assert.False(t, res.Success)
		assert.Nil(t, res.Data)
		assert.NotEmpty(t, res.Error)
		assert.True(t, errors.Is(res.Err, domainerror.ErrInvariantViolation))
	})
}

func TestEngine_VerifyIncome(t *testing.T) {
	engine := newTestEngine()
	pending := engine.IngestIncome(acmePayload()).Data
	receivedOn := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

	t.Run("defaults the received amount to the expected amount", func(t *testing.T) {
		res := engine.VerifyIncome(pending, receivedOn, nil, nil)

		require.True(t, res.Success, res.Error)
		assert.Equal(t, entity.IncomeStatusReceived, res.Data.Status)
		assert.True(t, res.Data.AmountReceived.Equal(pending.AmountExpected))
		require.NotNil(t, res.Data.ReceivedDate)
		assert.Equal(t, valueobject.StartOfDay(receivedOn), *res.Data.ReceivedDate)
		assert.Equal(t, []valueobject.LedgerEvent{valueobject.EventRecalculateLiquidCash}, res.Events)
	})

	t.Run("does not modify the input record", func(t *testing.T) {
		engine.VerifyIncome(pending, receivedOn, nil, nil)

		assert.Equal(t, entity.IncomeStatusPending, pending.Status)
		assert.Nil(t, pending.ReceivedDate)
	})

	t.Run("uses an explicit verified amount", func(t *testing.T) {
		amount := decimal.NewFromInt(9500)
		res := engine.VerifyIncome(pending, receivedOn, nil, &amount)

		require.True(t, res.Success)
		assert.True(t, res.Data.AmountReceived.Equal(amount))
	})

	t.Run("rejects a zero verified amount", func(t *testing.T) {
		amount := decimal.Zero
		res := engine.VerifyIncome(pending, receivedOn, nil, &amount)

		assert.False(t, res.Success)
		assert.Empty(t, res.Events)
		assert.True(t, errors.Is(res.Err, domainerror.ErrInvariantViolation))
	})

	t.Run("rejects a missing received date", func(t *testing.T) {
		res := engine.VerifyIncome(pending, time.Time{}, nil, nil)

		assert.False(t, res.Success)
		assert.True(t, errors.Is(res.Err, domainerror.ErrInvariantViolation))
	})

	t.Run("accepts an overdue entry", func(t *testing.T) {
		overdue := engine.MarkIncomeOverdue(pending).Data

		res := engine.VerifyIncome(overdue, receivedOn, nil, nil)

		assert.True(t, res.Success)
	})

	t.Run("rejects an already received entry", func(t *testing.T) {
		received := engine.VerifyIncome(pending, receivedOn, nil, nil).Data

		res := engine.VerifyIncome(received, receivedOn, nil, nil)

		assert.False(t, res.Success)
		assert.True(t, errors.Is(res.Err, domainerror.ErrInvalidTransition))
	})

	t.Run("rejects an inactive account", func(t *testing.T) {
		account := entity.NewCashAccount("Closed", entity.CashAccountBank, decimal.Zero, testNow)
		account.IsActive = false

		res := engine.VerifyIncome(pending, receivedOn, account, nil)

		assert.False(t, res.Success)
		assert.True(t, errors.Is(res.Err, domainerror.ErrInactiveAccount))
	})

	t.Run("records the deposit account", func(t *testing.T) {
		account := entity.NewCashAccount("Main", entity.CashAccountBank, decimal.Zero, testNow)

		res := engine.VerifyIncome(pending, receivedOn, account, nil)

		require.True(t, res.Success)
		require.NotNil(t, res.Data.DepositAccountID)
		assert.Equal(t, account.ID, *res.Data.DepositAccountID)
	})
}

func TestEngine_VerifyPartialIncome(t *testing.T) {
	engine := newTestEngine()
	pending := engine.IngestIncome(acmePayload()).Data

	first := engine.VerifyPartialIncome(pending, testNow, nil, decimal.NewFromInt(4000))
	require.True(t, first.Success, first.Error)
	assert.Equal(t, entity.IncomeStatusPartial, first.Data.Status)
	assert.Equal(t, []valueobject.LedgerEvent{valueobject.EventRecalculateLiquidCash}, first.Events)

	lower := engine.VerifyPartialIncome(first.Data, testNow, nil, decimal.NewFromInt(3000))
	assert.False(t, lower.Success)

	full := engine.VerifyPartialIncome(first.Data, testNow, nil, decimal.NewFromInt(10000))
	require.True(t, full.Success)
	assert.Equal(t, entity.IncomeStatusReceived, full.Data.Status)
}

func TestEngine_MarkIncomeOverdue(t *testing.T) {
	engine := newTestEngine()
	pending := engine.IngestIncome(acmePayload()).Data

	res := engine.MarkIncomeOverdue(pending)
	require.True(t, res.Success)
	assert.Equal(t, entity.IncomeStatusOverdue, res.Data.Status)
	assert.Empty(t, res.Events)

	again := engine.MarkIncomeOverdue(res.Data)
	assert.False(t, again.Success)
}

func TestEngine_MarkIncomeOverdue_PartialLeavesCashBasis(t *testing.T) {
	engine := newTestEngine()
	pending := engine.IngestIncome(acmePayload()).Data
	partial := engine.VerifyPartialIncome(pending, testNow, nil, decimal.NewFromInt(4000)).Data

	res := engine.MarkIncomeOverdue(partial)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, entity.IncomeStatusOverdue, res.Data.Status)
	assert.True(t, res.Data.AmountReceived.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, []valueobject.LedgerEvent{valueobject.EventRecalculateLiquidCash}, res.Events)
}

func TestEngine_RescheduleIncome(t *testing.T) {
	engine := newTestEngine()
	overdue := engine.MarkIncomeOverdue(engine.IngestIncome(acmePayload()).Data).Data
	overdue.PlaceOnHold("awaiting PO", "", entity.HoldWithClient, testNow)
	newDate := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)

	res := engine.RescheduleIncome(overdue, newDate)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, entity.IncomeStatusPending, res.Data.Status)
	assert.False(t, res.Data.IsOnHold)
	assert.Nil(t, res.Data.HoldStartDate)
	require.NotNil(t, res.Data.ExpectedDate)
	assert.Equal(t, valueobject.StartOfDay(newDate), *res.Data.ExpectedDate)
	assert.Equal(t, overdue.Date, res.Data.Date)

	missing := engine.RescheduleIncome(overdue, time.Time{})
	assert.False(t, missing.Success)
}

func TestEngine_ArchiveIncome(t *testing.T) {
	engine := newTestEngine()
	pending := engine.IngestIncome(acmePayload()).Data
	realizedID := uuid.New()

	res := engine.ArchiveIncome(pending, realizedID)

	require.True(t, res.Success)
	assert.Equal(t, entity.IncomeStatusArchived, res.Data.Status)
	assert.Equal(t, "Acme: Website redesign (Converted)", res.Data.Description)
	require.NotNil(t, res.Data.SupersededByID)
	assert.Equal(t, realizedID, *res.Data.SupersededByID)
	assert.Empty(t, res.Events, "a pending original never counted toward cash")

	again := engine.ArchiveIncome(res.Data, uuid.New())
	assert.False(t, again.Success)
	assert.True(t, errors.Is(again.Err, domainerror.ErrAlreadySettled))

	partial := engine.VerifyPartialIncome(pending, testNow, nil, decimal.NewFromInt(100)).Data
	archivedPartial := engine.ArchiveIncome(partial, realizedID)
	require.True(t, archivedPartial.Success)
	assert.Equal(t, []valueobject.LedgerEvent{valueobject.EventRecalculateLiquidCash}, archivedPartial.Events)
}

func TestEngine_Expenses(t *testing.T) {
	engine := newTestEngine()
	payload := entity.ExpensePayload{
		Amount:       decimal.NewFromInt(1200),
		IncurredDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Category:     entity.ExpenseCategoryServer,
		Type:         entity.ExpenseTypeFixed,
		Vendor:       "Hetzner",
	}

	posted := engine.PostExpense(payload)
	require.True(t, posted.Success, posted.Error)
	assert.Equal(t, entity.ExpenseStatusPlanned, posted.Data.Status)
	assert.Nil(t, posted.Data.PaidDate)
	assert.Empty(t, posted.Events)

	requested := engine.RequestExpensePayment(posted.Data)
	require.True(t, requested.Success)
	assert.Equal(t, entity.ExpenseStatusPendingPayment, requested.Data.Status)

	noDate := engine.PayExpense(requested.Data, time.Time{})
	assert.False(t, noDate.Success)
	assert.True(t, errors.Is(noDate.Err, domainerror.ErrInvariantViolation))

	paid := engine.PayExpense(requested.Data, testNow)
	require.True(t, paid.Success)
	assert.Equal(t, entity.ExpenseStatusPaid, paid.Data.Status)
	require.NotNil(t, paid.Data.PaidDate)
	assert.Equal(t, []valueobject.LedgerEvent{valueobject.EventRecalculateLiquidCash}, paid.Events)

	twice := engine.PayExpense(paid.Data, testNow)
	assert.False(t, twice.Success)

	invalid := payload
	invalid.Amount = decimal.NewFromInt(-5)
	assert.False(t, engine.PostExpense(invalid).Success)
}

func TestEngine_RecoversFromPanics(t *testing.T) {
	engine := newTestEngine()

	res := engine.VerifyIncome(nil, testNow, nil, nil)

	assert.False(t, res.Success)
	var ledgerErr *domainerror.LedgerError
	require.True(t, errors.As(res.Err, &ledgerErr))
	assert.Equal(t, domainerror.ErrCodeUnexpectedFailure, ledgerErr.Code)
}

func TestTransactionResult_AsError(t *testing.T) {
	engine := newTestEngine()
	assert.NoError(t, engine.IngestIncome(acmePayload()).AsError())

	payload := acmePayload()
	payload.AmountExpected = decimal.Zero
	err := engine.IngestIncome(payload).AsError()

	var ledgerErr *domainerror.LedgerError
	require.True(t, errors.As(err, &ledgerErr))
	assert.Equal(t, domainerror.ErrCodeInvariantViolation, ledgerErr.Code)
	assert.True(t, errors.Is(err, domainerror.ErrInvariantViolation))
}
