package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// Engine is the only component allowed to create ledger records or change their
// status, received date or paid date. Operations are pure: they never touch the
// store and never modify the records they are given.
type Engine struct {
	clock adapter.Clock
	newID func() uuid.UUID
}

// NewEngine creates a new transaction engine.
func NewEngine(clock adapter.Clock) *Engine {
	return &Engine{
		clock: clock,
		newID: uuid.New,
	}
}

// IngestIncome creates a PENDING income entry from a payload.
func (e *Engine) IngestIncome(payload entity.IncomePayload) (res TransactionResult[*entity.IncomeEntry]) {
	defer recoverResult(&res)

	if payload.Category == "" {
		payload.Category = entity.IncomeCategoryProjectFee
	}
	now := e.clock.Now().UTC()
	date := payload.Date
	if date.IsZero() {
		date = now
	}

	income := &entity.IncomeEntry{
		ID:                 e.newID(),
		SourceRefID:        payload.SourceRefID,
		AmountExpected:     payload.AmountExpected,
		AmountReceived:     decimal.Zero,
		ReceivedDate:       nil,
		Status:             entity.IncomeStatusPending,
		Category:           payload.Category,
		ClientName:         payload.ClientName,
		Description:        payload.Description,
		ServiceName:        payload.ServiceName,
		Date:               valueobject.StartOfDay(date),
		RetainerInstanceID: payload.RetainerInstanceID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := entity.ValidateIncomeInvariant(income); err != nil {
		return fail[*entity.IncomeEntry](err)
	}
	return succeed(income)
}

// VerifyIncome marks an open income entry as RECEIVED. The received amount
// defaults to the expected amount when verifiedAmount is nil.
func (e *Engine) VerifyIncome(
	record *entity.IncomeEntry,
	receivedDate time.Time,
	account *entity.CashAccount,
	verifiedAmount *decimal.Decimal,
) (res TransactionResult[*entity.IncomeEntry]) {
	defer recoverResult(&res)

	if err := checkVerifiable(record, account); err != nil {
		return fail[*entity.IncomeEntry](err)
	}

	finalAmount := record.AmountExpected
	if verifiedAmount != nil {
		finalAmount = *verifiedAmount
	}

	verified := e.applyReceipt(record, entity.IncomeStatusReceived, receivedDate, account, finalAmount)
	if err := entity.ValidateIncomeInvariant(verified); err != nil {
		return fail[*entity.IncomeEntry](err)
	}
	return succeed(verified, valueobject.EventRecalculateLiquidCash)
}

// VerifyPartialIncome records a partial receipt. receivedTotal is the cumulative
// amount received so far; once it covers the expected amount the entry becomes RECEIVED.
func (e *Engine) VerifyPartialIncome(
	record *entity.IncomeEntry,
	receivedDate time.Time,
	account *entity.CashAccount,
	receivedTotal decimal.Decimal,
) (res TransactionResult[*entity.IncomeEntry]) {
	defer recoverResult(&res)

	if err := checkVerifiable(record, account); err != nil {
		return fail[*entity.IncomeEntry](err)
	}
	if receivedTotal.LessThan(record.AmountReceived) {
		return fail[*entity.IncomeEntry](domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			fmt.Sprintf("received total %s is below the %s already recorded", receivedTotal, record.AmountReceived),
			domainerror.ErrInvalidPayload,
		))
	}

	status := entity.IncomeStatusPartial
	if receivedTotal.GreaterThanOrEqual(record.AmountExpected) {
		status = entity.IncomeStatusReceived
	}

	verified := e.applyReceipt(record, status, receivedDate, account, receivedTotal)
	if err := entity.ValidateIncomeInvariant(verified); err != nil {
		return fail[*entity.IncomeEntry](err)
	}
	return succeed(verified, valueobject.EventRecalculateLiquidCash)
}

// MarkIncomeOverdue flags an open, unheld income entry as OVERDUE. A PARTIAL
// entry leaves the cash basis, so its received amount drops out of liquid cash.
func (e *Engine) MarkIncomeOverdue(record *entity.IncomeEntry) (res TransactionResult[*entity.IncomeEntry]) {
	defer recoverResult(&res)

	if record.Status != entity.IncomeStatusPending && record.Status != entity.IncomeStatusPartial {
		return fail[*entity.IncomeEntry](invalidTransition(string(record.Status), string(entity.IncomeStatusOverdue)))
	}

	overdue := record.Clone()
	overdue.Status = entity.IncomeStatusOverdue
	overdue.UpdatedAt = e.clock.Now().UTC()
	if err := entity.ValidateIncomeInvariant(overdue); err != nil {
		return fail[*entity.IncomeEntry](err)
	}
	if record.Status.IsCashBasis() {
		return succeed(overdue, valueobject.EventRecalculateLiquidCash)
	}
	return succeed(overdue)
}

// RescheduleIncome moves an open entry's expected date and returns it to PENDING
// tracking. Any hold is cleared.
func (e *Engine) RescheduleIncome(record *entity.IncomeEntry, expectedDate time.Time) (res TransactionResult[*entity.IncomeEntry]) {
	defer recoverResult(&res)

	if expectedDate.IsZero() {
		return fail[*entity.IncomeEntry](domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDate,
			"expected date is required",
			domainerror.ErrInvalidPayload,
		))
	}
	switch record.Status {
	case entity.IncomeStatusPending, entity.IncomeStatusOverdue, entity.IncomeStatusPartial:
	default:
		return fail[*entity.IncomeEntry](invalidTransition(string(record.Status), string(entity.IncomeStatusPending)))
	}

	rescheduled := record.Clone()
	day := valueobject.StartOfDay(expectedDate)
	rescheduled.ExpectedDate = &day
	if rescheduled.Status == entity.IncomeStatusOverdue {
		rescheduled.Status = entity.IncomeStatusPending
	}
	rescheduled.ClearHold()
	rescheduled.UpdatedAt = e.clock.Now().UTC()
	if err := entity.ValidateIncomeInvariant(rescheduled); err != nil {
		return fail[*entity.IncomeEntry](err)
	}
	return succeed(rescheduled)
}

// ArchiveIncome retires an entry superseded by a realized record.
func (e *Engine) ArchiveIncome(record *entity.IncomeEntry, supersededBy uuid.UUID) (res TransactionResult[*entity.IncomeEntry]) {
	defer recoverResult(&res)

	if record.Status.IsTerminal() || record.SupersededByID != nil {
		return fail[*entity.IncomeEntry](domainerror.ErrAlreadySettled)
	}

	archived := record.Clone()
	archived.Status = entity.IncomeStatusArchived
	archived.Description = record.ConvertedDescription()
	archived.SupersededByID = &supersededBy
	archived.ClearHold()
	archived.UpdatedAt = e.clock.Now().UTC()
	if err := entity.ValidateIncomeInvariant(archived); err != nil {
		return fail[*entity.IncomeEntry](err)
	}
	// Dropping a cash-basis original out of the sums changes liquid cash.
	if record.Status.IsCashBasis() {
		return succeed(archived, valueobject.EventRecalculateLiquidCash)
	}
	return succeed(archived)
}

// PostExpense creates a PLANNED expense entry from a payload.
func (e *Engine) PostExpense(payload entity.ExpensePayload) (res TransactionResult[*entity.ExpenseEntry]) {
	defer recoverResult(&res)

	now := e.clock.Now().UTC()
	incurred := payload.IncurredDate
	if incurred.IsZero() {
		incurred = now
	}

	expense := &entity.ExpenseEntry{
		ID:              e.newID(),
		Amount:          payload.Amount,
		IncurredDate:    valueobject.StartOfDay(incurred),
		PaidDate:        nil,
		Category:        payload.Category,
		Type:            payload.Type,
		Status:          entity.ExpenseStatusPlanned,
		Vendor:          payload.Vendor,
		IsTaxDeductible: payload.IsTaxDeductible,
		Description:     payload.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := entity.ValidateExpenseInvariant(expense); err != nil {
		return fail[*entity.ExpenseEntry](err)
	}
	return succeed(expense)
}

// RequestExpensePayment moves a PLANNED expense to PENDING_PAYMENT.
func (e *Engine) RequestExpensePayment(record *entity.ExpenseEntry) (res TransactionResult[*entity.ExpenseEntry]) {
	defer recoverResult(&res)

	if record.Status != entity.ExpenseStatusPlanned {
		return fail[*entity.ExpenseEntry](invalidTransition(string(record.Status), string(entity.ExpenseStatusPendingPayment)))
	}

	pending := record.Clone()
	pending.Status = entity.ExpenseStatusPendingPayment
	pending.UpdatedAt = e.clock.Now().UTC()
	if err := entity.ValidateExpenseInvariant(pending); err != nil {
		return fail[*entity.ExpenseEntry](err)
	}
	return succeed(pending)
}

// PayExpense marks an expense as PAID on paidDate.
func (e *Engine) PayExpense(record *entity.ExpenseEntry, paidDate time.Time) (res TransactionResult[*entity.ExpenseEntry]) {
	defer recoverResult(&res)

	if record.Status == entity.ExpenseStatusPaid {
		return fail[*entity.ExpenseEntry](invalidTransition(string(record.Status), string(entity.ExpenseStatusPaid)))
	}

	paid := record.Clone()
	paid.Status = entity.ExpenseStatusPaid
	if !paidDate.IsZero() {
		day := valueobject.StartOfDay(paidDate)
		paid.PaidDate = &day
	}
	paid.UpdatedAt = e.clock.Now().UTC()

	if err := entity.ValidateExpenseInvariant(paid); err != nil {
		return fail[*entity.ExpenseEntry](err)
	}
	return succeed(paid, valueobject.EventRecalculateLiquidCash)
}

func (e *Engine) applyReceipt(
	record *entity.IncomeEntry,
	status entity.IncomeStatus,
	receivedDate time.Time,
	account *entity.CashAccount,
	amount decimal.Decimal,
) *entity.IncomeEntry {
	verified := record.Clone()
	verified.Status = status
	verified.AmountReceived = amount
	if !receivedDate.IsZero() {
		day := valueobject.StartOfDay(receivedDate)
		verified.ReceivedDate = &day
	} else {
		verified.ReceivedDate = nil
	}
	if account != nil {
		id := account.ID
		verified.DepositAccountID = &id
	}
	verified.UpdatedAt = e.clock.Now().UTC()
	return verified
}

func checkVerifiable(record *entity.IncomeEntry, account *entity.CashAccount) error {
	switch record.Status {
	case entity.IncomeStatusPending, entity.IncomeStatusPartial, entity.IncomeStatusOverdue:
	default:
		return invalidTransition(string(record.Status), string(entity.IncomeStatusReceived))
	}
	if account != nil && !account.IsActive {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInactiveAccount,
			fmt.Sprintf("cash account %q is inactive", account.Name),
			domainerror.ErrInactiveAccount,
		)
	}
	return nil
}

func invalidTransition(from, to string) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeInvalidTransition,
		fmt.Sprintf("cannot transition from %s to %s", from, to),
		domainerror.ErrInvalidTransition,
	)
}
