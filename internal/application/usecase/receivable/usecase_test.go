package receivable

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/cashflow"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
	"github.com/ledgerly/backend/internal/integration/persistence/memory"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event any) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) QueueOverdueDigest(ctx context.Context, input adapter.QueueOverdueDigestInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

type harness struct {
	clock     *testClock
	engine    *ledger.Engine
	income    *memory.IncomeStore
	expenses  *memory.ExpenseStore
	accounts  *memory.CashAccountStore
	publisher *MockPublisher

	record  *ledger.RecordIncomeUseCase
	sweep   *SweepOverdueUseCase
	hold    *HoldUseCase
	snooze  *SnoozeUseCase
	settle  *SettleUseCase
	resolve *ResolveHoldUseCase
}

func newHarness(emailService adapter.EmailService) *harness {
	h := &harness{
		clock:     &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		income:    memory.NewIncomeStore(),
		expenses:  memory.NewExpenseStore(),
		accounts:  memory.NewCashAccountStore(),
		publisher: new(MockPublisher),
	}
	h.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	h.engine = ledger.NewEngine(h.clock)
	h.record = ledger.NewRecordIncomeUseCase(h.engine, h.income)
	h.sweep = NewSweepOverdueUseCase(h.engine, h.income, h.publisher, emailService, h.clock, DefaultGracePeriodDays)
	h.hold = NewHoldUseCase(h.income, h.clock)
	h.snooze = NewSnoozeUseCase(h.income, h.clock)
	h.settle = NewSettleUseCase(h.engine, h.income, h.accounts, h.publisher, h.clock)
	h.resolve = NewResolveHoldUseCase(h.engine, h.income, h.settle)
	return h
}

func (h *harness) ingest(t *testing.T, payload entity.IncomePayload) *entity.IncomeEntry {
	t.Helper()
	if payload.AmountExpected.IsZero() {
		payload.AmountExpected = decimal.NewFromInt(10000)
	}
	if payload.ClientName == "" {
		payload.ClientName = "Acme"
	}
	out, err := h.record.Execute(context.Background(), ledger.RecordIncomeInput{Payload: payload})
	require.NoError(t, err)
	return out.Income
}

func (h *harness) liquidCash(t *testing.T) decimal.Decimal {
	t.Helper()
	all, err := h.income.FindByFilter(context.Background(), adapter.IncomeFilter{})
	require.NoError(t, err)
	return cashflow.CalculateLiquidCash(decimal.Zero, all, nil)
}

func (h *harness) reload(t *testing.T, id uuid.UUID) *entity.IncomeEntry {
	t.Helper()
	e, err := h.income.FindByID(context.Background(), id)
	require.NoError(t, err)
	return e
}

func TestReceivableLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)

	entry := h.ingest(t, entity.IncomePayload{Description: "Acme: Website redesign"})
	assert.Equal(t, entity.IncomeStatusPending, entry.Status)
	cashBefore := h.liquidCash(t)

	h.clock.Advance(8)
	swept, err := h.sweep.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, swept.Flagged, 1)
	assert.Equal(t, entity.IncomeStatusOverdue, h.reload(t, entry.ID).Status)

	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: entry.ID, Reason: "awaiting PO"})
	require.NoError(t, err)

	h.clock.Advance(30)
	swept, err = h.sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, swept.Flagged)
	held := h.reload(t, entry.ID)
	assert.True(t, held.IsOnHold)
	assert.Equal(t, entity.HoldWithClient, held.HoldWith)

	out, err := h.resolve.Execute(ctx, ResolveHoldInput{IncomeID: entry.ID, Action: valueobject.ResolveReceived})
	require.NoError(t, err)
	require.NotNil(t, out.Settlement.Realized)

	original := h.reload(t, entry.ID)
	assert.Equal(t, entity.IncomeStatusArchived, original.Status)
	assert.Equal(t, "Acme: Website redesign (Converted)", original.Description)
	assert.False(t, original.IsOnHold)
	require.NotNil(t, original.SupersededByID)

	realized := h.reload(t, *original.SupersededByID)
	assert.Equal(t, entity.IncomeStatusReceived, realized.Status)
	assert.Equal(t, valueobject.StartOfDay(h.clock.Now()), realized.Date)
	assert.True(t, realized.AmountReceived.Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, realized.SupersedesID)
	assert.Equal(t, entry.ID, *realized.SupersedesID)

	received, err := h.income.FindByFilter(ctx, adapter.IncomeFilter{
		Statuses: []entity.IncomeStatus{entity.IncomeStatusReceived},
	})
	require.NoError(t, err)
	assert.Len(t, received, 1)
	assert.True(t, h.liquidCash(t).Sub(cashBefore).Equal(decimal.NewFromInt(10000)))
}

func TestSweepOverdueUseCase_QueuesDigest(t *testing.T) {
	ctx := context.Background()
	emails := new(MockEmailService)
	h := newHarness(emails)

	h.ingest(t, entity.IncomePayload{Description: "Late"})
	h.ingest(t, entity.IncomePayload{Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)})

	emails.On("QueueOverdueDigest", mock.Anything, mock.MatchedBy(func(in adapter.QueueOverdueDigestInput) bool {
		return len(in.Lines) == 1 && in.Lines[0].DaysOverdue == 8 && in.Lines[0].Description == "Late"
	})).Return(nil).Once()

	h.clock.Advance(8)
	out, err := h.sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Scanned)
	assert.Len(t, out.Flagged, 1)

	emails.AssertExpectations(t)
}

func TestSettleUseCase_RetainerLinkedSettlesInPlace(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	retainer := uuid.New()
	entry := h.ingest(t, entity.IncomePayload{
		Category:           entity.IncomeCategoryRetainer,
		RetainerInstanceID: &retainer,
	})
	h.clock.Advance(20)

	out, err := h.settle.Execute(ctx, SettleInput{IncomeID: entry.ID})
	require.NoError(t, err)
	assert.True(t, out.InPlace)
	assert.Nil(t, out.Realized)

	settled := h.reload(t, entry.ID)
	assert.Equal(t, entity.IncomeStatusReceived, settled.Status)
	require.NotNil(t, settled.RetainerInstanceID)
	assert.Equal(t, retainer, *settled.RetainerInstanceID)
	assert.Equal(t, valueobject.StartOfDay(h.clock.Now()), *settled.ReceivedDate)

	all, err := h.income.FindByFilter(ctx, adapter.IncomeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "no realized duplicate for retainer entries")
}

func TestSettleUseCase_RejectsSecondSettlement(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})

	_, err := h.settle.Execute(ctx, SettleInput{IncomeID: entry.ID})
	require.NoError(t, err)

	_, err = h.settle.Execute(ctx, SettleInput{IncomeID: entry.ID})
	assert.True(t, errors.Is(err, domainerror.ErrAlreadySettled))
}

func TestSettleUseCase_ConcurrentSettlementRealizesOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.settle.Execute(ctx, SettleInput{IncomeID: entry.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domainerror.ErrAlreadySettled), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)

	received, err := h.income.FindByFilter(ctx, adapter.IncomeFilter{
		Statuses: []entity.IncomeStatus{entity.IncomeStatusReceived},
	})
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestResolveHoldUseCase_NewDate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})
	h.clock.Advance(10)
	_, err := h.sweep.Execute(ctx)
	require.NoError(t, err)
	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: entry.ID, Reason: "disputed", With: entity.HoldWithProject})
	require.NoError(t, err)

	newDate := h.clock.Now().AddDate(0, 0, 14)
	out, err := h.resolve.Execute(ctx, ResolveHoldInput{
		IncomeID: entry.ID,
		Action:   valueobject.ResolveNewDate,
		NewDate:  newDate,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.IncomeStatusPending, out.Income.Status)
	assert.False(t, out.Income.IsOnHold)
	assert.Empty(t, out.Income.HoldReason)
	assert.Equal(t, valueobject.StartOfDay(newDate), *out.Income.ExpectedDate)

	_, err = h.resolve.Execute(ctx, ResolveHoldInput{IncomeID: entry.ID, Action: valueobject.ResolveNewDate, NewDate: newDate})
	assert.True(t, errors.Is(err, domainerror.ErrNotOnHold))
}

func TestResolveHoldUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})

	_, err := h.resolve.Execute(ctx, ResolveHoldInput{IncomeID: entry.ID, Action: "paid"})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidResolveAction))

	_, err = h.resolve.Execute(ctx, ResolveHoldInput{IncomeID: entry.ID, Action: valueobject.ResolveNewDate})
	assert.True(t, errors.Is(err, domainerror.ErrMissingDate))
}

func TestHoldUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})

	_, err := h.hold.Execute(ctx, HoldInput{IncomeID: entry.ID, Reason: "  "})
	assert.True(t, errors.Is(err, domainerror.ErrMissingHoldReason))

	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: entry.ID, Reason: "x", With: "vendor"})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidHoldCounterpart))

	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: entry.ID, Reason: "x"})
	require.NoError(t, err)
	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: entry.ID, Reason: "x"})
	assert.True(t, errors.Is(err, domainerror.ErrAlreadyOnHold))

	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: uuid.New(), Reason: "x"})
	assert.True(t, errors.Is(err, domainerror.ErrIncomeNotFound))
}

func TestSnoozeUseCase(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})
	h.clock.Advance(9)
	_, err := h.sweep.Execute(ctx)
	require.NoError(t, err)

	snoozed, err := h.snooze.Execute(ctx, SnoozeInput{IncomeID: entry.ID, ExpectedDate: h.clock.Now().AddDate(0, 0, 5)})
	require.NoError(t, err)
	assert.Equal(t, entity.IncomeStatusOverdue, snoozed.Status, "snooze never changes status")

	overdue, err := NewListOverdueUseCase(h.income, h.clock, DefaultGracePeriodDays).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	_, err = h.snooze.Execute(ctx, SnoozeInput{IncomeID: entry.ID, ExpectedDate: h.clock.Now().AddDate(0, 0, -1)})
	assert.True(t, errors.Is(err, domainerror.ErrPastDate))
}

func TestListUseCases(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	older := h.ingest(t, entity.IncomePayload{Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)})
	newer := h.ingest(t, entity.IncomePayload{Date: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)})
	h.ingest(t, entity.IncomePayload{})

	overdue, err := NewListOverdueUseCase(h.income, h.clock, DefaultGracePeriodDays).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, older.ID, overdue[0].Income.ID)
	assert.Equal(t, 29, overdue[0].DaysOverdue)

	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: older.ID, Reason: "first"})
	require.NoError(t, err)
	h.clock.Advance(1)
	_, err = h.hold.Execute(ctx, HoldInput{IncomeID: newer.ID, Reason: "second"})
	require.NoError(t, err)

	held, err := NewListOnHoldUseCase(h.income).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, held, 2)
	assert.Equal(t, newer.ID, held[0].ID)
}

func TestBackfillClientNamesUseCase(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	legacy := &entity.IncomeEntry{
		ID:             uuid.New(),
		AmountExpected: decimal.NewFromInt(500),
		Status:         entity.IncomeStatusPending,
		Category:       entity.IncomeCategoryOneOff,
		Description:    "Initech: TPS audit",
		Date:           h.clock.Now(),
	}
	require.NoError(t, h.income.Create(ctx, legacy))
	h.ingest(t, entity.IncomePayload{Description: "Other: thing"})

	out, err := NewBackfillClientNamesUseCase(h.income, h.clock).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Scanned)
	assert.Equal(t, 1, out.Updated)
	assert.Equal(t, "Initech", h.reload(t, legacy.ID).ClientName)
}

func TestSweepOverdueUseCase_PartialReceiptInvalidatesLiquidCash(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)

	entry := h.ingest(t, entity.IncomePayload{})
	partial := h.engine.VerifyPartialIncome(entry, h.clock.Now(), nil, decimal.NewFromInt(4000))
	require.True(t, partial.Success, partial.Error)
	require.NoError(t, h.income.Update(ctx, partial.Data))
	assert.True(t, h.liquidCash(t).Equal(decimal.NewFromInt(4000)))

	h.clock.Advance(8)
	out, err := h.sweep.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, out.Flagged, 1)

	assert.True(t, h.liquidCash(t).IsZero())
	h.publisher.AssertCalled(t, "Publish", mock.Anything, valueobject.LedgerEventsTopic,
		mock.MatchedBy(func(msg valueobject.LedgerEventMessage) bool {
			return msg.Event == valueobject.EventRecalculateLiquidCash && msg.RecordID == entry.ID
		}))
}

// settlingIncomeRepo runs a hook before the first Update so a settlement can
// land between the sweep's read and its write.
type settlingIncomeRepo struct {
	*memory.IncomeStore
	beforeUpdate func()
}

func (r *settlingIncomeRepo) Update(ctx context.Context, income *entity.IncomeEntry) error {
	if hook := r.beforeUpdate; hook != nil {
		r.beforeUpdate = nil
		hook()
	}
	return r.IncomeStore.Update(ctx, income)
}

func TestSweepOverdueUseCase_SettlementDuringSweepWins(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})
	h.clock.Advance(8)

	repo := &settlingIncomeRepo{IncomeStore: h.income}
	repo.beforeUpdate = func() {
		_, err := h.settle.Execute(ctx, SettleInput{IncomeID: entry.ID})
		require.NoError(t, err)
	}
	sweep := NewSweepOverdueUseCase(h.engine, repo, h.publisher, nil, h.clock, DefaultGracePeriodDays)

	out, err := sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Scanned)
	assert.Empty(t, out.Flagged)

	original := h.reload(t, entry.ID)
	assert.Equal(t, entity.IncomeStatusArchived, original.Status)
	assert.NotNil(t, original.SupersededByID)
}

func TestSettledReceivable_StaleUpdateIsRejected(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil)
	entry := h.ingest(t, entity.IncomePayload{})
	_, err := h.settle.Execute(ctx, SettleInput{IncomeID: entry.ID})
	require.NoError(t, err)

	stale := entry.Clone()
	stale.Status = entity.IncomeStatusOverdue
	err = h.income.Update(ctx, stale)
	assert.True(t, errors.Is(err, domainerror.ErrAlreadySettled), "got %v", err)

	archived := h.reload(t, entry.ID)
	archived.ClientName = "Acme Corp"
	require.NoError(t, h.income.Update(ctx, archived))
}
