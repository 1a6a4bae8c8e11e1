package email

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/email/templates"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockQueue) GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EmailJob), args.Error(1)
}

func (m *MockQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailJob), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.SendEmailResult), args.Error(1)
}

func digestInput() adapter.QueueOverdueDigestInput {
	return adapter.QueueOverdueDigestInput{
		SweptAt: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Lines: []adapter.OverdueDigestLine{
			{
				ClientName:  "Acme",
				Description: "Acme: Website redesign",
				Amount:      decimal.NewFromInt(10000),
				DueDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				DaysOverdue: 19,
			},
		},
	}
}

func queuedDigest(t *testing.T) *entity.EmailJob {
	t.Helper()
	queue := new(MockQueue)
	var job *entity.EmailJob
	queue.On("Create", mock.Anything, mock.AnythingOfType("*entity.EmailJob")).
		Run(func(args mock.Arguments) { job = args.Get(1).(*entity.EmailJob) }).
		Return(nil).Once()

	svc := NewService(queue, fixedClock{testNow}, Recipient{Email: "finance@ledgerly.test", Name: "Finance"}, "https://app.ledgerly.test")
	require.NoError(t, svc.QueueOverdueDigest(context.Background(), digestInput()))
	require.NotNil(t, job)
	return job
}

func TestService_QueueOverdueDigest(t *testing.T) {
	job := queuedDigest(t)

	assert.Equal(t, entity.TemplateOverdueDigest, job.TemplateType)
	assert.Equal(t, "finance@ledgerly.test", job.RecipientEmail)
	assert.Equal(t, "1 receivable(s) overdue - Ledgerly", job.Subject)
	assert.Equal(t, entity.EmailStatusPending, job.Status)
	assert.True(t, job.ScheduledAt.Equal(testNow))
	assert.Equal(t, "2026-03-20", job.TemplateData["swept_at"])
}

func TestService_QueueOverdueDigest_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty digest is a no-op", func(t *testing.T) {
		queue := new(MockQueue)
		svc := NewService(queue, fixedClock{testNow}, Recipient{Email: "finance@ledgerly.test"}, "")
		require.NoError(t, svc.QueueOverdueDigest(ctx, adapter.QueueOverdueDigestInput{}))
		queue.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing recipient", func(t *testing.T) {
		svc := NewService(new(MockQueue), fixedClock{testNow}, Recipient{}, "")
		err := svc.QueueOverdueDigest(ctx, digestInput())
		assert.ErrorIs(t, err, domainerror.ErrNoAlertRecipient)
	})

	t.Run("queue failure is wrapped", func(t *testing.T) {
		queue := new(MockQueue)
		queue.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
		svc := NewService(queue, fixedClock{testNow}, Recipient{Email: "finance@ledgerly.test"}, "")

		err := svc.QueueOverdueDigest(ctx, digestInput())
		var emailErr *domainerror.EmailError
		require.ErrorAs(t, err, &emailErr)
		assert.Equal(t, domainerror.ErrCodeEmailQueueFailed, emailErr.Code)
	})
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	t.Run("renders and sends a queued digest", func(t *testing.T) {
		job := queuedDigest(t)

		// Simulate the JSON round trip through the queue table.
		raw, err := json.Marshal(job.TemplateData)
		require.NoError(t, err)
		job.TemplateData = nil
		require.NoError(t, json.Unmarshal(raw, &job.TemplateData))

		queue := new(MockQueue)
		sender := new(MockSender)
		queue.On("GetPendingJobs", ctx, testNow, 10).Return([]*entity.EmailJob{job}, nil).Once()
		queue.On("Update", ctx, job).Return(nil).Twice()
		sender.On("Send", ctx, mock.MatchedBy(func(in adapter.SendEmailInput) bool {
			return in.To == "finance@ledgerly.test" &&
				strings.Contains(in.HTML, "Acme: Website redesign") &&
				strings.Contains(in.HTML, "10000.00") &&
				strings.Contains(in.Text, "19 day(s) overdue")
		})).Return(&adapter.SendEmailResult{ResendID: "re_1"}, nil).Once()

		w := NewWorker(queue, sender, renderer, fixedClock{testNow}, DefaultWorkerConfig())
		w.ProcessNow(ctx)

		assert.Equal(t, entity.EmailStatusSent, job.Status)
		assert.Equal(t, "re_1", job.ResendID)
		queue.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("temporary failure schedules a retry", func(t *testing.T) {
		job := queuedDigest(t)

		queue := new(MockQueue)
		sender := new(MockSender)
		queue.On("GetPendingJobs", ctx, testNow, 10).Return([]*entity.EmailJob{job}, nil).Once()
		queue.On("Update", ctx, job).Return(nil)
		sender.On("Send", ctx, mock.Anything).Return(nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", errors.New("429"),
		)).Once()

		w := NewWorker(queue, sender, renderer, fixedClock{testNow}, DefaultWorkerConfig())
		w.ProcessNow(ctx)

		assert.Equal(t, entity.EmailStatusPending, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.True(t, job.ScheduledAt.Equal(testNow.Add(time.Minute)))
	})

	t.Run("unknown template fails permanently", func(t *testing.T) {
		job := entity.NewEmailJob("weekly_report", "finance@ledgerly.test", "", "report", nil, testNow)

		queue := new(MockQueue)
		sender := new(MockSender)
		queue.On("GetPendingJobs", ctx, testNow, 10).Return([]*entity.EmailJob{job}, nil).Once()
		queue.On("Update", ctx, job).Return(nil)

		w := NewWorker(queue, sender, renderer, fixedClock{testNow}, DefaultWorkerConfig())
		w.ProcessNow(ctx)

		assert.Equal(t, entity.EmailStatusFailed, job.Status)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: errors.New("422 validation_error: invalid from address"), want: true},
		{err: errors.New("401 Unauthorized"), want: true},
		{err: errors.New("429 rate limit exceeded"), want: false},
		{err: errors.New("502 bad gateway"), want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isPermanentError(tt.err), "%v", tt.err)
	}
}
