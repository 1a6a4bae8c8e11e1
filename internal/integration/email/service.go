// Package email queues and delivers ledger notifications.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// Recipient is who receives ledger alerts.
type Recipient struct {
	Email string
	Name  string
}

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	clock      adapter.Clock
	recipient  Recipient
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, clock adapter.Clock, recipient Recipient, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		clock:      clock,
		recipient:  recipient,
		appBaseURL: appBaseURL,
	}
}

// QueueOverdueDigest queues one digest listing every receivable a sweep flagged.
func (s *Service) QueueOverdueDigest(ctx context.Context, input adapter.QueueOverdueDigestInput) error {
	if len(input.Lines) == 0 {
		return nil
	}
	if s.recipient.Email == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeNoAlertRecipient,
			"cannot queue overdue digest",
			domainerror.ErrNoAlertRecipient,
		)
	}

	subject := fmt.Sprintf("%d receivable(s) overdue - Ledgerly", len(input.Lines))

	lines := make([]interface{}, 0, len(input.Lines))
	for _, l := range input.Lines {
		lines = append(lines, map[string]interface{}{
			"client_name":  l.ClientName,
			"description":  l.Description,
			"amount":       l.Amount.StringFixed(2),
			"due_date":     l.DueDate.Format(valueobject.DateLayout),
			"days_overdue": l.DaysOverdue,
		})
	}

	templateData := map[string]interface{}{
		"recipient_name":  s.recipient.Name,
		"swept_at":        input.SweptAt.Format(valueobject.DateLayout),
		"receivables_url": s.appBaseURL + "/receivables/overdue",
		"lines":           lines,
	}

	job := entity.NewEmailJob(
		entity.TemplateOverdueDigest,
		s.recipient.Email,
		s.recipient.Name,
		subject,
		templateData,
		s.clock.Now().UTC(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue overdue digest",
			err,
		)
	}

	slog.Info("Overdue digest queued", "job_id", job.ID, "receivables", len(input.Lines))
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
