package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
)

// LogSender writes emails to the log instead of sending them. It is used when
// no Resend API key is configured.
type LogSender struct{}

// Send implements adapter.EmailSender.
func (LogSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	id := "log-" + uuid.NewString()
	slog.Info("Email not sent, no provider configured",
		"id", id,
		"to", input.To,
		"subject", input.Subject,
	)
	return &adapter.SendEmailResult{ResendID: id}, nil
}

var _ adapter.EmailSender = LogSender{}
