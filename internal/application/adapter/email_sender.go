package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// OverdueDigestLine is one receivable in an overdue digest.
type OverdueDigestLine struct {
	ClientName  string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	DaysOverdue int
}

// QueueOverdueDigestInput represents the input for queueing an overdue digest.
type QueueOverdueDigestInput struct {
	SweptAt time.Time
	Lines   []OverdueDigestLine
}

// EmailService defines the interface for queueing notifications.
type EmailService interface {
	// QueueOverdueDigest queues a digest of receivables newly flagged overdue.
	QueueOverdueDigest(ctx context.Context, input QueueOverdueDigestInput) error
}
