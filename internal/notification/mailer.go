// Package notification delivers transactional email for booking events.
package notification

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Message is a plain-text email ready for delivery.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer abstracts the delivery mechanism so the provider can change
// without touching the lifecycle logic. Delivery is best-effort relative
// to booking mutations: callers log failures and move on.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ResendMailer delivers mail through the Resend API.
type ResendMailer struct {
	client  *resend.Client
	from    string
	replyTo string
	logger  *zap.Logger
}

// NewResendMailer creates a ResendMailer. The default reply-to is used
// when a message does not set its own.
func NewResendMailer(apiKey, from, replyTo string, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{
		client:  resend.NewClient(apiKey),
		from:    from,
		replyTo: replyTo,
		logger:  logger,
	}
}

// Send delivers a single message through Resend.
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = m.replyTo
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		ReplyTo: replyTo,
		Subject: msg.Subject,
		Text:    msg.Body,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("provider_id", sent.Id),
	)
	return nil
}
