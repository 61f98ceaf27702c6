package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/brainswarm/booking-api/internal/config"
)

// EmailMessage is a single outbound notification.
type EmailMessage struct {
	ToName    string
	ToAddress string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type sendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewSendGridMailer returns nil when no API key or sender is configured.
func NewSendGridMailer(cfg config.NotificationConfig) Mailer {
	if cfg.SendGridAPIKey == "" || cfg.EmailFrom == "" {
		return nil
	}
	return &sendGridMailer{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName: cfg.EmailFromName,
		fromAddr: cfg.EmailFrom,
	}
}

func (m *sendGridMailer) Send(ctx context.Context, msg EmailMessage) error {
	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail(msg.ToName, msg.ToAddress)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
