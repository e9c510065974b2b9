// internal/provider/smtp.go
package provider

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/unclebandit/mailpulse-backend/internal/config"
)

// SMTPSender submits email over authenticated SMTP.
type SMTPSender struct {
	client *mail.Client
	from   string
}

func NewSMTPSender(cfg *config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP_SERVER not configured")
	}

	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPSender{client: client, from: from}, nil
}

func (s *SMTPSender) Send(ctx context.Context, recipientEmail, subject, bodyHTML string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("failed to set from: %w", err)
	}
	if err := msg.To(recipientEmail); err != nil {
		return fmt.Errorf("failed to set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, bodyHTML)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
