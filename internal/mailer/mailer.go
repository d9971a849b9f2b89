// Package mailer delivers transactional email for the application.
package mailer

import (
	"context"
	"log/slog"

	"netlife/internal/config"
	"netlife/internal/middleware"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a single message. Delivery failure is fatal to the flow
// that requested it; there is no retry queue.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPSender sends mail through a configured SMTP relay.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// NewSMTPSender builds a sender from SMTP settings in cfg.
func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUser),
		gomail.WithPassword(cfg.SMTPPassword),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, err
	}
	return &SMTPSender{client: client, from: cfg.MailFrom}, nil
}

// Send delivers one HTML message.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	return s.client.DialAndSendWithContext(ctx, msg)
}

// LogSender writes messages to the application log instead of delivering
// them. Used in development when no SMTP relay is configured.
type LogSender struct{}

// Send logs the message.
func (LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	middleware.Logger.InfoContext(ctx, "outgoing mail (log sender)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", htmlBody),
	)
	return nil
}

// FromConfig picks the SMTP sender when a relay is configured, otherwise the
// log sender.
func FromConfig(cfg *config.Config) (Sender, error) {
	if cfg.SMTPHost == "" {
		return LogSender{}, nil
	}
	return NewSMTPSender(cfg)
}
