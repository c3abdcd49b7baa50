package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/projectsclub/collab-api/internal/config"
)

// ErrNotConfigured is returned by Send when SMTP credentials are absent.
var ErrNotConfigured = errors.New("mailer: SMTP is not configured")

// Message is one outbound email with an HTML body and a plain-text alternative.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail over SMTP with STARTTLS.
type SMTPMailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// New returns an SMTPMailer, or a Disabled mailer when cfg lacks credentials.
func New(cfg config.MailConfig) Mailer {
	if !cfg.Enabled() {
		return Disabled{}
	}
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.cfg.FromEmail, m.cfg.FromName)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		gm.AddAlternative("text/html", msg.HTMLBody)
	}

	// gomail has no per-call deadline; stop waiting when ctx ends and let the
	// dial finish on its own.
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(gm) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mailer: send to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mailer: send to %s: %w", msg.To, ctx.Err())
	}
}

// Disabled refuses every message with ErrNotConfigured.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error {
	return ErrNotConfigured
}
