// Package mailer delivers outbound confirmation email over SMTP.
package mailer

import (
	"context"
	"fmt"

	appconfig "blogfolio/backend/internal/config"
	"blogfolio/backend/internal/usecase/blogpost"

	"github.com/wneessen/go-mail"
)

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

var _ blogpost.Mailer = (*SMTPMailer)(nil)

// New builds a mailer from application configuration. It returns a Noop
// mailer when no SMTP host is configured, so callers never branch.
func New(cfg appconfig.Config) (blogpost.Mailer, error) {
	if cfg.SMTPHost == "" {
		return Noop{}, nil
	}

	opts := []mail.Option{mail.WithPort(cfg.SMTPPort)}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("building smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.SMTPFrom}, nil
}

// SendPostConfirmation emails the author that their post was published.
func (m *SMTPMailer) SendPostConfirmation(ctx context.Context, to, postTitle string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Your blogpost was published")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi,\n\nyour blogpost %q is now live.\n\nThe Blogfolio team\n", postTitle))

	return m.client.DialAndSendWithContext(ctx, msg)
}

// Noop discards confirmation mail when SMTP is not configured.
type Noop struct{}

func (Noop) SendPostConfirmation(context.Context, string, string) error { return nil }
