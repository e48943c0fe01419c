package mailer

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailer sends alert emails through Mailgun. A nil *Mailer is valid and
// sends nothing, so callers don't branch on configuration.
type Mailer struct {
	client *mailgun.MailgunImpl
	sender string
}

// New returns a configured Mailer, or nil when domain or key is empty.
func New(domain, apiKey, sender string) *Mailer {
	if domain == "" || apiKey == "" {
		return nil
	}
	return &Mailer{
		client: mailgun.NewMailgun(domain, apiKey),
		sender: sender,
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, text string) error {
	if m == nil {
		return nil
	}
	message := m.client.NewMessage(m.sender, subject, text, to)
	_, _, err := m.client.Send(ctx, message)
	return err
}
