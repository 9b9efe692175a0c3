// Package mailer sends the receipt email over SMTP with the rendered PDF
// attached. Delivery failures are terminal for the request; nothing here
// retries.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"orderdesk/order"
)

// DeliveryError reports a message the transport rejected: authentication
// failure, invalid recipient, or a transient network failure.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering receipt email: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Config holds the SMTP settings and the fixed recipients and template
// parameters.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Operators []string
	Company   string
}

// Mailer delivers receipt emails.
type Mailer struct {
	cfg    Config
	client *mail.Client
}

// New creates a Mailer. The connection is dialed per send, not here, so a
// misbehaving SMTP host cannot block startup.
func New(cfg Config) (*Mailer, error) {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring smtp client: %w", err)
	}
	return &Mailer{cfg: cfg, client: client}, nil
}

// Send mails the receipt at attachment to the customer and the operator
// addresses. The caller owns the attachment file and deletes it afterwards.
func (m *Mailer) Send(ctx context.Context, o order.Order, attachment string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return &DeliveryError{Err: err}
	}
	recipients := append([]string{o.Customer.Email}, m.cfg.Operators...)
	if err := msg.To(recipients...); err != nil {
		return &DeliveryError{Err: err}
	}
	msg.Subject(fmt.Sprintf("Invoice for Order #%s", o.Number))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nPlease find attached your invoice.\n\nThanks,\n%s",
		o.Customer.Name, m.cfg.Company,
	))
	msg.AttachFile(attachment)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return &DeliveryError{Err: err}
	}
	return nil
}
