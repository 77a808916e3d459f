package email

import (
	"context"

	"gopkg.in/gomail.v2"
)

// smtpDialer is the part of *gomail.Dialer used by SMTPTransport.
type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPConfig holds the credentials of an SMTP account (Gmail by default).
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPTransport sends mail through an authenticated SMTP relay.
type SMTPTransport struct {
	dialer   smtpDialer
	from     string
	fromName string
}

// NewSMTPTransport builds the dialer once; it is read-only afterwards and
// safe to share between requests.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &SMTPTransport{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     from,
		fromName: cfg.FromName,
	}
}

func (t *SMTPTransport) Name() string {
	return "smtp"
}

// Send implements Transport. gomail has no context support, so a cancelled
// ctx abandons the wait while the dial finishes in the background.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return &TransportError{Provider: t.Name(), Op: "build", Err: err}
	}
	m := t.build(msg)

	done := make(chan error, 1)
	go func() {
		done <- t.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return &TransportError{Provider: t.Name(), Op: "send", Err: err}
		}
		return nil
	case <-ctx.Done():
		return &TransportError{Provider: t.Name(), Op: "send", Err: ctx.Err()}
	}
}

func (t *SMTPTransport) build(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", t.from, t.fromName)
	m.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", sanitizeHeader(msg.Subject))

	m.SetBody("text/plain", msg.textBody())
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m
}
