package email

import (
	"context"

	"github.com/resend/resend-go/v3"
)

// ResendConfig holds Resend email provider configuration.
type ResendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// ResendTransport sends mail through the Resend HTTP API.
type ResendTransport struct {
	client   *resend.Client
	from     string
	fromName string
}

func NewResendTransport(cfg ResendConfig) *ResendTransport {
	return &ResendTransport{
		client:   resend.NewClient(cfg.APIKey),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}
}

func (t *ResendTransport) Name() string {
	return "resend"
}

// Send implements Transport.
func (t *ResendTransport) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return &TransportError{Provider: t.Name(), Op: "build", Err: err}
	}

	req := &resend.SendEmailRequest{
		From:    Recipient(t.fromName, t.from),
		To:      msg.To,
		Subject: sanitizeHeader(msg.Subject),
		Html:    msg.HTML,
		Text:    msg.textBody(),
		ReplyTo: msg.ReplyTo,
	}

	if _, err := t.client.Emails.SendWithContext(ctx, req); err != nil {
		return &TransportError{Provider: t.Name(), Op: "send", Err: err}
	}
	return nil
}
