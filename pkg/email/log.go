package email

import (
	"context"
	"log/slog"
)

// LogTransport writes messages to a logger instead of delivering them.
// Meant for local development.
type LogTransport struct {
	log *slog.Logger
}

func NewLogTransport(log *slog.Logger) *LogTransport {
	return &LogTransport{log: log}
}

func (t *LogTransport) Name() string {
	return "log"
}

func (t *LogTransport) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return &TransportError{Provider: t.Name(), Op: "build", Err: err}
	}
	t.log.InfoContext(ctx, "email not delivered (log transport)",
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"text", msg.textBody(),
	)
	return nil
}
