package email

import (
	"context"
	"fmt"
	"strings"
)

// Message is a fully-formed email ready for a Transport.
// The sender is fixed per transport.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string // Plain text alternative; derived from HTML when empty
}

// Transport delivers messages through a mail provider.
type Transport interface {
	// Send delivers msg or fails with a *TransportError.
	Send(ctx context.Context, msg *Message) error
	// Name identifies the provider in logs and health output.
	Name() string
}

// TransportError reports a provider-side rejection, an auth failure or a
// network error while sending.
type TransportError struct {
	Provider string
	Op       string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Recipient formats a name and email into "Name <email>" form.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

func (m *Message) validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("no recipients")
	}
	for _, to := range m.To {
		if !strings.Contains(to, "@") {
			return fmt.Errorf("invalid recipient %q", to)
		}
	}
	if m.Subject == "" {
		return fmt.Errorf("empty subject")
	}
	return nil
}

// textBody returns the explicit text part or one derived from the HTML.
func (m *Message) textBody() string {
	if m.Text != "" {
		return m.Text
	}
	return PlainText(m.HTML)
}
