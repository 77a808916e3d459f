package email

import (
	"fmt"
	"log/slog"

	"portfolio-backend/config"
)

// NewTransport builds the transport selected by MAIL_PROVIDER. It returns a
// nil Transport when mail is disabled.
func NewTransport(cfg *config.Config, log *slog.Logger) (Transport, error) {
	switch cfg.MailProvider {
	case config.MailProviderNone:
		return nil, nil
	case config.MailProviderSMTP:
		return NewSMTPTransport(SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}), nil
	case config.MailProviderResend:
		return NewResendTransport(ResendConfig{
			APIKey:    cfg.ResendAPIKey,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}), nil
	case config.MailProviderLog:
		return NewLogTransport(log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}
