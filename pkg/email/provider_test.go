package email

import (
	"log/slog"
	"testing"

	"portfolio-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantName string
		wantErr  bool
	}{
		{name: "Should build the SMTP transport", provider: config.MailProviderSMTP, wantName: "smtp"},
		{name: "Should build the Resend transport", provider: config.MailProviderResend, wantName: "resend"},
		{name: "Should build the log transport", provider: config.MailProviderLog, wantName: "log"},
		{name: "Should return no transport when mail is disabled", provider: config.MailProviderNone},
		{name: "Should reject an unknown provider", provider: "sendgrid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				MailProvider:  tt.provider,
				MailFromEmail: "hello@example.com",
				MailFromName:  "Deep",
				SMTPHost:      "smtp.gmail.com",
				SMTPPort:      587,
				SMTPUsername:  "owner@gmail.com",
				SMTPPassword:  "app-password",
				ResendAPIKey:  "re_test",
			}

			transport, err := NewTransport(cfg, slog.Default())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.provider)
				return
			}
			require.NoError(t, err)
			if tt.wantName == "" {
				assert.Nil(t, transport)
				return
			}
			require.NotNil(t, transport)
			assert.Equal(t, tt.wantName, transport.Name())
		})
	}

	t.Run("Should carry the configured sender into the transports", func(t *testing.T) {
		cfg := &config.Config{
			MailProvider:  config.MailProviderSMTP,
			MailFromEmail: "hello@example.com",
			MailFromName:  "Deep",
		}
		transport, err := NewTransport(cfg, slog.Default())
		require.NoError(t, err)
		smtp := transport.(*SMTPTransport)
		assert.Equal(t, "hello@example.com", smtp.from)
		assert.Equal(t, "Deep", smtp.fromName)

		cfg.MailProvider = config.MailProviderResend
		transport, err = NewTransport(cfg, slog.Default())
		require.NoError(t, err)
		rs := transport.(*ResendTransport)
		assert.Equal(t, "hello@example.com", rs.from)
		assert.Equal(t, "Deep", rs.fromName)
	})
}
