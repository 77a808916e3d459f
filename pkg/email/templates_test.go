package email

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotification(t *testing.T) {
	sentAt := time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)
	body, err := RenderNotification(NotificationData{
		SenderName:  "Jane <b>Doe</b>",
		SenderEmail: "jane@example.com",
		Message:     "Line one\nLine <script>two</script>",
		SentAt:      sentAt,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "New Contact Form Submission")
	assert.Contains(t, body, "Jane &lt;b&gt;Doe&lt;/b&gt;")
	assert.Contains(t, body, "jane@example.com")
	assert.Contains(t, body, "Line one<br>Line &lt;script&gt;two&lt;/script&gt;")
	assert.Contains(t, body, "Sent on Oct 15, 2026, 2:30:00 PM UTC")
	assert.NotContains(t, body, "<script>")
}

func TestRenderAcknowledgement(t *testing.T) {
	body, err := RenderAcknowledgement(AcknowledgementData{
		SenderName: "Jane Doe",
		Message:    "Hello, I would like to discuss a project.",
		OwnerName:  "Deep",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Thank you for reaching out!")
	assert.Contains(t, body, "Hi Jane Doe,")
	assert.Contains(t, body, "Hello, I would like to discuss a project.")
	assert.Contains(t, body, "Best regards,<br>Deep")
}

func TestNotificationSubject(t *testing.T) {
	assert.Equal(t, "New Contact Form Submission from Jane Doe", NotificationSubject("Jane\r\n Doe"))
}

func TestPlainText(t *testing.T) {
	body, err := RenderAcknowledgement(AcknowledgementData{SenderName: "Tom & Jerry", Message: "a\nb", OwnerName: "Deep"})
	require.NoError(t, err)

	text := PlainText(body)
	assert.Contains(t, text, "Hi Tom & Jerry,")
	assert.Contains(t, text, "a\nb")
	assert.Contains(t, text, "Best regards,\nDeep")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "font-family")
}

func TestLogTransport(t *testing.T) {
	tr := NewLogTransport(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, tr.Send(context.Background(), &Message{To: []string{"jane@example.com"}, Subject: "s", HTML: "<p>x</p>"}))
	assert.Error(t, tr.Send(context.Background(), &Message{To: []string{"nobody"}, Subject: "s"}))
}
