package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Subject of the acknowledgement sent back to the submitter.
const AcknowledgementSubject = "We received your message!"

// NotificationData holds the data for the owner notification email
type NotificationData struct {
	SenderName  string
	SenderEmail string
	Message     string
	SentAt      time.Time
}

// AcknowledgementData holds the data for the submitter acknowledgement email
type AcknowledgementData struct {
	SenderName string
	Message    string
	OwnerName  string
}

var templateFuncs = template.FuncMap{
	// nl2br escapes s and keeps its line breaks.
	"nl2br": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	},
	"timestamp": func(t time.Time) string {
		return t.Format("Jan 2, 2006, 3:04:05 PM MST")
	},
}

const layoutHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .message-box { background: #f9f9f9; padding: 15px; border-left: 4px solid #3b82f6; }
        .footer { color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">`

const layoutFoot = `
    </div>
</body>
</html>`

// notificationTemplate is the HTML template for the owner notification
const notificationTemplate = layoutHead + `
        <h2>New Contact Form Submission</h2>
        <p><strong>Name:</strong> {{.SenderName}}</p>
        <p><strong>Email:</strong> {{.SenderEmail}}</p>
        <p><strong>Message:</strong></p>
        <div class="message-box"><p>{{nl2br .Message}}</p></div>
        <hr>
        <p class="footer"><em>Sent on {{timestamp .SentAt}}</em></p>` + layoutFoot

// acknowledgementTemplate is the HTML template for the submitter acknowledgement
const acknowledgementTemplate = layoutHead + `
        <h2>Thank you for reaching out!</h2>
        <p>Hi {{.SenderName}},</p>
        <p>I've received your message and will get back to you as soon as possible.</p>
        <hr>
        <p><strong>Your Message:</strong></p>
        <div class="message-box"><p>{{nl2br .Message}}</p></div>
        <hr>
        <p>Best regards,<br>{{.OwnerName}}</p>` + layoutFoot

var (
	notificationTmpl    = template.Must(template.New("notification").Funcs(templateFuncs).Parse(notificationTemplate))
	acknowledgementTmpl = template.Must(template.New("acknowledgement").Funcs(templateFuncs).Parse(acknowledgementTemplate))
)

// NotificationSubject is the subject line of the owner notification.
func NotificationSubject(senderName string) string {
	return fmt.Sprintf("New Contact Form Submission from %s", sanitizeHeader(senderName))
}

// RenderNotification renders the owner notification body.
func RenderNotification(data NotificationData) (string, error) {
	var body bytes.Buffer
	if err := notificationTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute notification template: %w", err)
	}
	return body.String(), nil
}

// RenderAcknowledgement renders the submitter acknowledgement body.
func RenderAcknowledgement(data AcknowledgementData) (string, error) {
	var body bytes.Buffer
	if err := acknowledgementTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute acknowledgement template: %w", err)
	}
	return body.String(), nil
}

// sanitizeHeader flattens line breaks so user input cannot inject headers.
func sanitizeHeader(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
