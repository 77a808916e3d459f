package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"portfolio-backend/pkg/validation"
)

// maxResponseBytes caps how much of the relay response is read.
const maxResponseBytes = 64 << 10

// relayResponse mirrors the relay's JSON envelope.
type relayResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// result is the outcome of one POST, already mapped to form messages.
type result struct {
	ok      bool
	message string
	fields  map[string]string
}

// post issues exactly one request. Every failure, including a malformed
// response, comes back as a result rather than an error.
func (f *Form) post(ctx context.Context, sub Submission, idempotencyKey string) result {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return result{message: MessageSendFailed}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return result{message: MessageNetworkError}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return result{message: MessageNetworkError}
	}
	defer resp.Body.Close()

	var payload relayResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return result{message: MessageSendFailed}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && payload.Success {
		return result{ok: true}
	}
	return result{message: MessageSendFailed, fields: knownFields(payload.Fields)}
}

// knownFields keeps server field errors that the form can display.
func knownFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		switch k {
		case validation.FieldName, validation.FieldEmail, validation.FieldMessage:
			out[k] = v
		}
	}
	return out
}
