package domain

import "context"

type CtxKey string

const (
	// KeyRequestID is the gin context key holding the request id.
	KeyRequestID CtxKey = "RequestID"
)

// HeaderRequestID and HeaderIdempotencyKey are the HTTP headers read by the API.
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// RequestIDFromContext returns the request id stored by the request id
// middleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}
