// Package requestid tags every submission with an id that is shared
// between the response headers and the request log line.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

var requestIDKey contextKey

// Generate returns a fresh request id.
func Generate() string {
	return uuid.New().String()
}

// ToContext stores the request id on the context.
func ToContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// FromContext returns the request id carried by the context, or the
// empty string when there is none.
func FromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// FromRequest returns the request id carried by the request context.
func FromRequest(r *http.Request) string {
	return FromContext(r.Context())
}
