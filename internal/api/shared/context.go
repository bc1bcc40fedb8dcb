package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// IdentityContextKey is the context key for the authenticated caller's email
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// WithIdentity returns a copy of ctx carrying the authenticated caller's email.
// Only the authentication middleware should call it.
func WithIdentity(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, IdentityContextKey, email)
}

// IdentityFromContext returns the caller identity placed in ctx by the
// authentication middleware. The boolean is false when no non-blank identity
// is present.
func IdentityFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(IdentityContextKey).(string)
	if !ok || strings.TrimSpace(email) == "" {
		return "", false
	}
	return email, true
}

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a random 32-character hex string.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
