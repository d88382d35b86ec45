package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type for context values set by the API layer.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID, set by the
	// auth middleware.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"
)

// WithTraceID stores a trace ID on the context, minting a fresh one when id
// is empty. Error responses echo the ID back so a client report can be
// matched against logs.
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, id)
}

// GetTraceID returns the trace ID from the context, or "" when none was set.
func GetTraceID(ctx context.Context) string {
	id, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
