package utils

import "context"

type contextKey string

const correlationIDKey contextKey = "correlationID"

// WithCorrelationID returns a copy of ctx carrying the request correlation ID
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// CorrelationIDFromContext returns the correlation ID stored in ctx, if any
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	correlationID, _ := ctx.Value(correlationIDKey).(string)
	return correlationID
}
