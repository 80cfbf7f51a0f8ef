package middleware

import "context"

type contextKey string

const (
	ctxOrigin    contextKey = "origin"
	ctxRequestID contextKey = "request_id"
)

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func withValue(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

// OriginFromContext returns the scheme and host the request was addressed to.
func OriginFromContext(ctx context.Context) string { return stringValue(ctx, ctxOrigin) }

// WithOrigin injects the request origin into the context for URL building.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return withValue(ctx, ctxOrigin, origin)
}

// RequestIDFromContext returns the id assigned by RequestID, if any.
func RequestIDFromContext(ctx context.Context) string { return stringValue(ctx, ctxRequestID) }
