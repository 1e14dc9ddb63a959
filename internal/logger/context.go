package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	profileIDKey ctxKey = "profile_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithProfileID tags every log line derived from ctx with the acting profile.
func WithProfileID(ctx context.Context, profileID uint) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

// FromCtx returns the global logger enriched with request_id and profile_id
// when the context carries them.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if pid, ok := ctx.Value(profileIDKey).(uint); ok {
		l = l.With(zap.Uint("profile_id", pid))
	}
	return l
}
