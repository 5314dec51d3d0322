package logger

import (
	"context"
	"log/slog"
)

// requestFields are the attributes every log line of a request carries.
type requestFields struct {
	requestID string
	userID    string
	profileID string
}

type fieldsKey struct{}

func fieldsFrom(ctx context.Context) requestFields {
	if ctx == nil {
		return requestFields{}
	}
	f, _ := ctx.Value(fieldsKey{}).(requestFields)
	return f
}

func withFields(ctx context.Context, update func(*requestFields)) context.Context {
	f := fieldsFrom(ctx)
	update(&f)
	return context.WithValue(ctx, fieldsKey{}, f)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withFields(ctx, func(f *requestFields) { f.requestID = requestID })
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return withFields(ctx, func(f *requestFields) { f.userID = userID })
}

func WithProfileID(ctx context.Context, profileID string) context.Context {
	return withFields(ctx, func(f *requestFields) { f.profileID = profileID })
}

// RequestID returns the id set by RequestIDMiddleware, or "".
func RequestID(ctx context.Context) string {
	return fieldsFrom(ctx).requestID
}

// FromContext returns the global logger enriched with the request fields in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	f := fieldsFrom(ctx)

	var attrs []any
	if f.requestID != "" {
		attrs = append(attrs, "request_id", f.requestID)
	}
	if f.userID != "" {
		attrs = append(attrs, "user_id", f.userID)
	}
	if f.profileID != "" {
		attrs = append(attrs, "profile_id", f.profileID)
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

// ============================================
// Context-aware shortcuts
// ============================================

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError logs at error level with err under the "error" key.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", errString(err)}, args...)...)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
