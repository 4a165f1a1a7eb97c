package auth

import "context"

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const adminKey contextKey = "admin"

// IsAdminFromCtx reports whether the request context was stamped as an
// authenticated moderator. A missing or mistyped value reads as false, so
// every consumer fails closed.
func IsAdminFromCtx(ctx context.Context) bool {
	v, ok := ctx.Value(adminKey).(bool)
	return ok && v
}

// WithAdmin returns a new context marked as an authenticated moderator.
// Used by RequireAdmin after validating the session.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// ContextGate is the moderation authorization check backed by the request
// context flag that RequireAdmin sets. It is the production AdminGate.
type ContextGate struct{}

// IsAdmin reports whether ctx carries a validated moderator session.
func (ContextGate) IsAdmin(ctx context.Context) bool {
	return IsAdminFromCtx(ctx)
}
