package auth

import (
	"context"

	"collabex_backend/internal/models"
)

// Session is the authenticated actor of a request.
// It is passed to services explicitly.
type Session struct {
	UserID      string
	ProfileID   string
	AccountType models.AccountType
}

func (s Session) IsZero() bool {
	return s.UserID == ""
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok && !s.IsZero()
}
