package session

import (
	"context"

	"uigallery/pkg/user"
)

type contextKey string

const userContextKey contextKey = "session_user"

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userContextKey).(*user.User)
	return u, ok && u != nil
}
