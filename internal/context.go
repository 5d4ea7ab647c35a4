package internal

import "context"

type ctxKey string

const ContextUserKey ctxKey = "authUser"

// AuthUser is the principal resolved from a bearer token.
type AuthUser struct {
	ID       int64
	Email    string
	FullName *string
}

func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*AuthUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}
