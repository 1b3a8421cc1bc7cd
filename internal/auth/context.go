package auth

import "context"

type contextKey struct{}

var userIDContextKey = contextKey{}

// ContextWithUserID stores the authenticated user id in the request context.
// The middleware is the only writer; handlers must treat this as the sole
// source of the current user identity.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}
