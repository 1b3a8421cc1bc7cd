package auth

import "context"

var _ TokenChecker = (*SessionChecker)(nil)
var _ TokenChecker = (*SessionTestChecker)(nil)

// TokenChecker resolves an opaque session token to the user it belongs to.
// Returns ErrNotLoggedIn for unknown, malformed or expired tokens.
type TokenChecker interface {
	UserID(ctx context.Context, token string) (int, error)
}
