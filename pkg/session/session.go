package session

import "context"

type userKey struct{}

// WithUser stores the acting user id for the rest of the request.
func WithUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the acting user id and whether one was set.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userKey{}).(int64)
	return id, ok && id > 0
}

// Header carries the acting user id on every user-scoped request.
const Header = "X-User-ID"
