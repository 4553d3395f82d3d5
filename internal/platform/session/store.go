package session

import "context"

// Store tracks the set of currently-valid tokens per user. A token that
// passes signature and expiry checks is still rejected by the auth
// middleware unless the store lists it, which is what makes server-side
// logout possible.
type Store interface {
	Add(ctx context.Context, userID, token string) error
	Contains(ctx context.Context, userID, token string) (bool, error)
	Remove(ctx context.Context, userID, token string) error
}
