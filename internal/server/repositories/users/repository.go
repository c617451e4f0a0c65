package users

import "context"

// Repository keeps the per-user version counter that orders every change a
// user's records go through.
type Repository interface {
	// Lock makes sure the user row exists and locks it for the rest of the
	// transaction. It returns the current version.
	Lock(ctx context.Context, userID string) (int64, error)
	IncrementCurrentVersion(ctx context.Context, userID string) (int64, error)
	// CurrentVersion returns 0 for a user that never pushed.
	CurrentVersion(ctx context.Context, userID string) (int64, error)
}
