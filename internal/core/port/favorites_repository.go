package port

import "context"

// FavoritesRepositoryPort is the contract for the favorites store.
// Add and Remove are idempotent: re-adding an existing pair and removing
// an absent one both succeed. The store itself must guarantee that
// concurrent Add calls for the same user and different properties never
// lose one another.
type FavoritesRepositoryPort interface {
	Add(ctx context.Context, userID, propertyID int64) error
	Remove(ctx context.Context, userID, propertyID int64) error
	Exists(ctx context.Context, userID, propertyID int64) (bool, error)

	// FindIDsByUser returns the favorited property ids, newest first.
	FindIDsByUser(ctx context.Context, userID int64) ([]int64, error)

	// RemoveAllForUser clears a user's set, used when the identity is deleted.
	RemoveAllForUser(ctx context.Context, userID int64) error
}
