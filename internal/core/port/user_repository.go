package port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

// UserRepositoryPort is the contract for the local user store.
// Find* methods return (nil, nil) when the user does not exist.
type UserRepositoryPort interface {
	Create(ctx context.Context, user domain.NewUser) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByClerkID(ctx context.Context, clerkID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filters domain.UserFilters, limit, offset int) ([]domain.User, int, error)

	// Update applies a partial update and returns the updated row, or
	// (nil, nil) when the user does not exist.
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)

	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
