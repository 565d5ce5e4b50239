package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

// GetUserUseCasePort resolves a user by any of its unique keys.
type GetUserUseCasePort interface {
	ByID(ctx context.Context, id int64) (*domain.User, error)
	ByClerkID(ctx context.Context, clerkID string) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}
