package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type GetUserFavoritesUseCasePort interface {
	Execute(ctx context.Context, clerkID string) ([]domain.Property, error)
}
