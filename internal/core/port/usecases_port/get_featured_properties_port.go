package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type GetFeaturedPropertiesUseCasePort interface {
	Execute(ctx context.Context, limit int) ([]domain.Property, error)
}
