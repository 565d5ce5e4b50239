package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type FindPropertiesUseCasePort interface {
	Execute(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error)
}
