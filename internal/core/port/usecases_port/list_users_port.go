package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type ListUsersUseCasePort interface {
	Execute(ctx context.Context, filters domain.UserFilters, limit, offset int) ([]domain.User, int, error)
}
