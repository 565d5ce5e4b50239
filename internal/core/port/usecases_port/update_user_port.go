package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type UpdateUserUseCasePort interface {
	Execute(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
}
