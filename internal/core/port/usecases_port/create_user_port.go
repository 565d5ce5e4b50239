package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type CreateUserUseCasePort interface {
	Execute(ctx context.Context, user domain.NewUser) (*domain.User, error)
}
