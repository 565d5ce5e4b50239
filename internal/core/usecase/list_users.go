package usecase

import (
	"context"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

type ListUsersUseCase struct {
	users port.UserRepositoryPort
}

func NewListUsersUseCase(users port.UserRepositoryPort) *ListUsersUseCase {
	return &ListUsersUseCase{users: users}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, filters domain.UserFilters, limit, offset int) ([]domain.User, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListUsers",
		"limit":    limit,
		"offset":   offset,
	})

	ucLogger.Info("Use case started", nil)

	limit, offset = domain.NormalizePage(limit, offset)

	users, total, err := uc.users.List(ctx, filters, limit, offset)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, 0, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": total})
	return users, total, nil
}
