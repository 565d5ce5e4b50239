package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

type UpdateUserUseCase struct {
	users port.UserRepositoryPort
}

func NewUpdateUserUseCase(users port.UserRepositoryPort) *UpdateUserUseCase {
	return &UpdateUserUseCase{users: users}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateUser",
		"user_id":  id,
	})

	ucLogger.Info("Use case started", nil)

	if update.Email != nil && !domain.IsValidEmail(*update.Email) {
		ucLogger.Warn("Rejected update with invalid email.", nil)
		return nil, fmt.Errorf("%w: email '%s' is not valid", domain.ErrInvalidInput, *update.Email)
	}

	updated, err := uc.users.Update(ctx, id, update)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	if updated == nil {
		ucLogger.Warn("User does not exist.", nil)
		return nil, domain.ErrUserNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}
