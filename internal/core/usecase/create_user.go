package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

type CreateUserUseCase struct {
	users port.UserRepositoryPort
}

func NewCreateUserUseCase(users port.UserRepositoryPort) *CreateUserUseCase {
	return &CreateUserUseCase{users: users}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, user domain.NewUser) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateUser",
		"clerk_id": user.ClerkID,
	})

	ucLogger.Info("Use case started", nil)

	if user.ClerkID == "" {
		ucLogger.Warn("Rejected user without clerk id.", nil)
		return nil, fmt.Errorf("%w: clerkId is required", domain.ErrInvalidInput)
	}
	if !domain.IsValidEmail(user.Email) {
		ucLogger.Warn("Rejected user with invalid email.", nil)
		return nil, fmt.Errorf("%w: email '%s' is not valid", domain.ErrInvalidInput, user.Email)
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": created.ID})
	return created, nil
}
