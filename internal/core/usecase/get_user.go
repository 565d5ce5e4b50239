package usecase

import (
	"context"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

type GetUserUseCase struct {
	users port.UserRepositoryPort
}

func NewGetUserUseCase(users port.UserRepositoryPort) *GetUserUseCase {
	return &GetUserUseCase{users: users}
}

func (uc *GetUserUseCase) ByID(ctx context.Context, id int64) (*domain.User, error) {
	ucLogger := uc.ucLogger(ctx, port.Fields{"user_id": id})
	return uc.resolve(ucLogger, func() (*domain.User, error) {
		return uc.users.FindByID(ctx, id)
	})
}

func (uc *GetUserUseCase) ByClerkID(ctx context.Context, clerkID string) (*domain.User, error) {
	ucLogger := uc.ucLogger(ctx, port.Fields{"clerk_id": clerkID})
	return uc.resolve(ucLogger, func() (*domain.User, error) {
		return uc.users.FindByClerkID(ctx, clerkID)
	})
}

func (uc *GetUserUseCase) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	ucLogger := uc.ucLogger(ctx, port.Fields{"email": email})
	return uc.resolve(ucLogger, func() (*domain.User, error) {
		return uc.users.FindByEmail(ctx, email)
	})
}

func (uc *GetUserUseCase) ucLogger(ctx context.Context, fields port.Fields) port.LoggerPort {
	logger := contextkeys.LoggerFromContext(ctx)
	fields["use_case"] = "GetUser"
	return logger.WithFields(fields)
}

func (uc *GetUserUseCase) resolve(ucLogger port.LoggerPort, find func() (*domain.User, error)) (*domain.User, error) {
	ucLogger.Info("Use case started", nil)

	user, err := find()
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	if user == nil {
		ucLogger.Warn("User does not exist.", nil)
		return nil, domain.ErrUserNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return user, nil
}
