package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

// DeleteUserUseCase removes a user together with their favorites set.
type DeleteUserUseCase struct {
	users     port.UserRepositoryPort
	favorites port.FavoritesRepositoryPort
}

func NewDeleteUserUseCase(users port.UserRepositoryPort, favorites port.FavoritesRepositoryPort) *DeleteUserUseCase {
	return &DeleteUserUseCase{users: users, favorites: favorites}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DeleteUser",
		"user_id":  id,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.favorites.RemoveAllForUser(ctx, id); err != nil {
		ucLogger.Error("Failed to clear user favorites", err, nil)
		return fmt.Errorf("failed to clear user favorites: %w", err)
	}

	deleted, err := uc.users.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}
	if !deleted {
		ucLogger.Warn("User does not exist.", nil)
		return domain.ErrUserNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
