package usecase

import (
	"context"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/port"
)

type IsFavoritedUseCase struct {
	users     port.UserRepositoryPort
	favorites port.FavoritesRepositoryPort
}

func NewIsFavoritedUseCase(users port.UserRepositoryPort, favorites port.FavoritesRepositoryPort) *IsFavoritedUseCase {
	return &IsFavoritedUseCase{users: users, favorites: favorites}
}

func (uc *IsFavoritedUseCase) Execute(ctx context.Context, clerkID string, propertyID int64) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "IsFavorited",
		"clerk_id":    clerkID,
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	user, err := resolveUserByClerkID(ctx, uc.users, ucLogger, clerkID)
	if err != nil {
		return false, err
	}

	favorited, err := uc.favorites.Exists(ctx, user.ID, propertyID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return false, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"favorited": favorited})
	return favorited, nil
}
