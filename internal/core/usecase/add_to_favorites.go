package usecase

import (
	"context"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/port"
)

type AddToFavoritesUseCase struct {
	users     port.UserRepositoryPort
	favorites port.FavoritesRepositoryPort
}

func NewAddToFavoritesUseCase(users port.UserRepositoryPort, favorites port.FavoritesRepositoryPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{users: users, favorites: favorites}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, clerkID string, propertyID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "AddToFavorites",
		"clerk_id":    clerkID,
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	user, err := resolveUserByClerkID(ctx, uc.users, ucLogger, clerkID)
	if err != nil {
		return err
	}

	if err := uc.favorites.Add(ctx, user.ID, propertyID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
