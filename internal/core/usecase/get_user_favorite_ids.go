package usecase

import (
	"context"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/port"
)

type GetUserFavoriteIDsUseCase struct {
	users     port.UserRepositoryPort
	favorites port.FavoritesRepositoryPort
}

func NewGetUserFavoriteIDsUseCase(users port.UserRepositoryPort, favorites port.FavoritesRepositoryPort) *GetUserFavoriteIDsUseCase {
	return &GetUserFavoriteIDsUseCase{users: users, favorites: favorites}
}

func (uc *GetUserFavoriteIDsUseCase) Execute(ctx context.Context, clerkID string) ([]int64, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserFavoriteIDs",
		"clerk_id": clerkID,
	})

	ucLogger.Info("Use case started", nil)

	user, err := resolveUserByClerkID(ctx, uc.users, ucLogger, clerkID)
	if err != nil {
		return nil, err
	}

	ids, err := uc.favorites.FindIDsByUser(ctx, user.ID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"favorites_count": len(ids)})
	return ids, nil
}
