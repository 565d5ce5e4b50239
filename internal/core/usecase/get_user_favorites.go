package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

type GetUserFavoritesUseCase struct {
	users     port.UserRepositoryPort
	favorites port.FavoritesRepositoryPort
	storage   port.PropertyStoragePort
}

func NewGetUserFavoritesUseCase(
	users port.UserRepositoryPort,
	favorites port.FavoritesRepositoryPort,
	storage port.PropertyStoragePort,
) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{
		users:     users,
		favorites: favorites,
		storage:   storage,
	}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, clerkID string) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserFavorites",
		"clerk_id": clerkID,
	})

	ucLogger.Info("Use case started", nil)

	user, err := resolveUserByClerkID(ctx, uc.users, ucLogger, clerkID)
	if err != nil {
		return nil, err
	}

	ids, err := uc.favorites.FindIDsByUser(ctx, user.ID)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorite IDs: %w", err)
	}

	if len(ids) == 0 {
		ucLogger.Info("User has no favorites.", nil)
		return []domain.Property{}, nil
	}

	properties, err := uc.storage.FindByIDs(ctx, ids)
	if err != nil {
		ucLogger.Error("Failed to get property details from storage", err, nil)
		return nil, fmt.Errorf("failed to get property details: %w", err)
	}

	// Keep the favorites ordering (newest addition first). The storage
	// does not guarantee it, and ids whose listing disappeared from the
	// catalog simply drop out here.
	propertyMap := make(map[int64]domain.Property, len(properties))
	for _, p := range properties {
		propertyMap[p.ID] = p
	}

	ordered := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := propertyMap[id]; ok {
			ordered = append(ordered, p)
		}
	}

	if dangling := len(ids) - len(ordered); dangling > 0 {
		ucLogger.Warn("Skipping favorites without a backing listing.", port.Fields{
			"dangling_count": dangling,
		})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"favorites_count": len(ordered)})
	return ordered, nil
}
