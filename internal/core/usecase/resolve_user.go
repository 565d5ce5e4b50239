package usecase

import (
	"context"

	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

// resolveUserByClerkID maps the external identity id onto the local
// user. Favorites are exposed per clerk id, but stored per user id, and
// an unknown clerk id is never implicitly registered.
func resolveUserByClerkID(ctx context.Context, users port.UserRepositoryPort, ucLogger port.LoggerPort, clerkID string) (*domain.User, error) {
	user, err := users.FindByClerkID(ctx, clerkID)
	if err != nil {
		ucLogger.Error("Failed to look up user by clerk id", err, nil)
		return nil, err
	}
	if user == nil {
		ucLogger.Warn("No user for clerk id.", nil)
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
