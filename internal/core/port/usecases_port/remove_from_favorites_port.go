package usecases_port

import "context"

type RemoveFromFavoritesUseCasePort interface {
	Execute(ctx context.Context, clerkID string, propertyID int64) error
}
