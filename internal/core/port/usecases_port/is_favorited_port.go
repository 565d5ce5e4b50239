package usecases_port

import "context"

type IsFavoritedUseCasePort interface {
	Execute(ctx context.Context, clerkID string, propertyID int64) (bool, error)
}
