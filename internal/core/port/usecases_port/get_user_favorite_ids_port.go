package usecases_port

import "context"

type GetUserFavoriteIDsUseCasePort interface {
	// Execute returns the favorited property ids, newest first.
	Execute(ctx context.Context, clerkID string) ([]int64, error)
}
