package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type SyncIdentityUseCasePort interface {
	Execute(ctx context.Context, event domain.IdentityEvent) error
}
