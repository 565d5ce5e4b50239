package usecases_port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

type IngestListingUseCasePort interface {
	Execute(ctx context.Context, event domain.ListingEvent) error
}
