package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

// IngestListingUseCase applies listing pipeline events to the property
// store. Created and updated events upsert, removed events delete, so
// replaying a message always converges to the same state.
type IngestListingUseCase struct {
	storage port.PropertyStoragePort
}

func NewIngestListingUseCase(storage port.PropertyStoragePort) *IngestListingUseCase {
	return &IngestListingUseCase{storage: storage}
}

func (uc *IngestListingUseCase) Execute(ctx context.Context, event domain.ListingEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "IngestListing",
		"event_type":  event.Type,
		"property_id": event.PropertyID,
	})

	ucLogger.Info("Use case started", nil)

	switch event.Type {
	case domain.ListingCreated, domain.ListingUpdated:
		if event.Property == nil {
			ucLogger.Warn("Listing event carries no property payload.", nil)
			return fmt.Errorf("%w: %s event without property payload", domain.ErrInvalidInput, event.Type)
		}
		if err := uc.storage.Upsert(ctx, *event.Property); err != nil {
			ucLogger.Error("Failed to upsert listing", err, nil)
			return fmt.Errorf("failed to ingest listing: %w", err)
		}
	case domain.ListingRemoved:
		if err := uc.storage.Delete(ctx, event.PropertyID); err != nil {
			ucLogger.Error("Failed to remove listing", err, nil)
			return fmt.Errorf("failed to remove listing: %w", err)
		}
	default:
		ucLogger.Warn("Unknown listing event type.", nil)
		return fmt.Errorf("%w: unknown listing event type '%s'", domain.ErrInvalidInput, event.Type)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
