package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

type GetFeaturedPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetFeaturedPropertiesUseCase(storage port.PropertyStoragePort) *GetFeaturedPropertiesUseCase {
	return &GetFeaturedPropertiesUseCase{storage: storage}
}

func (uc *GetFeaturedPropertiesUseCase) Execute(ctx context.Context, limit int) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetFeaturedProperties",
		"limit":    limit,
	})

	ucLogger.Info("Use case started", nil)

	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	properties, err := uc.storage.FindFeatured(ctx, limit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, fmt.Errorf("failed to get featured properties: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found_count": len(properties)})
	return properties, nil
}
