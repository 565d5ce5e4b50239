package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

type GetPropertyDetailsUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertyDetailsUseCase(storage port.PropertyStoragePort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{storage: storage}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, propertyID int64) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyDetails",
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	property, err := uc.storage.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, fmt.Errorf("failed to get property details: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property does not exist.", nil)
		return nil, domain.ErrPropertyNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return property, nil
}
