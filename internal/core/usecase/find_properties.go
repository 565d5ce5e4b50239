package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

// FindPropertiesUseCase serves filtered, sorted, paginated property
// searches. When a cache is configured, every fresh page is stored
// there, and a store outage falls back to the cached page marked
// degraded instead of failing the read outright.
type FindPropertiesUseCase struct {
	storage port.PropertyStoragePort
	cache   port.PropertyCachePort
}

// NewFindPropertiesUseCase creates the use case. cache may be nil when
// degraded reads are disabled.
func NewFindPropertiesUseCase(storage port.PropertyStoragePort, cache port.PropertyCachePort) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{storage: storage, cache: cache}
}

func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"limit":    limit,
		"offset":   offset,
	})

	ucLogger.Info("Use case started", nil)

	if err := filters.Validate(); err != nil {
		ucLogger.Warn("Rejected invalid filters.", port.Fields{"validation_error": err.Error()})
		return nil, err
	}

	limit, offset = domain.NormalizePage(limit, offset)

	result, err := uc.storage.FindWithFilters(ctx, filters, limit, offset)
	if err != nil {
		return uc.serveFromCache(ctx, ucLogger, filters, limit, offset, err)
	}

	if uc.cache != nil {
		// Best effort. A broken cache must not break a healthy read.
		if cacheErr := uc.cache.SetPage(ctx, filters, limit, offset, result); cacheErr != nil {
			ucLogger.Warn("Failed to cache result page.", port.Fields{"cache_error": cacheErr.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": result.Total})
	return result, nil
}

func (uc *FindPropertiesUseCase) serveFromCache(ctx context.Context, ucLogger port.LoggerPort, filters domain.PropertyFilters, limit, offset int, storeErr error) (*domain.PaginatedProperties, error) {
	if uc.cache == nil {
		ucLogger.Error("Property store failed and no cache is configured", storeErr, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, storeErr)
	}

	cached, cacheErr := uc.cache.GetPage(ctx, filters, limit, offset)
	if cacheErr != nil {
		ucLogger.Error("Property store failed and cache lookup also failed", cacheErr, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, storeErr)
	}
	if cached == nil {
		ucLogger.Error("Property store failed with no cached page for this query", storeErr, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, storeErr)
	}

	ucLogger.Warn("Property store failed, serving cached page in degraded mode.", port.Fields{
		"store_error": storeErr.Error(),
	})
	cached.Degraded = true
	return cached, nil
}
