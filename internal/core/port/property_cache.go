package port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

// PropertyCachePort caches search result pages so reads can survive a
// store outage in an explicitly degraded mode. GetPage returns
// (nil, nil) on a miss; cache failures must never fail a live read.
type PropertyCachePort interface {
	GetPage(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error)
	SetPage(ctx context.Context, filters domain.PropertyFilters, limit, offset int, page *domain.PaginatedProperties) error
}
