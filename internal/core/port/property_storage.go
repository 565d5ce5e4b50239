package port

import (
	"context"

	"home-finder-service/internal/core/domain"
)

// PropertyStoragePort is the contract for the property store. Lookup
// methods return (nil, nil) when nothing matches; FindByIDs silently
// skips ids with no backing row.
type PropertyStoragePort interface {
	FindWithFilters(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error)
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Property, error)
	FindFeatured(ctx context.Context, limit int) ([]domain.Property, error)

	// Upsert and Delete serve the listing ingest pipeline only.
	Upsert(ctx context.Context, property domain.Property) error
	Delete(ctx context.Context, id int64) error
}
