package memory_adapter

import (
	"context"
	"sync"

	"home-finder-service/internal/core/domain"
)

// PropertyStorageAdapter is an in-process PropertyStoragePort used by
// the memory store driver. Filtering, sorting and paging run through
// the same domain engine the tests exercise.
type PropertyStorageAdapter struct {
	mu         sync.RWMutex
	properties map[int64]domain.Property
}

func NewPropertyStorageAdapter() *PropertyStorageAdapter {
	return &PropertyStorageAdapter{
		properties: make(map[int64]domain.Property),
	}
}

// NewSeededPropertyStorageAdapter returns a storage preloaded with the
// demo catalog.
func NewSeededPropertyStorageAdapter() *PropertyStorageAdapter {
	a := NewPropertyStorageAdapter()
	for _, p := range demoCatalog() {
		a.properties[p.ID] = p
	}
	return a
}

func (a *PropertyStorageAdapter) FindWithFilters(_ context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error) {
	a.mu.RLock()
	matched := make([]domain.Property, 0, len(a.properties))
	for _, p := range a.properties {
		if filters.Matches(p) {
			matched = append(matched, p)
		}
	}
	a.mu.RUnlock()

	domain.SortProperties(matched, filters.SortBy, filters.SortOrder)

	total := len(matched)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := make([]domain.Property, end-start)
	copy(page, matched[start:end])

	return &domain.PaginatedProperties{
		Properties: page,
		Total:      total,
		HasMore:    domain.HasMorePages(total, limit, offset),
	}, nil
}

func (a *PropertyStorageAdapter) FindByID(_ context.Context, id int64) (*domain.Property, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	p, ok := a.properties[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (a *PropertyStorageAdapter) FindByIDs(_ context.Context, ids []int64) ([]domain.Property, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	found := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := a.properties[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (a *PropertyStorageAdapter) FindFeatured(_ context.Context, limit int) ([]domain.Property, error) {
	a.mu.RLock()
	featured := make([]domain.Property, 0)
	for _, p := range a.properties {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	a.mu.RUnlock()

	domain.SortProperties(featured, domain.SortByPostedDate, domain.SortDesc)
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func (a *PropertyStorageAdapter) Upsert(_ context.Context, p domain.Property) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.properties[p.ID] = p
	return nil
}

func (a *PropertyStorageAdapter) Delete(_ context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.properties, id)
	return nil
}
