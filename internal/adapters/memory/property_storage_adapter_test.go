package memory_adapter

import (
	"context"
	"testing"
	"time"

	"home-finder-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, props []domain.Property) *PropertyStorageAdapter {
	t.Helper()
	a := NewPropertyStorageAdapter()
	for _, p := range props {
		require.NoError(t, a.Upsert(context.Background(), p))
	}
	return a
}

func testCatalog() []domain.Property {
	base := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Property{
		{ID: 1, Price: 15000, Type: "Studio", PostedDate: base.AddDate(0, 0, -6)},
		{ID: 2, Price: 25000, Type: "Apartment", PostedDate: base.AddDate(0, 0, -5)},
		{ID: 3, Price: 75000, Type: "Villa", PostedDate: base.AddDate(0, 0, -4)},
		{ID: 4, Price: 12000, Type: "Apartment", PostedDate: base.AddDate(0, 0, -3)},
		{ID: 5, Price: 120000, Type: "Penthouse", PostedDate: base.AddDate(0, 0, -2), IsFeatured: true},
		{ID: 6, Price: 18000, Type: "Apartment", PostedDate: base.AddDate(0, 0, -1), IsFeatured: true},
	}
}

func TestFindWithFiltersMinPrice(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	result, err := a.FindWithFilters(context.Background(), domain.PropertyFilters{
		MinPrice: floatPtr(20000),
	}, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.False(t, result.HasMore)
	for _, p := range result.Properties {
		assert.GreaterOrEqual(t, p.Price, 20000.0)
	}
}

func TestFindWithFiltersSortByPriceDesc(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	result, err := a.FindWithFilters(context.Background(), domain.PropertyFilters{
		SortBy:    domain.SortByPrice,
		SortOrder: domain.SortDesc,
	}, 3, 0)
	require.NoError(t, err)

	require.Len(t, result.Properties, 3)
	assert.Equal(t, 120000.0, result.Properties[0].Price)
	assert.Equal(t, 75000.0, result.Properties[1].Price)
	assert.Equal(t, 25000.0, result.Properties[2].Price)
	assert.True(t, result.HasMore)
}

func TestFindWithFiltersPagination(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	first, err := a.FindWithFilters(context.Background(), domain.PropertyFilters{}, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Total)
	assert.Len(t, first.Properties, 3)
	assert.True(t, first.HasMore)

	second, err := a.FindWithFilters(context.Background(), domain.PropertyFilters{}, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, second.Total)
	assert.Len(t, second.Properties, 3)
	assert.False(t, second.HasMore)

	// Both pages together cover the catalog without overlap.
	seen := make(map[int64]bool)
	for _, p := range append(first.Properties, second.Properties...) {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
	assert.Len(t, seen, 6)
}

func TestFindWithFiltersTiedSortKeysAreDeterministic(t *testing.T) {
	// A dozen listings at the same price: the underlying map has no
	// order, so ties must come out by id every time or sequential
	// pages would repeat and skip listings.
	props := make([]domain.Property, 0, 12)
	for id := int64(1); id <= 12; id++ {
		props = append(props, domain.Property{ID: id, Price: 100, Type: "Apartment"})
	}
	a := newTestStorage(t, props)

	filters := domain.PropertyFilters{SortBy: domain.SortByPrice, SortOrder: domain.SortAsc}

	first, err := a.FindWithFilters(context.Background(), filters, 12, 0)
	require.NoError(t, err)
	second, err := a.FindWithFilters(context.Background(), filters, 12, 0)
	require.NoError(t, err)

	require.Len(t, first.Properties, 12)
	for i := range first.Properties {
		assert.Equal(t, int64(i+1), first.Properties[i].ID)
		assert.Equal(t, first.Properties[i].ID, second.Properties[i].ID)
	}

	// Paging over the ties covers every listing exactly once.
	pageOne, err := a.FindWithFilters(context.Background(), filters, 6, 0)
	require.NoError(t, err)
	pageTwo, err := a.FindWithFilters(context.Background(), filters, 6, 6)
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for _, p := range append(pageOne.Properties, pageTwo.Properties...) {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
	assert.Len(t, seen, 12)
}

func TestFindWithFiltersOffsetPastEnd(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	result, err := a.FindWithFilters(context.Background(), domain.PropertyFilters{}, 20, 100)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Total)
	assert.Empty(t, result.Properties)
	assert.False(t, result.HasMore)
}

func TestFindWithFiltersDefaultOrderIsNewestFirst(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	result, err := a.FindWithFilters(context.Background(), domain.PropertyFilters{}, 20, 0)
	require.NoError(t, err)

	require.Len(t, result.Properties, 6)
	for i := 1; i < len(result.Properties); i++ {
		prev, cur := result.Properties[i-1], result.Properties[i]
		assert.False(t, prev.PostedDate.Before(cur.PostedDate))
	}
}

func TestFindByIDsSkipsMissing(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	found, err := a.FindByIDs(context.Background(), []int64{2, 999, 5})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestFindFeatured(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	featured, err := a.FindFeatured(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	// Newest posted first.
	assert.Equal(t, int64(6), featured[0].ID)
	assert.Equal(t, int64(5), featured[1].ID)
}

func TestUpsertReplacesExisting(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	updated := domain.Property{ID: 1, Price: 16000, Type: "Studio", Title: "renovated"}
	require.NoError(t, a.Upsert(context.Background(), updated))

	p, err := a.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 16000.0, p.Price)
	assert.Equal(t, "renovated", p.Title)
}

func TestDeleteThenFindByIDReturnsNil(t *testing.T) {
	a := newTestStorage(t, testCatalog())

	require.NoError(t, a.Delete(context.Background(), 3))
	p, err := a.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, p)

	// Deleting again stays quiet.
	require.NoError(t, a.Delete(context.Background(), 3))
}
