package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intP(v int) *int { return &v }
func floatP(v float64) *float64 { return &v }

func sampleProperties() []Property {
	base := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	return []Property{
		{ID: 1, Price: 15000, Type: "Studio", Bedrooms: intP(1), Area: floatP(420), Furnishing: "Furnished", PostedDate: base.AddDate(0, 0, -5)},
		{ID: 2, Price: 25000, Type: "Apartment", Bedrooms: intP(2), Area: floatP(950), Furnishing: "Semi-Furnished", PostedDate: base.AddDate(0, 0, -2)},
		{ID: 3, Price: 75000, Type: "Villa", Bedrooms: intP(3), Area: floatP(2200), Furnishing: "Unfurnished", PostedDate: base.AddDate(0, 0, -1)},
	}
}

func TestPropertyFiltersMatchesPriceRange(t *testing.T) {
	props := sampleProperties()
	filters := PropertyFilters{MinPrice: floatP(20000)}

	var matched []int64
	for _, p := range props {
		if filters.Matches(p) {
			matched = append(matched, p.ID)
		}
	}
	assert.Equal(t, []int64{2, 3}, matched)

	// Bounds are inclusive.
	assert.True(t, PropertyFilters{MinPrice: floatP(15000)}.Matches(props[0]))
	assert.True(t, PropertyFilters{MaxPrice: floatP(15000)}.Matches(props[0]))
	assert.False(t, PropertyFilters{MaxPrice: floatP(14999)}.Matches(props[0]))
}

func TestPropertyFiltersMatchesCaseInsensitiveStrings(t *testing.T) {
	p := Property{Type: "Apartment", Furnishing: "Semi-Furnished", Availability: "Immediate"}

	assert.True(t, PropertyFilters{Type: "apartment"}.Matches(p))
	assert.True(t, PropertyFilters{Furnishing: "SEMI-FURNISHED"}.Matches(p))
	assert.False(t, PropertyFilters{Type: "villa"}.Matches(p))
}

func TestPropertyFiltersMatchesCombinesWithAnd(t *testing.T) {
	p := Property{Price: 25000, Type: "Apartment", Bedrooms: intP(2)}

	assert.True(t, PropertyFilters{MinPrice: floatP(20000), Type: "apartment", Bedrooms: intP(2)}.Matches(p))
	assert.False(t, PropertyFilters{MinPrice: floatP(20000), Bedrooms: intP(3)}.Matches(p))
}

func TestPropertyFiltersMatchesNilNumericFields(t *testing.T) {
	// A listing without a bedroom count never matches a bedroom filter.
	p := Property{Price: 10000}
	assert.False(t, PropertyFilters{Bedrooms: intP(1)}.Matches(p))
	assert.True(t, PropertyFilters{}.Matches(p))
}

func TestPropertyFiltersValidate(t *testing.T) {
	require.NoError(t, PropertyFilters{}.Validate())
	require.NoError(t, PropertyFilters{SortBy: SortByPrice, SortOrder: SortDesc}.Validate())

	err := PropertyFilters{SortBy: "title"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = PropertyFilters{SortOrder: "down"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSortPropertiesByPriceDesc(t *testing.T) {
	props := sampleProperties()
	SortProperties(props, SortByPrice, SortDesc)

	prices := []float64{props[0].Price, props[1].Price, props[2].Price}
	assert.Equal(t, []float64{75000, 25000, 15000}, prices)
}

func TestSortPropertiesDefaultIsNewestPostedFirst(t *testing.T) {
	props := sampleProperties()
	SortProperties(props, "", "")

	assert.Equal(t, int64(3), props[0].ID)
	assert.Equal(t, int64(2), props[1].ID)
	assert.Equal(t, int64(1), props[2].ID)
}

func TestSortPropertiesByAreaTreatsNilAsZero(t *testing.T) {
	props := []Property{
		{ID: 1, Area: floatP(500)},
		{ID: 2},
		{ID: 3, Area: floatP(100)},
	}
	SortProperties(props, SortByArea, SortAsc)

	assert.Equal(t, int64(2), props[0].ID)
	assert.Equal(t, int64(3), props[1].ID)
	assert.Equal(t, int64(1), props[2].ID)
}

func TestSortPropertiesTiesBreakOnID(t *testing.T) {
	// Tied sort keys must land in id order regardless of input order.
	props := []Property{
		{ID: 30, Price: 100},
		{ID: 10, Price: 100},
		{ID: 20, Price: 100},
	}
	SortProperties(props, SortByPrice, SortAsc)
	assert.Equal(t, []int64{10, 20, 30}, []int64{props[0].ID, props[1].ID, props[2].ID})

	SortProperties(props, SortByPrice, SortDesc)
	assert.Equal(t, []int64{10, 20, 30}, []int64{props[0].ID, props[1].ID, props[2].ID})
}

func TestNormalizePage(t *testing.T) {
	limit, offset := NormalizePage(0, 0)
	assert.Equal(t, DefaultPageSize, limit)
	assert.Equal(t, 0, offset)

	limit, _ = NormalizePage(-5, 0)
	assert.Equal(t, DefaultPageSize, limit)

	limit, _ = NormalizePage(500, 0)
	assert.Equal(t, MaxPageSize, limit)

	_, offset = NormalizePage(10, -3)
	assert.Equal(t, 0, offset)

	limit, offset = NormalizePage(30, 60)
	assert.Equal(t, 30, limit)
	assert.Equal(t, 60, offset)
}

func TestHasMorePages(t *testing.T) {
	assert.True(t, HasMorePages(6, 3, 0))
	// The last full page of six items reports no further pages.
	assert.False(t, HasMorePages(6, 3, 3))
	assert.False(t, HasMorePages(6, 20, 0))
	assert.True(t, HasMorePages(21, 20, 0))
	assert.False(t, HasMorePages(0, 20, 0))
}
