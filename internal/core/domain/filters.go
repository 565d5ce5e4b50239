package domain

import (
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sort fields accepted by the property search.
const (
	SortByPrice      = "price"
	SortByPostedDate = "postedDate"
	SortByArea       = "area"
	SortByCreatedAt  = "createdAt"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PropertyFilters is the validated filter specification for a property
// search. Nil / empty fields impose no constraint.
type PropertyFilters struct {
	MinPrice     *float64
	MaxPrice     *float64
	Type         string
	Bedrooms     *int
	Bathrooms    *int
	Furnishing   string
	Availability string
	SortBy       string
	SortOrder    string
}

// Validate checks the sort directives against the known options.
func (f PropertyFilters) Validate() error {
	switch f.SortBy {
	case "", SortByPrice, SortByPostedDate, SortByArea, SortByCreatedAt:
	default:
		return fmt.Errorf("%w: unknown sortBy %q", ErrInvalidInput, f.SortBy)
	}
	switch f.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return fmt.Errorf("%w: unknown sortOrder %q", ErrInvalidInput, f.SortOrder)
	}
	return nil
}

// Matches reports whether the property satisfies every set filter.
// Range bounds are inclusive; string comparisons are case-insensitive.
func (f PropertyFilters) Matches(p Property) bool {
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
		return false
	}
	if f.Bedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms != *f.Bedrooms) {
		return false
	}
	if f.Bathrooms != nil && (p.Bathrooms == nil || *p.Bathrooms != *f.Bathrooms) {
		return false
	}
	if f.Furnishing != "" && !strings.EqualFold(p.Furnishing, f.Furnishing) {
		return false
	}
	if f.Availability != "" && !strings.EqualFold(p.Availability, f.Availability) {
		return false
	}
	return true
}

// SortProperties orders the slice in place according to the sort
// directives. Each field uses its natural order: numeric for price and
// area, chronological for dates. Ties break on id ascending so repeated
// queries and sequential pages see one deterministic order. With no
// SortBy the default is most recently posted first.
func SortProperties(props []Property, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = SortByPostedDate
		sortOrder = SortDesc
	}

	var less func(a, b Property) bool
	switch sortBy {
	case SortByPrice:
		less = func(a, b Property) bool { return a.Price < b.Price }
	case SortByArea:
		less = func(a, b Property) bool {
			av, bv := 0.0, 0.0
			if a.Area != nil {
				av = *a.Area
			}
			if b.Area != nil {
				bv = *b.Area
			}
			return av < bv
		}
	case SortByCreatedAt:
		less = func(a, b Property) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default: // SortByPostedDate
		less = func(a, b Property) bool { return a.PostedDate.Before(b.PostedDate) }
	}

	if sortOrder == SortDesc {
		inner := less
		less = func(a, b Property) bool { return inner(b, a) }
	}

	sort.SliceStable(props, func(i, j int) bool {
		if less(props[i], props[j]) {
			return true
		}
		if less(props[j], props[i]) {
			return false
		}
		return props[i].ID < props[j].ID
	})
}

// NormalizePage clamps limit and offset to usable values: a missing or
// non-positive limit becomes DefaultPageSize, oversized limits are capped,
// negative offsets become zero.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
