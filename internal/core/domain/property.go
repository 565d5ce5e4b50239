package domain

import (
	"time"
)

// Property is a single rental listing. Listings are produced by the
// listing-management pipeline and are read-only for this service apart
// from broker-driven ingest.
type Property struct {
	ID           int64
	Title        string
	Price        float64
	Type         string // Apartment, Villa, Flat, Studio, Penthouse
	Bedrooms     *int
	Bathrooms    *int
	Area         *float64
	ImageURL     string
	Furnishing   string // Fully Furnished, Semi-Furnished, Unfurnished
	Availability string
	Amenities    string // comma-delimited
	Description  string
	ContactName  string
	ContactPhone string
	PostedDate   time.Time
	IsFeatured   bool
	Tags         string
	CreatedAt    time.Time
}

// PaginatedProperties is one result page of a property search.
type PaginatedProperties struct {
	Properties []Property
	Total      int
	HasMore    bool
	// Degraded marks results served from the read cache because the
	// primary store was unreachable. Never set on a live read.
	Degraded bool
}

// HasMorePages reports whether pages exist beyond the one at offset.
func HasMorePages(total, limit, offset int) bool {
	return offset+limit < total
}
