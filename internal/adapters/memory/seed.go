package memory_adapter

import (
	"time"

	"home-finder-service/internal/core/domain"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

// demoCatalog is the listing set served by the memory driver. It is
// meant for local development without a database behind the service.
func demoCatalog() []domain.Property {
	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	return []domain.Property{
		{
			ID:           1,
			Title:        "Sunny 2BHK apartment near Central Park",
			Price:        25000,
			Type:         "Apartment",
			Bedrooms:     intPtr(2),
			Bathrooms:    intPtr(2),
			Area:         floatPtr(950),
			ImageURL:     "https://images.example.com/listings/1.jpg",
			Furnishing:   "Semi-Furnished",
			Availability: "Immediate",
			Amenities:    "Parking, Lift, Gym",
			Description:  "Bright corner unit on the 7th floor with park views.",
			ContactName:  "Asha Verma",
			ContactPhone: "+91-98100-11001",
			PostedDate:   base.AddDate(0, 0, -2),
			IsFeatured:   true,
			Tags:         "family,park-view",
			CreatedAt:    base.AddDate(0, 0, -2),
		},
		{
			ID:           2,
			Title:        "Compact studio in the tech corridor",
			Price:        15000,
			Type:         "Studio",
			Bedrooms:     intPtr(1),
			Bathrooms:    intPtr(1),
			Area:         floatPtr(420),
			ImageURL:     "https://images.example.com/listings/2.jpg",
			Furnishing:   "Furnished",
			Availability: "Immediate",
			Amenities:    "Wifi, Power Backup",
			Description:  "Move-in ready studio, five minutes from the metro.",
			ContactName:  "Rohit Nair",
			ContactPhone: "+91-98100-11002",
			PostedDate:   base.AddDate(0, 0, -5),
			IsFeatured:   false,
			Tags:         "bachelor,metro",
			CreatedAt:    base.AddDate(0, 0, -5),
		},
		{
			ID:           3,
			Title:        "Spacious 3BHK villa with private garden",
			Price:        75000,
			Type:         "Villa",
			Bedrooms:     intPtr(3),
			Bathrooms:    intPtr(3),
			Area:         floatPtr(2200),
			ImageURL:     "https://images.example.com/listings/3.jpg",
			Furnishing:   "Unfurnished",
			Availability: "From Next Month",
			Amenities:    "Garden, Parking, Security",
			Description:  "Gated community villa with a landscaped garden.",
			ContactName:  "Meera Kapoor",
			ContactPhone: "+91-98100-11003",
			PostedDate:   base.AddDate(0, 0, -1),
			IsFeatured:   true,
			Tags:         "family,gated",
			CreatedAt:    base.AddDate(0, 0, -1),
		},
		{
			ID:           4,
			Title:        "1BHK apartment above the old market",
			Price:        12000,
			Type:         "Apartment",
			Bedrooms:     intPtr(1),
			Bathrooms:    intPtr(1),
			Area:         floatPtr(550),
			ImageURL:     "https://images.example.com/listings/4.jpg",
			Furnishing:   "Semi-Furnished",
			Availability: "Immediate",
			Amenities:    "Water Supply",
			Description:  "Quiet upper floor unit, market access downstairs.",
			ContactName:  "Suresh Iyer",
			ContactPhone: "+91-98100-11004",
			PostedDate:   base.AddDate(0, 0, -9),
			IsFeatured:   false,
			Tags:         "budget",
			CreatedAt:    base.AddDate(0, 0, -9),
		},
		{
			ID:           5,
			Title:        "Penthouse 4BHK with terrace lounge",
			Price:        120000,
			Type:         "Penthouse",
			Bedrooms:     intPtr(4),
			Bathrooms:    intPtr(4),
			Area:         floatPtr(3100),
			ImageURL:     "https://images.example.com/listings/5.jpg",
			Furnishing:   "Furnished",
			Availability: "From Next Month",
			Amenities:    "Terrace, Gym, Pool, Parking",
			Description:  "Top floor duplex with a private terrace lounge.",
			ContactName:  "Devika Rao",
			ContactPhone: "+91-98100-11005",
			PostedDate:   base.AddDate(0, 0, -3),
			IsFeatured:   true,
			Tags:         "luxury,terrace",
			CreatedAt:    base.AddDate(0, 0, -3),
		},
		{
			ID:           6,
			Title:        "Shared-friendly 2BHK near the university",
			Price:        18000,
			Type:         "Apartment",
			Bedrooms:     intPtr(2),
			Bathrooms:    intPtr(1),
			Area:         floatPtr(780),
			ImageURL:     "https://images.example.com/listings/6.jpg",
			Furnishing:   "Furnished",
			Availability: "Immediate",
			Amenities:    "Wifi, Laundry",
			Description:  "Walking distance from the university gates.",
			ContactName:  "Farhan Sheikh",
			ContactPhone: "+91-98100-11006",
			PostedDate:   base.AddDate(0, 0, -7),
			IsFeatured:   false,
			Tags:         "students,shared",
			CreatedAt:    base.AddDate(0, 0, -7),
		},
	}
}
