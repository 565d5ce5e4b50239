package rest

import (
	"time"

	"home-finder-service/internal/core/domain"
)

// PropertyResponse is the listing card shape the frontend consumes.
type PropertyResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	Type         string    `json:"type"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Bathrooms    *int      `json:"bathrooms,omitempty"`
	Area         *float64  `json:"area,omitempty"`
	ImageURL     string    `json:"imageUrl"`
	Furnishing   string    `json:"furnishing"`
	Availability string    `json:"availability"`
	Amenities    string    `json:"amenities"`
	Description  string    `json:"description"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	PostedDate   time.Time `json:"postedDate"`
	IsFeatured   bool      `json:"isFeatured"`
	Tags         string    `json:"tags"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Type:         p.Type,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		ImageURL:     p.ImageURL,
		Furnishing:   p.Furnishing,
		Availability: p.Availability,
		Amenities:    p.Amenities,
		Description:  p.Description,
		ContactName:  p.ContactName,
		ContactPhone: p.ContactPhone,
		PostedDate:   p.PostedDate,
		IsFeatured:   p.IsFeatured,
		Tags:         p.Tags,
	}
}

func toPropertyResponses(properties []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		out[i] = toPropertyResponse(p)
	}
	return out
}

// PaginatedPropertiesResponse is the search page shape.
type PaginatedPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      int                `json:"total"`
	HasMore    bool               `json:"hasMore"`
	Degraded   bool               `json:"degraded,omitempty"`
}

// UserResponse is the user shape returned by the user endpoints.
type UserResponse struct {
	ID        int64     `json:"id"`
	ClerkID   string    `json:"clerkId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		ClerkID:   u.ClerkID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// PaginatedUsersResponse is the user listing shape.
type PaginatedUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// CreateUserRequest is the body for POST /api/v1/users.
type CreateUserRequest struct {
	ClerkID   string `json:"clerkId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateUserRequest is the body for PUT /api/v1/users/{id}. Absent
// fields stay untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// AddFavoriteRequest is the body for POST /api/v1/users/favorites.
type AddFavoriteRequest struct {
	PropertyID int64 `json:"propertyId"`
}

// FavoriteStatusResponse reports whether one property is favorited.
type FavoriteStatusResponse struct {
	PropertyID int64 `json:"propertyId"`
	Favorited  bool  `json:"favorited"`
}

// identityWebhookPayload is the identity provider webhook body. Email
// addresses arrive as a list plus a pointer at the primary one.
type identityWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		PrimaryEmailID string `json:"primary_email_address_id"`
		EmailAddresses []struct {
			ID           string `json:"id"`
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func (p identityWebhookPayload) primaryEmail() string {
	for _, e := range p.Data.EmailAddresses {
		if e.ID == p.Data.PrimaryEmailID {
			return e.EmailAddress
		}
	}
	if len(p.Data.EmailAddresses) > 0 {
		return p.Data.EmailAddresses[0].EmailAddress
	}
	return ""
}
