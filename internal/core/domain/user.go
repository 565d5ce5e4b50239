package domain

import (
	"regexp"
	"time"
)

// User is the application-side record for an identity issued by the
// external auth provider. ClerkID is the provider's identifier and maps
// one-to-one onto a User row; ID is the internal key.
type User struct {
	ID        int64
	ClerkID   string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// NewUser carries the fields required to create a user record.
type NewUser struct {
	ClerkID   string
	Email     string
	FirstName string
	LastName  string
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// Sort fields accepted by the user listing.
const (
	UserSortByCreatedAt = "created_at"
	UserSortByFirstName = "first_name"
	UserSortByLastName  = "last_name"
	UserSortByEmail     = "email"
)

// UserFilters is the filter specification for listing users.
type UserFilters struct {
	Email     string
	FirstName string
	LastName  string
	SortBy    string
	SortOrder string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
