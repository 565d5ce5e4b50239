package domain

// Identity event types delivered by the auth provider, via webhook or
// redelivered by its retry mechanism. Processing must stay idempotent.
const (
	IdentityUserCreated = "user.created"
	IdentityUserUpdated = "user.updated"
	IdentityUserDeleted = "user.deleted"
)

// IdentityEvent is the normalized form of a provider event after
// signature verification and payload extraction.
type IdentityEvent struct {
	Type      string
	ClerkID   string
	Email     string
	FirstName string
	LastName  string
}

// Listing event types published by the listing-management pipeline.
const (
	ListingCreated = "listing.created"
	ListingUpdated = "listing.updated"
	ListingRemoved = "listing.removed"
)

// ListingEvent is a broker message driving the property store.
// Property is nil for listing.removed.
type ListingEvent struct {
	Type       string
	PropertyID int64
	Property   *Property
}
