package domain

import "errors"

// Sentinel errors returned from use cases. The REST layer maps these to
// HTTP statuses; adapters wrap lower-level failures around them.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrEmailInUse       = errors.New("email already in use")
	ErrClerkIDInUse     = errors.New("clerk id already in use")
	ErrStoreUnavailable = errors.New("property store unavailable")
	ErrInvalidInput     = errors.New("invalid input")
)
