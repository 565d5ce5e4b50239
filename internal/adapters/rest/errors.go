package rest

import (
	"errors"

	"home-finder-service/internal/core/domain"
)

func isInvalidInput(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput)
}

// statusForError maps domain errors onto HTTP statuses. Anything
// unmapped is a server-side failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return 400
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPropertyNotFound):
		return 404
	case errors.Is(err, domain.ErrEmailInUse), errors.Is(err, domain.ErrClerkIDInUse):
		return 409
	default:
		return 500
	}
}

// messageForError picks a response message. Domain errors are safe to
// show, internal ones are not.
func messageForError(err error, fallback string) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrPropertyNotFound):
		return "Property not found"
	case errors.Is(err, domain.ErrEmailInUse):
		return "Email is already in use"
	case errors.Is(err, domain.ErrClerkIDInUse):
		return "User already exists"
	default:
		return fallback
	}
}
