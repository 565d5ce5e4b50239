package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"x+tag@host.io",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"no-at.example.com",
		"two@@example.com",
		"spaces in@example.com",
		"nodot@example",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
