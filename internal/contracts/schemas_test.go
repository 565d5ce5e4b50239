package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateListingEventAcceptsWellFormedCreate(t *testing.T) {
	body := []byte(`{
		"type": "listing.created",
		"propertyId": 42,
		"property": {
			"id": 42,
			"title": "Sunny studio near the center",
			"price": 18500,
			"type": "Studio",
			"bedrooms": 1,
			"isFeatured": false
		}
	}`)

	assert.NoError(t, ValidateEvent("ListingEvent", "1.0.0", body))
}

func TestValidateListingEventAcceptsRemovalWithoutProperty(t *testing.T) {
	body := []byte(`{"type": "listing.removed", "propertyId": 42}`)

	assert.NoError(t, ValidateEvent("ListingEvent", "1.0.0", body))
}

func TestValidateListingEventRejectsCreateWithoutProperty(t *testing.T) {
	body := []byte(`{"type": "listing.created", "propertyId": 42}`)

	assert.Error(t, ValidateEvent("ListingEvent", "1.0.0", body))
}

func TestValidateListingEventRejectsUnknownType(t *testing.T) {
	body := []byte(`{"type": "listing.archived", "propertyId": 42}`)

	assert.Error(t, ValidateEvent("ListingEvent", "1.0.0", body))
}

func TestValidateListingEventRejectsNonJSONBody(t *testing.T) {
	assert.Error(t, ValidateEvent("ListingEvent", "1.0.0", []byte("not json")))
}

func TestValidateEventUnknownSchema(t *testing.T) {
	assert.Error(t, ValidateEvent("PaymentEvent", "1.0.0", []byte(`{}`)))
}

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "ListingEvent/1.0.0", generateKeyFromPath("events/listing/v1.json"))
	assert.Equal(t, "PriceChangeEvent/2.0.0", generateKeyFromPath("events/price-change/v2.json"))
	assert.Equal(t, "", generateKeyFromPath("events/broken.json"))
}
