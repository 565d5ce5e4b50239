package constants

// RabbitMQ topology for the listing ingest pipeline.
const (
	ListingExchange         = "listing_exchange"
	QueueListingEvents      = "listing_events"
	RoutingKeyListingEvents = "listing.events"
)
