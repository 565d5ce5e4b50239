package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"home-finder-service/internal/constants"
	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/contracts"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
	usecases_port "home-finder-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const listingEventVersion = "1.0.0"

// listingEventDTO is the wire shape of a listing pipeline message.
type listingEventDTO struct {
	Type       string              `json:"type"`
	PropertyID int64               `json:"propertyId"`
	Property   *listingPropertyDTO `json:"property,omitempty"`
}

type listingPropertyDTO struct {
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

func toDomainListingEvent(dto listingEventDTO) domain.ListingEvent {
	event := domain.ListingEvent{
		Type:       dto.Type,
		PropertyID: dto.PropertyID,
	}
	if dto.Property != nil {
		event.Property = &domain.Property{
			ID:           dto.Property.ID,
			Title:        dto.Property.Title,
			Price:        dto.Property.Price,
			Type:         dto.Property.Type,
			Bedrooms:     dto.Property.Bedrooms,
			Bathrooms:    dto.Property.Bathrooms,
			Area:         dto.Property.Area,
			ImageURL:     dto.Property.ImageURL,
			Furnishing:   dto.Property.Furnishing,
			Availability: dto.Property.Availability,
			Amenities:    dto.Property.Amenities,
			Description:  dto.Property.Description,
			ContactName:  dto.Property.ContactName,
			ContactPhone: dto.Property.ContactPhone,
			PostedDate:   dto.Property.PostedDate,
			IsFeatured:   dto.Property.IsFeatured,
			Tags:         dto.Property.Tags,
		}
	}
	return event
}

// ListingEventsConsumerAdapter is the inbound adapter listening to the
// listing pipeline queue and feeding events into the ingest use case.
type ListingEventsConsumerAdapter struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase usecases_port.IngestListingUseCasePort
	logger  port.LoggerPort
	done    chan struct{}
}

func NewListingEventsConsumerAdapter(
	amqpURL string,
	useCase usecases_port.IngestListingUseCasePort,
	logger port.LoggerPort,
) (*ListingEventsConsumerAdapter, error) {
	if useCase == nil {
		return nil, fmt.Errorf("rabbitmq adapter: useCase cannot be nil")
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := channel.ExchangeDeclare(constants.ListingExchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	queue, err := channel.QueueDeclare(constants.QueueListingEvents, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, constants.RoutingKeyListingEvents, constants.ListingExchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	if err := channel.Qos(10, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &ListingEventsConsumerAdapter{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

// Start consumes listing events until the context is cancelled or the
// channel closes.
func (a *ListingEventsConsumerAdapter) Start(ctx context.Context) error {
	deliveries, err := a.channel.Consume(constants.QueueListingEvents, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	a.logger.Info("Listing events consumer started.", port.Fields{
		"queue": constants.QueueListingEvents,
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("rabbitmq deliveries channel closed")
			}
			a.handleDelivery(d)
		}
	}
}

func (a *ListingEventsConsumerAdapter) handleDelivery(d amqp.Delivery) {
	traceID, _ := d.Headers["x-trace-id"].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"message_id":   d.MessageId,
		"adapter_name": "ListingEventsConsumerAdapter",
	})

	ctx := context.Background()
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	if err := contracts.ValidateEvent("ListingEvent", listingEventVersion, d.Body); err != nil {
		// A malformed message will never become valid. Drop it.
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		d.Nack(false, false)
		return
	}

	var dto listingEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		msgLogger.Error("Failed to unmarshal listing event. Rejecting.", err, nil)
		d.Nack(false, false)
		return
	}

	if err := a.useCase.Execute(ctx, toDomainListingEvent(dto)); err != nil {
		// Store failures are retryable. Put the message back.
		msgLogger.Error("Failed to ingest listing event, requeueing.", err, nil)
		d.Nack(false, true)
		return
	}

	d.Ack(false)
}

// Close stops the consumer and tears down the connection.
func (a *ListingEventsConsumerAdapter) Close() error {
	close(a.done)
	if err := a.channel.Close(); err != nil {
		a.conn.Close()
		return err
	}
	return a.conn.Close()
}
