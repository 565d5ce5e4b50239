package redis_adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"

	"github.com/redis/go-redis/v9"
)

// PropertyCacheAdapter keeps recently served search pages in Redis so
// reads can survive a database outage. Cached pages are served only
// when the primary store fails, marked degraded.
type PropertyCacheAdapter struct {
	client *redis.Client
	ttl    time.Duration
}

type cacheKeyPayload struct {
	Filters domain.PropertyFilters `json:"filters"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

func NewPropertyCacheAdapter(client *redis.Client, ttl time.Duration) (*PropertyCacheAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &PropertyCacheAdapter{client: client, ttl: ttl}, nil
}

// pageKey derives a stable key from the full query shape. Two requests
// with the same filters, limit and offset share one cache entry.
func pageKey(filters domain.PropertyFilters, limit, offset int) (string, error) {
	raw, err := json.Marshal(cacheKeyPayload{Filters: filters, Limit: limit, Offset: offset})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key payload: %w", err)
	}
	sum := sha256.Sum256(raw)
	return "properties:page:" + hex.EncodeToString(sum[:]), nil
}

// GetPage returns the cached page, or (nil, nil) on a miss.
func (a *PropertyCacheAdapter) GetPage(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	key, err := pageKey(filters, limit, offset)
	if err != nil {
		return nil, err
	}

	raw, err := a.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached page: %w", err)
	}

	var page domain.PaginatedProperties
	if err := json.Unmarshal(raw, &page); err != nil {
		logger.Warn("Dropping undecodable cached page.", port.Fields{
			"component": "PropertyCacheAdapter",
			"key":       key,
		})
		return nil, nil
	}
	return &page, nil
}

// SetPage stores a freshly served page under its query key.
func (a *PropertyCacheAdapter) SetPage(ctx context.Context, filters domain.PropertyFilters, limit, offset int, page *domain.PaginatedProperties) error {
	key, err := pageKey(filters, limit, offset)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page for cache: %w", err)
	}

	if err := a.client.Set(ctx, key, raw, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached page: %w", err)
	}
	return nil
}
