package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisAvailabilityCache keeps availability listings for a few seconds.
// Listings are tolerant of stale reads: holds re-check the slot under
// lock, so a short TTL only bounds how stale the listing can look.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func availabilityKey(roomID uuid.UUID, from, to catalog.Date) string {
	return fmt.Sprintf("availability:%s:%s:%s", roomID, from, to)
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, roomID uuid.UUID, from, to catalog.Date) ([]*queries.SlotView, bool) {
	raw, err := c.client.Get(ctx, availabilityKey(roomID, from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("availability cache read failed", "error", err)
		}
		return nil, false
	}

	var slots []*queries.SlotView
	if err := json.Unmarshal(raw, &slots); err != nil {
		slog.Warn("availability cache entry corrupt, dropping", "error", err)
		return nil, false
	}
	return slots, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, roomID uuid.UUID, from, to catalog.Date, slots []*queries.SlotView) {
	raw, err := json.Marshal(slots)
	if err != nil {
		slog.Warn("availability cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, availabilityKey(roomID, from, to), raw, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", "error", err)
	}
}

// Invalidate drops every cached range for the room. SCAN over the
// room's key prefix keeps this O(keys for one room).
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, roomID uuid.UUID) {
	pattern := fmt.Sprintf("availability:%s:*", roomID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("availability cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("availability cache scan failed", "error", err)
	}
}

// NoopAvailabilityCache is used when Redis is not configured; every
// read falls through to the database.
type NoopAvailabilityCache struct{}

func NewNoopAvailabilityCache() *NoopAvailabilityCache { return &NoopAvailabilityCache{} }

func (*NoopAvailabilityCache) Get(context.Context, uuid.UUID, catalog.Date, catalog.Date) ([]*queries.SlotView, bool) {
	return nil, false
}

func (*NoopAvailabilityCache) Set(context.Context, uuid.UUID, catalog.Date, catalog.Date, []*queries.SlotView) {
}

func (*NoopAvailabilityCache) Invalidate(context.Context, uuid.UUID) {}
