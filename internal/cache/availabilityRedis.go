package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

// AvailabilityCache хранит снимки занятых мест в Redis. Кэш обслуживает
// только читающие запросы: координатор никогда не опирается на него при
// проверке конфликтов перед фиксацией
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func availabilityKey(eventID int64) string {
	return fmt.Sprintf("availability:%d", eventID)
}

func (c *AvailabilityCache) Get(ctx context.Context, eventID int64) (*entity.SeatAvailability, error) {
	data, err := c.client.Get(ctx, availabilityKey(eventID)).Result()
	if err != nil {
		return nil, err
	}

	var snapshot entity.SeatAvailability
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, snapshot *entity.SeatAvailability) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, availabilityKey(snapshot.EventID), data, c.ttl).Err()
}

func (c *AvailabilityCache) Delete(ctx context.Context, eventID int64) error {
	return c.client.Del(ctx, availabilityKey(eventID)).Err()
}
