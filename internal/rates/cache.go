package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "calchub:rates:snapshot"

// Cache is an optional redis tier for rate snapshots. It lets a restarting
// instance serve stale-but-present rates before its first upstream fetch.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a redis-backed snapshot cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{client: client, ttl: ttl}
}

type cachedSnapshot struct {
	USD       map[string]float64 `json:"usd"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Save stores the USD value map.
func (c *Cache) Save(ctx context.Context, usd map[string]float64, fetchedAt time.Time) error {
	data, err := json.Marshal(cachedSnapshot{USD: usd, FetchedAt: fetchedAt})
	if err != nil {
		return fmt.Errorf("marshal rate snapshot: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache rate snapshot: %w", err)
	}
	return nil
}

// Load retrieves the last stored snapshot.
func (c *Cache) Load(ctx context.Context) (map[string]float64, time.Time, error) {
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read rate snapshot: %w", err)
	}
	var snap cachedSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, time.Time{}, fmt.Errorf("unmarshal rate snapshot: %w", err)
	}
	if len(snap.USD) == 0 {
		return nil, time.Time{}, fmt.Errorf("cached rate snapshot is empty")
	}
	return snap.USD, snap.FetchedAt, nil
}
