// File: services/dining/cache.go
package dining

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cmueats/models"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when no snapshot is cached.
var ErrCacheMiss = errors.New("location snapshot not cached")

type LocationCache interface {
	SetSnapshot(ctx context.Context, snapshot models.LocationSnapshot) error
	GetSnapshot(ctx context.Context) (*models.LocationSnapshot, error)
}

type RedisLocationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocationCache(client *redis.Client, ttl time.Duration) LocationCache {
	return &RedisLocationCache{client: client, ttl: ttl}
}

const snapshotKey = "dining:locations:snapshot"

func (c *RedisLocationCache) SetSnapshot(ctx context.Context, snapshot models.LocationSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey, data, c.ttl).Err()
}

func (c *RedisLocationCache) GetSnapshot(ctx context.Context) (*models.LocationSnapshot, error) {
	val, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var snapshot models.LocationSnapshot
	if err := json.Unmarshal(val, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
