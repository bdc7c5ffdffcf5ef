// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"cmueats/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient holds the location snapshot between polls.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. An unreachable Redis is logged
// but not fatal: the location service falls back to fetching directly.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("Redis (Cache) not reachable at %s: %v", config.AppConfig.RedisAddr, err)
	}
}

// GetCacheClient returns the cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
