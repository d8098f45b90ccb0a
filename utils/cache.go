// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"agendly/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client (availability snapshots and the like).
var CacheClient *redis.Client

// InitCache initializes the Redis cache client using the configured cache DB.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the cache client, initializing it on first use.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
