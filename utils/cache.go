package utils

import (
	"context"
	"log"
	"time"

	"growthquest/config"

	"github.com/redis/go-redis/v9"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// ConciergeCacheClient holds per-user concierge conversation context.
	ConciergeCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
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

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitConciergeCache initializes the Redis client for concierge context.
func InitConciergeCache() {
	ConciergeCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisConciergeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ConciergeCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Concierge Cache): %v", err)
	}
}

// GetConciergeCacheClient returns the Redis client for concierge context.
func GetConciergeCacheClient() *redis.Client {
	if ConciergeCacheClient == nil {
		InitConciergeCache()
	}
	return ConciergeCacheClient
}
