package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"courtbot/config"
)

// BookingCacheClient is the Redis client backing the reservation store when
// STORE_BACKEND is "redis".
var BookingCacheClient *redis.Client

// InitBookingCache initializes the Redis client for the reservation store.
func InitBookingCache() {
	BookingCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBookingDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := BookingCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Bookings): %v", err)
	}
}

// GetBookingCacheClient returns the reservation store Redis client.
func GetBookingCacheClient() *redis.Client {
	if BookingCacheClient == nil {
		InitBookingCache()
	}
	return BookingCacheClient
}
