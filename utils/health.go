package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services. Fields for
// backends that are not configured stay nil.
type HealthStatus struct {
	Redis     *bool     `json:"redis,omitempty"`
	Mongo     *bool     `json:"mongo,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. Either client may be nil when its backend is not in use.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			var redisHealthy, mongoHealthy *bool

			if redisClient != nil {
				ok := redisClient.Ping(ctx).Err() == nil
				redisHealthy = &ok
			}
			if mongoClient != nil {
				ok := mongoClient.Ping(ctx, nil) == nil
				mongoHealthy = &ok
			}

			mu.Lock()
			currentHealth = HealthStatus{
				Redis:     redisHealthy,
				Mongo:     mongoHealthy,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
