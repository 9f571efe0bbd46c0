package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest probe result for the stores the booking core
// depends on.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Cache     bool      `json:"cache"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	healthMu   sync.RWMutex
	lastHealth HealthStatus
)

// GetHealthStatus returns the most recent probe snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return lastHealth
}

// StartHealthMonitor pings mongo and the cache once a minute and keeps the
// latest snapshot in memory for the health endpoint. The endpoint never
// probes the stores itself.
func StartHealthMonitor(cache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			snap := HealthStatus{
				Mongo:     mongoClient.Ping(ctx, nil) == nil,
				Cache:     cache.Ping(ctx).Err() == nil,
				CheckedAt: time.Now(),
			}
			cancel()

			healthMu.Lock()
			lastHealth = snap
			healthMu.Unlock()
		}
	}()
}
