// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"firstresponse/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient backs the per-browser session store when SESSION_BACKEND=redis.
var SessionCacheClient *redis.Client

// InitSessionCache connects to the session DB and verifies it with a ping.
func InitSessionCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Session): %w", err)
	}
	SessionCacheClient = client
	return nil
}

// GetSessionCacheClient returns the session client, or nil when Redis is not in use.
func GetSessionCacheClient() *redis.Client {
	return SessionCacheClient
}
