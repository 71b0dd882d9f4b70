package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ware71/CIAGA-sub002/pkg/common/config"
	"github.com/Ware71/CIAGA-sub002/pkg/common/logger"
)

// OpenRedis connects to the geocode cache. Returns nil when redis is
// unreachable; callers treat a nil client as "cache disabled".
func OpenRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.WithError(err).Warn("Redis unreachable, geocode caching disabled")
		_ = client.Close()
		return nil
	}

	logger.Log.Info("Connected to Redis")
	return client
}

func CloseRedis(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
