// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"bookwise/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient carries pub/sub traffic: the booking event stream and per-user rooms.
	CacheClient *redis.Client
	// AuthCacheClient holds the access-token blacklist.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis connects the cache and auth clients.
func InitRedis() error {
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if AuthCacheClient, err = newRedisClient(config.AppConfig.RedisAuthDB); err != nil {
		return err
	}
	return nil
}

// CloseRedis closes whichever clients were opened.
func CloseRedis() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
