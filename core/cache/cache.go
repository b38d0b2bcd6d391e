package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"caseload-api/core/config"
	"caseload-api/core/constants"
	"caseload-api/core/logger"
)

type Cache struct {
	client *redis.Client
}

var instance *Cache

// Init connects to Redis and stores the shared client.
func Init(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", "addr", cfg.Addr, "error", err)
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	instance = &Cache{client: client}
	logger.Info("Redis cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	return instance, nil
}

func Get() *Cache {
	return instance
}

func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

// DelByPrefix removes all keys under prefix. Used for day-view invalidation.
func (c *Cache) DelByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// MarkReminderSent sets the dedupe key for a scheduled reminder dispatch.
// Returns false when the key already existed (the reminder was sent before).
func (c *Cache) MarkReminderSent(ctx context.Context, eventID string, leadMinutes int) (bool, error) {
	key := fmt.Sprintf("%s%s:%d", constants.CacheKeyReminderSent, eventID, leadMinutes)
	ok, err := c.client.SetNX(ctx, key, "1", time.Duration(constants.ReminderDedupeTTLHours)*time.Hour).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ClearReminderSent drops dedupe keys for an event, used after reschedules so
// the new times can fire.
func (c *Cache) ClearReminderSent(ctx context.Context, eventID string) error {
	return c.DelByPrefix(ctx, constants.CacheKeyReminderSent+eventID)
}
