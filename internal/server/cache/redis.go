// Package cache реализует доступ к Redis.
//
// Сейчас Redis используется только для счётчиков rate limit —
// это единственное разделяемое между запросами изменяемое состояние.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache — обёртка над redis-клиентом.
type Cache struct {
	client *redis.Client
}

// New создаёт подключение к Redis по URL (redis://host:port/db)
// и проверяет его доступность (Ping).
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает подключение.
func (c *Cache) Close() error {
	return c.client.Close()
}
