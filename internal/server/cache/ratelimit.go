package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateLimitPrefix — префикс ключей счётчиков rate limit в Redis.
const rateLimitPrefix = "ratelimit:"

// RateLimitResult — результат проверки лимита.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// fixedWindowScript — Lua-скрипт фиксированного окна.
//
// Атомарно инкрементирует счётчик окна и выставляет TTL при первом запросе.
// Возвращает текущее значение счётчика и остаток TTL окна в секундах.
var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window = tonumber(ARGV[1]) -- размер окна в секундах

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('EXPIRE', key, window)
	end

	local ttl = redis.call('TTL', key)
	return {count, ttl}
`)

// CheckRouteLimit проверяет лимит запросов клиента на конкретный маршрут.
//
// Квота: не более times запросов за window. Ключ — клиент (IP или user id)
// плюс маршрут, клиент хэшируется, чтобы не хранить сырые IP.
// При ошибке Redis лимит пропускает запрос (fail open).
func (c *Cache) CheckRouteLimit(ctx context.Context, client, route string, times int, window time.Duration) (*RateLimitResult, error) {
	key := rateLimitPrefix + hashClient(client) + ":" + route

	result, err := fixedWindowScript.Run(ctx, c.client,
		[]string{key},
		int(window.Seconds()),
	).Int64Slice()

	if err != nil {
		// fail open — Redis недоступен, запрос пропускаем
		return &RateLimitResult{Allowed: true, Remaining: int64(times)}, nil
	}

	count := result[0]
	ttl := result[1]

	if count > int64(times) {
		return &RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: time.Duration(ttl) * time.Second,
		}, nil
	}

	return &RateLimitResult{
		Allowed:   true,
		Remaining: int64(times) - count,
	}, nil
}

// hashClient хэширует идентификатор клиента (обычно IP) — в Redis
// попадает усечённый SHA256, а не сырой адрес.
func hashClient(client string) string {
	hash := sha256.Sum256([]byte(client))
	return hex.EncodeToString(hash[:8])
}
