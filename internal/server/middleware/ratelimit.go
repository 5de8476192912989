package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/cache"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

// RouteLimiter — то, что middleware ждёт от слоя cache.
// Интерфейс нужен, чтобы в тестах подменять Redis стабом.
type RouteLimiter interface {
	CheckRouteLimit(ctx context.Context, client, route string, times int, window time.Duration) (*cache.RateLimitResult, error)
}

// RateLimitConfig — параметры лимита на маршрут.
type RateLimitConfig struct {
	Limiter RouteLimiter
	Log     *logger.HTTPLogger
	Times   int           // квота запросов на окно
	Window  time.Duration // размер окна
}

// RateLimit возвращает middleware фиксированного окна: не более Times
// запросов за Window на клиента (IP) и маршрут.
//
// Превышение — 429 с заголовком Retry-After. При недоступном Redis
// запрос пропускается (fail open).
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			client := ClientIP(r)

			result, err := cfg.Limiter.CheckRouteLimit(
				r.Context(), client, r.Method+" "+r.URL.Path,
				cfg.Times, cfg.Window,
			)
			if err != nil {
				// fail open
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Times))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				if cfg.Log != nil {
					cfg.Log.Sugar().Warnw("rate limit exceeded",
						"endpoint", r.Method+" "+r.URL.Path,
					)
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				http.Error(w, serr.ErrRateLimited.Error(), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP определяет IP клиента с учётом прокси-заголовков.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// первый адрес в списке — клиент
		for i := range xff {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
