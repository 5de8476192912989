package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/cache"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
)

// stubLimiter подменяет Redis в тестах middleware
type stubLimiter struct {
	result *cache.RateLimitResult
	err    error

	gotClient string
	gotRoute  string
}

func (s *stubLimiter) CheckRouteLimit(ctx context.Context, client, route string, times int, window time.Duration) (*cache.RateLimitResult, error) {
	s.gotClient = client
	s.gotRoute = route
	return s.result, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// запрос в пределах квоты проходит, заголовки квоты выставляются
func TestRateLimit_Allowed(t *testing.T) {
	t.Parallel()

	limiter := &stubLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 7}}

	mw := middleware.RateLimit(middleware.RateLimitConfig{
		Limiter: limiter,
		Times:   10,
		Window:  time.Minute,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "10" {
		t.Fatalf("expected X-RateLimit-Limit=10, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "7" {
		t.Fatalf("expected X-RateLimit-Remaining=7, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if limiter.gotRoute != "GET /api/contacts/" {
		t.Fatalf("unexpected route key: %q", limiter.gotRoute)
	}
}

// превышение квоты — 429 с Retry-After
func TestRateLimit_Exceeded(t *testing.T) {
	t.Parallel()

	limiter := &stubLimiter{result: &cache.RateLimitResult{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: 42 * time.Second,
	}}

	mw := middleware.RateLimit(middleware.RateLimitConfig{
		Limiter: limiter,
		Times:   10,
		Window:  time.Minute,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if rec.Header().Get("Retry-After") != "42" {
		t.Fatalf("expected Retry-After=42, got %q", rec.Header().Get("Retry-After"))
	}
}

// недоступный Redis не блокирует запросы (fail open)
func TestRateLimit_FailOpen(t *testing.T) {
	t.Parallel()

	limiter := &stubLimiter{err: errors.New("redis down")}

	mw := middleware.RateLimit(middleware.RateLimitConfig{
		Limiter: limiter,
		Times:   10,
		Window:  time.Minute,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}

// nil Limiter — middleware прозрачен
func TestRateLimit_NoLimiter(t *testing.T) {
	t.Parallel()

	mw := middleware.RateLimit(middleware.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}

// IP берётся из X-Forwarded-For (первый адрес)
func TestClientIP_ForwardedFor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")

	if got := middleware.ClientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected 10.0.0.1, got %q", got)
	}
}

func TestClientIP_RealIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.3")

	if got := middleware.ClientIP(req); got != "10.0.0.3" {
		t.Fatalf("expected 10.0.0.3, got %q", got)
	}
}
