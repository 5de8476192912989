package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
)

func testJWT() crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:        "issuer",
		Audience:      "audience",
		SigningKey:    "supersecretkeysupersecretkey123456",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		EmailTokenTTL: time.Hour,
	}
}

// next-хендлер, который проверяет email в контексте
func emailEcho(t *testing.T, want string) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := middleware.EmailFromContext(r.Context())
		if !ok {
			t.Fatalf("expected email in context")
		}
		if email != want {
			t.Fatalf("expected email %q, got %q", want, email)
		}
		w.WriteHeader(http.StatusOK)
	})
}

// валидный access-токен пропускается, email кладётся в контекст
func TestAuthMiddleware_OK(t *testing.T) {
	t.Parallel()

	v := middleware.NewJWTVerifier(testJWT())

	token, err := crypto.NewToken("test@mail.com", crypto.ScopeAccess, testJWT())
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	v.AuthMiddleware()(emailEcho(t, "test@mail.com")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}

// без заголовка Authorization — 401
func TestAuthMiddleware_MissingToken(t *testing.T) {
	t.Parallel()

	v := middleware.NewJWTVerifier(testJWT())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not be called")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

// refresh-токен не проходит auth middleware
func TestAuthMiddleware_RefreshScopeRejected(t *testing.T) {
	t.Parallel()

	v := middleware.NewJWTVerifier(testJWT())

	token, err := crypto.NewToken("test@mail.com", crypto.ScopeRefresh, testJWT())
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not be called")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestExtractBearer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"ok", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"empty", "", ""},
		{"no scheme", "abc", ""},
		{"wrong scheme", "Basic abc", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := middleware.ExtractBearer(tc.header); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
