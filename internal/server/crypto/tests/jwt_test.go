package tests

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
)

func testJWTConfig() crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:        "contacts-api",
		Audience:      "contacts-api",
		SigningKey:    "test-signing-key-0123456789abcdef",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		EmailTokenTTL: 7 * 24 * time.Hour,
	}
}

// выпуск и декодирование access-токена
func TestJWT_AccessToken_RoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := crypto.NewToken("test@mail.com", crypto.ScopeAccess, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	email, err := crypto.DecodeToken(token, crypto.ScopeAccess, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "test@mail.com" {
		t.Fatalf("expected test@mail.com, got %q", email)
	}
}

// refresh-токен не проходит как access
func TestJWT_WrongScope(t *testing.T) {
	cfg := testJWTConfig()

	token, err := crypto.NewToken("test@mail.com", crypto.ScopeRefresh, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = crypto.DecodeToken(token, crypto.ScopeAccess, cfg)
	if !errors.Is(err, crypto.ErrWrongScope) {
		t.Fatalf("expected ErrWrongScope, got %v", err)
	}
}

// просроченный токен
func TestJWT_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTTL = -time.Minute

	token, err := crypto.NewToken("test@mail.com", crypto.ScopeAccess, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = crypto.DecodeToken(token, crypto.ScopeAccess, cfg)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

// токен с другим ключом подписи
func TestJWT_WrongKey(t *testing.T) {
	cfg := testJWTConfig()

	token, err := crypto.NewToken("test@mail.com", crypto.ScopeAccess, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := cfg
	other.SigningKey = "another-signing-key-0123456789abcd"

	_, err = crypto.DecodeToken(token, crypto.ScopeAccess, other)
	if err == nil {
		t.Fatalf("expected signature error, got nil")
	}
}

// неизвестный scope при выпуске
func TestJWT_NewToken_UnknownScope(t *testing.T) {
	_, err := crypto.NewToken("test@mail.com", crypto.TokenScope("garbage"), testJWTConfig())
	if !errors.Is(err, crypto.ErrWrongScope) {
		t.Fatalf("expected ErrWrongScope, got %v", err)
	}
}
