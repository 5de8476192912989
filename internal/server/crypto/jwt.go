// Package crypto содержит криптографические примитивы сервера.
//
// В частности, пакет отвечает за:
//   - генерацию и подпись JWT-токенов трёх видов (access, refresh, email);
//   - настройку параметров токенов (issuer, audience, TTL);
//   - декодирование токенов с проверкой вида (claim "scope").
package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenScope — вид JWT-токена, записывается в claim "scope".
//
// Вид проверяется при декодировании: refresh-токен нельзя использовать как
// access и наоборот.
type TokenScope string

const (
	ScopeAccess  TokenScope = "access_token"
	ScopeRefresh TokenScope = "refresh_token"
	ScopeEmail   TokenScope = "email_token"
)

// ErrWrongScope возвращается, когда токен валиден, но имеет другой scope.
var ErrWrongScope = errors.New("wrong token scope")

// JWTConfig описывает параметры генерации и проверки JWT.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен).
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
	// RefreshTTL — срок жизни refresh-токена.
	RefreshTTL time.Duration
	// EmailTokenTTL — срок жизни токена подтверждения email.
	EmailTokenTTL time.Duration
}

// scopedClaims — RegisteredClaims плюс claim "scope" с видом токена.
type scopedClaims struct {
	Scope TokenScope `json:"scope"`
	jwt.RegisteredClaims
}

// NewToken создаёт и подписывает JWT указанного вида.
//
// Subject токена — email пользователя. TTL берётся из конфига по scope.
// Используется алгоритм подписи HS256.
func NewToken(email string, scope TokenScope, cfg JWTConfig) (string, error) {
	now := time.Now()

	var ttl time.Duration
	switch scope {
	case ScopeAccess:
		ttl = cfg.AccessTTL
	case ScopeRefresh:
		ttl = cfg.RefreshTTL
	case ScopeEmail:
		ttl = cfg.EmailTokenTTL
	default:
		return "", ErrWrongScope
	}

	claims := scopedClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  []string{cfg.Audience},
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// DecodeToken проверяет подпись и срок жизни токена, сверяет scope
// и возвращает email из Subject.
//
// Ошибки:
//   - ErrWrongScope, если токен другого вида;
//   - ошибки библиотеки jwt (подпись, exp и т.д.).
func DecodeToken(tokenStr string, scope TokenScope, cfg JWTConfig) (string, error) {
	claims := &scopedClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return "", err
	}

	if claims.Scope != scope {
		return "", ErrWrongScope
	}
	return claims.Subject, nil
}
