package tests

import (
	"time"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
)

// testConfig — общий конфиг для тестов сервисов.
// Лёгкие параметры argon2, чтобы тесты не тормозили.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:    "localhost",
			Port:    8080,
			BaseURL: "http://localhost:8080",
		},
		Auth: config.AuthConfig{
			Issuer:        "contacts-api",
			Audience:      "contacts-api",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    7 * 24 * time.Hour,
			EmailTokenTTL: 7 * 24 * time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "test-signing-key-0123456789abcdef",
			},
		},
		Password: config.PasswordConfig{
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 8 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
	}
}
