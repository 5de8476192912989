// Серверные модели предметной области
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись пользователя.
//
// RefreshToken хранит единственный действующий refresh-токен пользователя
// (nil — пользователь разлогинен). Avatar — URL загруженного аватара (nil —
// аватар не загружался). Пользователи не удаляются физически.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	RefreshToken *string
	Confirmed    bool
	Avatar       *string
}
