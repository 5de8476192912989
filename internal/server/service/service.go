// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Contacts ContactsRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Contacts *ContactsService
	Users    *UsersService
}

// Deps — внешние зависимости сервисов (почта, хранилище аватаров, логгер).
// Mail и Avatars могут быть nil — тогда соответствующая функциональность
// тихо выключена (письма не шлются, аватары не грузятся).
type Deps struct {
	Mail    MailSender
	Avatars AvatarStore
	Log     *logger.HTTPLogger
}

// NewServices собирает все сервисы приложения.
func NewServices(repos Repositories, deps Deps, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, deps, cfg),
		Contacts: NewContactsService(repos.Contacts),
		Users:    NewUsersService(repos.Users, deps.Avatars),
	}
}

// UsersRepo — репозиторий пользователей.
type UsersRepo interface {
	Create(ctx context.Context, username, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	MarkConfirmed(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, email, url string) (models.User, error)
}

// ContactsRepo — репозиторий контактов (CRUD + поиск + дни рождения).
type ContactsRepo interface {
	List(ctx context.Context, owner uuid.UUID, skip, limit int) ([]models.Contact, error)
	Get(ctx context.Context, id, owner uuid.UUID) (models.Contact, error)
	Create(ctx context.Context, owner uuid.UUID, fields models.ContactFields) (models.Contact, error)
	Update(ctx context.Context, id, owner uuid.UUID, fields models.ContactFields) (models.Contact, error)
	Delete(ctx context.Context, id, owner uuid.UUID) (models.Contact, error)
	Search(ctx context.Context, firstName, lastName, email string) ([]models.Contact, error)
	UpcomingBirthdays(ctx context.Context) ([]models.Contact, error)
}

// MailSender — отправка писем подтверждения email.
type MailSender interface {
	SendConfirmation(ctx context.Context, to, username, token, baseURL string) error
}

// AvatarStore — загрузка аватаров в объектное хранилище.
type AvatarStore interface {
	Upload(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (string, error)
}
