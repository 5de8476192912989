package service

import (
	"context"
	"io"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// UsersService — операции над профилем текущего пользователя.
type UsersService struct {
	users   UsersRepo
	avatars AvatarStore
}

// NewUsersService создаёт UsersService. avatars может быть nil —
// тогда загрузка аватаров недоступна.
func NewUsersService(users UsersRepo, avatars AvatarStore) *UsersService {
	return &UsersService{users: users, avatars: avatars}
}

// Me возвращает профиль пользователя по email из access-токена.
func (s *UsersService) Me(ctx context.Context, email string) (models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// UpdateAvatar загружает файл аватара в объектное хранилище
// и сохраняет публичный URL в профиле пользователя.
func (s *UsersService) UpdateAvatar(ctx context.Context, email, contentType string, body io.Reader) (models.User, error) {
	if s.avatars == nil {
		return models.User{}, serr.ErrInternal
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}

	url, err := s.avatars.Upload(ctx, user.ID, contentType, body)
	if err != nil {
		return models.User{}, serr.ErrInternal
	}

	return s.users.UpdateAvatar(ctx, email, url)
}
