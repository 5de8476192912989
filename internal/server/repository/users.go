package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет нового пользователя (пароль уже захэширован сервисом).
//
// Возвращает созданную запись с сгенерированным id.
// ErrAlreadyExists — email уже занят (unique_violation).
func (r *UsersRepository) Create(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id, username, email, password_hash, created_at, confirmed`,
		username, email, passwordHash,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.Confirmed)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return models.User{}, serr.ErrAlreadyExists
			}
		}
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// GetByEmail возвращает пользователя по email или ErrNotFound.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var (
		u            models.User
		refreshToken sql.NullString
		avatar       sql.NullString
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, refresh_token, confirmed, avatar
		   FROM users
		  WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &refreshToken, &u.Confirmed, &avatar)

	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}

	if refreshToken.Valid {
		t := refreshToken.String
		u.RefreshToken = &t
	}
	if avatar.Valid {
		a := avatar.String
		u.Avatar = &a
	}

	return u, nil
}

// UpdateRefreshToken сохраняет новый refresh-токен пользователя.
// token == nil сбрасывает сохранённый токен (принудительный re-login).
func (r *UsersRepository) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token=$2 WHERE id=$1`,
		userID, token,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// MarkConfirmed помечает email пользователя подтверждённым.
func (r *UsersRepository) MarkConfirmed(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET confirmed=true WHERE email=$1`,
		email,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// UpdateAvatar сохраняет URL аватара и возвращает обновлённого пользователя.
func (r *UsersRepository) UpdateAvatar(ctx context.Context, email, url string) (models.User, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET avatar=$2 WHERE email=$1`,
		email, url,
	)
	if err != nil {
		return models.User{}, serr.ErrInternal
	}
	return r.GetByEmail(ctx, email)
}
