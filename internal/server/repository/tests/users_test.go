package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// Успех
func TestUsersRepository_Create_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ivan", "test@mail.com", "hash").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "confirmed"}).
				AddRow(id, "ivan", "test@mail.com", "hash", now, false),
		)

	got, err := repo.Create(context.Background(), "ivan", "test@mail.com", "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id || got.Email != "test@mail.com" || got.Confirmed {
		t.Fatalf("unexpected user: %+v", got)
	}
}

// Такой пользователь уже есть
func TestUsersRepository_Create_AlreadyExists(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	pgErr := &pgconn.PgError{
		Code: "23505", // unique_violation
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(pgErr)

	_, err := repo.Create(context.Background(), "ivan", "test@mail.com", "hash")

	if err != serr.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

// Ошибка сервера
func TestUsersRepository_Create_InternalError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), "ivan", "test@mail.com", "hash")

	if err != serr.ErrInternal {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

// поиск по email
func TestUsersRepository_GetByEmail_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, refresh_token, confirmed, avatar`).
		WithArgs("test@mail.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "refresh_token", "confirmed", "avatar"}).
				AddRow(id, "ivan", "test@mail.com", "hash", now, "refresh", true, nil),
		)

	got, err := repo.GetByEmail(context.Background(), "test@mail.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id || !got.Confirmed {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.RefreshToken == nil || *got.RefreshToken != "refresh" {
		t.Fatalf("expected refresh token, got %v", got.RefreshToken)
	}
	if got.Avatar != nil {
		t.Fatalf("expected nil avatar, got %v", *got.Avatar)
	}
}

// не найден по email
func TestUsersRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, refresh_token, confirmed, avatar`).
		WithArgs("test@mail.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "test@mail.com")

	if err != serr.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// сохранение refresh-токена
func TestUsersRepository_UpdateRefreshToken_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	id := uuid.New()
	token := "new-refresh"

	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WithArgs(id, &token).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), id, &token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// сброс refresh-токена (nil)
func TestUsersRepository_UpdateRefreshToken_Clear(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	id := uuid.New()

	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WithArgs(id, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), id, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// подтверждение email
func TestUsersRepository_MarkConfirmed_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectExec(`UPDATE users SET confirmed=true`).
		WithArgs("test@mail.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkConfirmed(context.Background(), "test@mail.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// обновление аватара возвращает свежего пользователя
func TestUsersRepository_UpdateAvatar_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	id := uuid.New()
	now := time.Now()
	url := "http://minio/avatars/" + id.String()

	mock.ExpectExec(`UPDATE users SET avatar`).
		WithArgs("test@mail.com", url).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, refresh_token, confirmed, avatar`).
		WithArgs("test@mail.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "refresh_token", "confirmed", "avatar"}).
				AddRow(id, "ivan", "test@mail.com", "hash", now, nil, true, url),
		)

	got, err := repo.UpdateAvatar(context.Background(), "test@mail.com", url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Avatar == nil || *got.Avatar != url {
		t.Fatalf("expected avatar %q, got %v", url, got.Avatar)
	}
}
