package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

var contactCols = []string{"id", "first_name", "last_name", "email", "phone_number", "birthday", "additional_data", "user_id"}

func testFields() models.ContactFields {
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	return models.ContactFields{
		FirstName:   "Ivan",
		LastName:    "Petrov",
		Email:       "ivan@mail.com",
		PhoneNumber: "+380501234567",
		Birthday:    &birthday,
	}
}

// страница контактов владельца
func TestContactsRepository_List_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	owner := uuid.New()
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).
		WithArgs(owner, 0, 100).
		WillReturnRows(
			sqlmock.NewRows(contactCols).
				AddRow(id, "Ivan", "Petrov", "ivan@mail.com", "+380501234567", nil, nil, owner),
		)

	got, err := repo.List(context.Background(), owner, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != id {
		t.Fatalf("unexpected contacts: %+v", got)
	}
	if got[0].Birthday != nil {
		t.Fatalf("expected nil birthday")
	}
}

// контакт по id
func TestContactsRepository_Get_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	owner := uuid.New()
	id := uuid.New()
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).
		WithArgs(id, owner).
		WillReturnRows(
			sqlmock.NewRows(contactCols).
				AddRow(id, "Ivan", "Petrov", "ivan@mail.com", "+380501234567", birthday, "notes", owner),
		)

	got, err := repo.Get(context.Background(), id, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id || got.UserID != owner {
		t.Fatalf("unexpected contact: %+v", got)
	}
	if got.Birthday == nil || !got.Birthday.Equal(birthday) {
		t.Fatalf("unexpected birthday: %v", got.Birthday)
	}
	if got.AdditionalData == nil || *got.AdditionalData != "notes" {
		t.Fatalf("unexpected additional_data: %v", got.AdditionalData)
	}
}

// чужой контакт не находится
func TestContactsRepository_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), uuid.New(), uuid.New())

	if err != serr.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// создание контакта
func TestContactsRepository_Create_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	owner := uuid.New()
	id := uuid.New()
	fields := testFields()

	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs(fields.FirstName, fields.LastName, fields.Email, fields.PhoneNumber, fields.Birthday, fields.AdditionalData, owner).
		WillReturnRows(
			sqlmock.NewRows(contactCols).
				AddRow(id, fields.FirstName, fields.LastName, fields.Email, fields.PhoneNumber, *fields.Birthday, nil, owner),
		)

	got, err := repo.Create(context.Background(), owner, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id || got.Email != fields.Email {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

// email контакта уже занят
func TestContactsRepository_Create_AlreadyExists(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	pgErr := &pgconn.PgError{
		Code: "23505", // unique_violation
	}

	mock.ExpectQuery(`INSERT INTO contacts`).
		WillReturnError(pgErr)

	_, err := repo.Create(context.Background(), uuid.New(), testFields())

	if err != serr.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

// полная перезапись полей
func TestContactsRepository_Update_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	owner := uuid.New()
	id := uuid.New()
	fields := testFields()

	mock.ExpectQuery(`UPDATE contacts`).
		WithArgs(id, owner, fields.FirstName, fields.LastName, fields.Email, fields.PhoneNumber, fields.Birthday, fields.AdditionalData).
		WillReturnRows(
			sqlmock.NewRows(contactCols).
				AddRow(id, fields.FirstName, fields.LastName, fields.Email, fields.PhoneNumber, *fields.Birthday, nil, owner),
		)

	got, err := repo.Update(context.Background(), id, owner, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

// обновление несуществующего контакта
func TestContactsRepository_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	mock.ExpectQuery(`UPDATE contacts`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), uuid.New(), uuid.New(), testFields())

	if err != serr.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// удаление возвращает удалённую запись
func TestContactsRepository_Delete_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	owner := uuid.New()
	id := uuid.New()

	mock.ExpectQuery(`DELETE FROM contacts`).
		WithArgs(id, owner).
		WillReturnRows(
			sqlmock.NewRows(contactCols).
				AddRow(id, "Ivan", "Petrov", "ivan@mail.com", "+380501234567", nil, nil, owner),
		)

	got, err := repo.Delete(context.Background(), id, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

// удаление несуществующего контакта
func TestContactsRepository_Delete_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	mock.ExpectQuery(`DELETE FROM contacts`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), uuid.New(), uuid.New())

	if err != serr.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// поиск по подстрокам
func TestContactsRepository_Search_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	owner := uuid.New()
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).
		WithArgs("Iva", "", "").
		WillReturnRows(
			sqlmock.NewRows(contactCols).
				AddRow(id, "Ivan", "Petrov", "ivan@mail.com", "+380501234567", nil, nil, owner),
		)

	got, err := repo.Search(context.Background(), "Iva", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "Ivan" {
		t.Fatalf("unexpected contacts: %+v", got)
	}
}

// дни рождения: пустой результат — это пустой срез, не nil
func TestContactsRepository_UpcomingBirthdays_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewContactsRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).
		WillReturnRows(sqlmock.NewRows(contactCols))

	got, err := repo.UpcomingBirthdays(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}
