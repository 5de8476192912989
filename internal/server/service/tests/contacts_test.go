package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

func newContactsService(t *testing.T) (*service.ContactsService, *mocks.MockContactsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	contacts := mocks.NewMockContactsRepo(ctrl)

	return service.NewContactsService(contacts), contacts
}

func validContactFields() models.ContactFields {
	return models.ContactFields{
		FirstName:   "Ivan",
		LastName:    "Petrov",
		Email:       "ivan@mail.com",
		PhoneNumber: "+380501234567",
	}
}

// отрицательный skip и нулевой limit нормализуются
func TestContactsService_List_NormalizesPaging(t *testing.T) {
	ctx := context.Background()
	svc, contacts := newContactsService(t)

	owner := uuid.New()

	contacts.EXPECT().
		List(ctx, owner, 0, service.DefaultContactsLimit).
		Return([]models.Contact{}, nil)

	_, err := svc.List(ctx, owner, -5, 0)

	require.NoError(t, err)
}

// слишком большой limit сбрасывается к дефолтному
func TestContactsService_List_CapsLimit(t *testing.T) {
	ctx := context.Background()
	svc, contacts := newContactsService(t)

	owner := uuid.New()

	contacts.EXPECT().
		List(ctx, owner, 10, service.DefaultContactsLimit).
		Return([]models.Contact{}, nil)

	_, err := svc.List(ctx, owner, 10, service.MaxContactsLimit+1)

	require.NoError(t, err)
}

// создание валидного контакта
func TestContactsService_Create_OK(t *testing.T) {
	ctx := context.Background()
	svc, contacts := newContactsService(t)

	owner := uuid.New()
	fields := validContactFields()

	contacts.EXPECT().
		Create(ctx, owner, fields).
		Return(models.Contact{ID: uuid.New(), UserID: owner}, nil)

	got, err := svc.Create(ctx, owner, fields)

	require.NoError(t, err)
	require.Equal(t, owner, got.UserID)
}

// контакт без имени не создаётся
func TestContactsService_Create_MissingFirstName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContactsService(t)

	fields := validContactFields()
	fields.FirstName = "  "

	_, err := svc.Create(ctx, uuid.New(), fields)

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// невалидный email контакта
func TestContactsService_Create_BadEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContactsService(t)

	fields := validContactFields()
	fields.Email = "not-an-email"

	_, err := svc.Create(ctx, uuid.New(), fields)

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// обновление тоже валидирует поля
func TestContactsService_Update_BadFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContactsService(t)

	fields := validContactFields()
	fields.PhoneNumber = ""

	_, err := svc.Update(ctx, uuid.New(), uuid.New(), fields)

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// ErrNotFound репозитория проходит наверх как есть
func TestContactsService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, contacts := newContactsService(t)

	id := uuid.New()
	owner := uuid.New()

	contacts.EXPECT().
		Get(ctx, id, owner).
		Return(models.Contact{}, serr.ErrNotFound)

	_, err := svc.Get(ctx, id, owner)

	require.ErrorIs(t, err, serr.ErrNotFound)
}
