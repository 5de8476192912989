package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// Пагинация списка контактов по умолчанию.
const (
	DefaultContactsLimit = 100
	MaxContactsLimit     = 500
)

// ContactsService — тонкая бизнес-логика над репозиторием контактов:
// валидация полей и нормализация пагинации. Скоупинг по владельцу
// обеспечивает репозиторий.
type ContactsService struct {
	contacts ContactsRepo
}

// NewContactsService создаёт ContactsService.
func NewContactsService(contacts ContactsRepo) *ContactsService {
	return &ContactsService{contacts: contacts}
}

// validateFields проверяет обязательные поля контакта.
func validateFields(fields models.ContactFields) error {
	if strings.TrimSpace(fields.FirstName) == "" ||
		strings.TrimSpace(fields.LastName) == "" ||
		strings.TrimSpace(fields.PhoneNumber) == "" ||
		!emailRe.MatchString(fields.Email) {
		return serr.ErrInvalidInput
	}
	return nil
}

// List возвращает страницу контактов владельца.
// skip < 0 трактуется как 0, limit вне диапазона — как дефолтный.
func (s *ContactsService) List(ctx context.Context, owner uuid.UUID, skip, limit int) ([]models.Contact, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxContactsLimit {
		limit = DefaultContactsLimit
	}
	return s.contacts.List(ctx, owner, skip, limit)
}

// Get возвращает контакт владельца по id (ErrNotFound — нет или чужой).
func (s *ContactsService) Get(ctx context.Context, id, owner uuid.UUID) (models.Contact, error) {
	return s.contacts.Get(ctx, id, owner)
}

// Create создаёт контакт владельца.
func (s *ContactsService) Create(ctx context.Context, owner uuid.UUID, fields models.ContactFields) (models.Contact, error) {
	if err := validateFields(fields); err != nil {
		return models.Contact{}, err
	}
	return s.contacts.Create(ctx, owner, fields)
}

// Update полностью перезаписывает поля контакта владельца.
func (s *ContactsService) Update(ctx context.Context, id, owner uuid.UUID, fields models.ContactFields) (models.Contact, error) {
	if err := validateFields(fields); err != nil {
		return models.Contact{}, err
	}
	return s.contacts.Update(ctx, id, owner, fields)
}

// Delete удаляет контакт владельца и возвращает удалённую запись.
func (s *ContactsService) Delete(ctx context.Context, id, owner uuid.UUID) (models.Contact, error) {
	return s.contacts.Delete(ctx, id, owner)
}

// Search — глобальный поиск по подстрокам (см. репозиторий).
func (s *ContactsService) Search(ctx context.Context, firstName, lastName, email string) ([]models.Contact, error) {
	return s.contacts.Search(ctx, firstName, lastName, email)
}

// UpcomingBirthdays — дни рождения в ближайшие 7 дней (см. репозиторий).
func (s *ContactsService) UpcomingBirthdays(ctx context.Context) ([]models.Contact, error) {
	return s.contacts.UpcomingBirthdays(ctx)
}
