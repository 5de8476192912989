// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// ContactsRepository отвечает за хранение контактов (PostgreSQL).
//
// CRUD-операции всегда ограничены владельцем (user_id). Search и
// UpcomingBirthdays намеренно ищут по всем пользователям — поведение
// исходной системы сохранено как есть.
type ContactsRepository struct {
	db *sql.DB
}

// NewContactsRepository создаёт новый ContactsRepository.
func NewContactsRepository(db *sql.DB) *ContactsRepository {
	return &ContactsRepository{db: db}
}

const contactColumns = `id, first_name, last_name, email, phone_number, birthday, additional_data, user_id`

// scanContact читает одну строку contacts в модель.
func scanContact(row interface{ Scan(...any) error }) (models.Contact, error) {
	var (
		c        models.Contact
		birthday sql.NullTime
		addData  sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber,
		&birthday, &addData, &c.UserID,
	)
	if err != nil {
		return models.Contact{}, err
	}
	if birthday.Valid {
		t := birthday.Time
		c.Birthday = &t
	}
	if addData.Valid {
		s := addData.String
		c.AdditionalData = &s
	}
	return c, nil
}

// List возвращает страницу контактов владельца.
//
// skip/limit — обычная пагинация, порядок записей — как отдала БД.
func (r *ContactsRepository) List(ctx context.Context, owner uuid.UUID, skip, limit int) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+`
		   FROM contacts
		  WHERE user_id=$1
		 OFFSET $2 LIMIT $3`,
		owner, skip, limit,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, serr.ErrInternal
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return contacts, nil
}

// Get возвращает контакт владельца по id.
//
// Чужой или отсутствующий контакт — ErrNotFound.
func (r *ContactsRepository) Get(ctx context.Context, id, owner uuid.UUID) (models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+`
		   FROM contacts
		  WHERE id=$1 AND user_id=$2`,
		id, owner,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Contact{}, serr.ErrNotFound
		}
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// Create сохраняет новый контакт владельца и возвращает его с id.
//
// ErrAlreadyExists — email контакта уже занят (unique_violation).
func (r *ContactsRepository) Create(ctx context.Context, owner uuid.UUID, fields models.ContactFields) (models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone_number, birthday, additional_data, user_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+contactColumns,
		fields.FirstName, fields.LastName, fields.Email, fields.PhoneNumber,
		fields.Birthday, fields.AdditionalData, owner,
	))
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return models.Contact{}, serr.ErrAlreadyExists
		}
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// Update полностью перезаписывает все поля контакта владельца.
//
// Каждое поле из fields попадает в соответствующую колонку как есть —
// частичного merge нет. Отсутствующий контакт — ErrNotFound, записи при
// этом не происходит.
func (r *ContactsRepository) Update(ctx context.Context, id, owner uuid.UUID, fields models.ContactFields) (models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx,
		`UPDATE contacts
		    SET first_name=$3,
		        last_name=$4,
		        email=$5,
		        phone_number=$6,
		        birthday=$7,
		        additional_data=$8
		  WHERE id=$1 AND user_id=$2
		 RETURNING `+contactColumns,
		id, owner,
		fields.FirstName, fields.LastName, fields.Email, fields.PhoneNumber,
		fields.Birthday, fields.AdditionalData,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Contact{}, serr.ErrNotFound
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return models.Contact{}, serr.ErrAlreadyExists
		}
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// Delete удаляет контакт владельца и возвращает удалённую запись.
//
// Отсутствующий контакт — ErrNotFound, ничего не удаляется.
func (r *ContactsRepository) Delete(ctx context.Context, id, owner uuid.UUID) (models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx,
		`DELETE FROM contacts
		  WHERE id=$1 AND user_id=$2
		 RETURNING `+contactColumns,
		id, owner,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Contact{}, serr.ErrNotFound
		}
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// Search ищет контакты по подстрокам имени, фамилии и email одновременно
// (AND, без учёта регистра). Пустая подстрока матчит всё.
//
// Поиск идёт по контактам ВСЕХ пользователей — так вела себя исходная
// система, поведение сохранено сознательно.
func (r *ContactsRepository) Search(ctx context.Context, firstName, lastName, email string) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+`
		   FROM contacts
		  WHERE first_name ILIKE '%' || $1 || '%'
		    AND last_name  ILIKE '%' || $2 || '%'
		    AND email      ILIKE '%' || $3 || '%'`,
		firstName, lastName, email,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, serr.ErrInternal
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return contacts, nil
}

// UpcomingBirthdays возвращает контакты, у которых день рождения в ближайшие
// 7 дней: месяц совпадает с текущим, а день лежит в [сегодня, сегодня+7].
//
// Переход через границу месяца НЕ обрабатывается (конец месяца "теряет"
// ближайшие дни следующего) — известное ограничение исходной системы,
// сохранено как есть. Выборка тоже не ограничена владельцем.
func (r *ContactsRepository) UpcomingBirthdays(ctx context.Context) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+`
		   FROM contacts
		  WHERE birthday IS NOT NULL
		    AND date_part('month', birthday) = date_part('month', now())
		    AND date_part('day', birthday) >= date_part('day', now())
		    AND date_part('day', birthday) <= date_part('day', now() + interval '7 days')`,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, serr.ErrInternal
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return contacts, nil
}
