package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact — запись контакта, принадлежащая ровно одному пользователю.
//
// Birthday и AdditionalData опциональны. UserID — владелец записи; при удалении
// пользователя контакты удаляются каскадно (FK в БД).
type Contact struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       *time.Time
	AdditionalData *string
	UserID         uuid.UUID
}

// ContactFields — типизированный набор полей для создания и полного обновления
// контакта. При обновлении каждое поле перезаписывает сохранённое значение
// как есть (никакого частичного merge).
type ContactFields struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       *time.Time
	AdditionalData *string
}
