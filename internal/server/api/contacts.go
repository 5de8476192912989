// HTTP-хендлеры CRUD и поиска контактов
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// birthdayLayout — формат даты рождения в API (без времени).
const birthdayLayout = "2006-01-02"

// ContactRequest — тело запроса создания и полного обновления контакта.
//
// При обновлении каждое поле перезаписывает сохранённое значение: если
// birthday или additional_data не переданы, в БД запишется NULL.
type ContactRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	Birthday       *string `json:"birthday,omitempty"` // YYYY-MM-DD
	AdditionalData *string `json:"additional_data,omitempty"`
}

// ContactResponse — представление контакта в ответах API.
type ContactResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	Birthday       *string `json:"birthday,omitempty"`
	AdditionalData *string `json:"additional_data,omitempty"`
}

// toFields превращает запрос в типизированный набор полей.
// Ошибка — невалидный формат даты рождения.
func (req ContactRequest) toFields() (models.ContactFields, error) {
	fields := models.ContactFields{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		AdditionalData: req.AdditionalData,
	}
	if req.Birthday != nil {
		t, err := time.Parse(birthdayLayout, *req.Birthday)
		if err != nil {
			return models.ContactFields{}, serr.ErrInvalidInput
		}
		fields.Birthday = &t
	}
	return fields, nil
}

// newContactResponse собирает ContactResponse из модели.
func newContactResponse(c models.Contact) ContactResponse {
	resp := ContactResponse{
		ID:             c.ID.String(),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		PhoneNumber:    c.PhoneNumber,
		AdditionalData: c.AdditionalData,
	}
	if c.Birthday != nil {
		b := c.Birthday.Format(birthdayLayout)
		resp.Birthday = &b
	}
	return resp
}

func newContactListResponse(contacts []models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, newContactResponse(c))
	}
	return out
}

// writeContactErr — общий маппинг доменных ошибок контактов в HTTP-статусы.
func (h *Handler) writeContactErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrBadJSON):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
	case errors.Is(err, serr.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, err)
	case errors.Is(err, serr.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	default:
		h.Log.Sugar().Errorw(op+" failed", "error", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

// ListContacts возвращает страницу контактов текущего пользователя.
//
// Параметры запроса: skip (по умолчанию 0) и limit (по умолчанию 100).
//
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        skip  query int false "Offset"
// @Param        limit query int false "Page size"
// @Success      200 {array} ContactResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Router       /api/contacts/ [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeContactErr(w, err, "list contacts")
		return
	}

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	contacts, err := h.Svc.Contacts.List(r.Context(), user.ID, skip, limit)
	if err != nil {
		h.writeContactErr(w, err, "list contacts")
		return
	}

	writeJSON(w, http.StatusOK, newContactListResponse(contacts))
}

// GetContact возвращает один контакт текущего пользователя по id.
//
// Чужой или отсутствующий контакт — 404.
//
// @Summary      Get contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact id"
// @Success      200 {object} ContactResponse
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Router       /api/contacts/{id} [get]
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeContactErr(w, err, "get contact")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	contact, err := h.Svc.Contacts.Get(r.Context(), id, user.ID)
	if err != nil {
		h.writeContactErr(w, err, "get contact")
		return
	}

	writeJSON(w, http.StatusOK, newContactResponse(contact))
}

// CreateContact создаёт контакт текущего пользователя.
//
// @Summary      Create contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ContactRequest true "Contact fields"
// @Success      201 {object} ContactResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} ErrorResponse "Contact email already exists"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Router       /api/contacts/ [post]
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeContactErr(w, err, "create contact")
		return
	}

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	fields, err := req.toFields()
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	contact, err := h.Svc.Contacts.Create(r.Context(), user.ID, fields)
	if err != nil {
		h.writeContactErr(w, err, "create contact")
		return
	}

	writeJSON(w, http.StatusCreated, newContactResponse(contact))
}

// UpdateContact полностью перезаписывает поля контакта текущего пользователя.
//
// @Summary      Update contact
// @Description  Full update: every field of the stored contact is overwritten.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact id"
// @Param        request body ContactRequest true "Contact fields"
// @Success      200 {object} ContactResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      404 {object} ErrorResponse "Not found"
// @Router       /api/contacts/{id} [put]
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeContactErr(w, err, "update contact")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	fields, err := req.toFields()
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	contact, err := h.Svc.Contacts.Update(r.Context(), id, user.ID, fields)
	if err != nil {
		h.writeContactErr(w, err, "update contact")
		return
	}

	writeJSON(w, http.StatusOK, newContactResponse(contact))
}

// DeleteContact удаляет контакт текущего пользователя и возвращает его.
//
// @Summary      Delete contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact id"
// @Success      200 {object} ContactResponse
// @Failure      404 {object} ErrorResponse "Not found"
// @Router       /api/contacts/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeContactErr(w, err, "delete contact")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	contact, err := h.Svc.Contacts.Delete(r.Context(), id, user.ID)
	if err != nil {
		h.writeContactErr(w, err, "delete contact")
		return
	}

	writeJSON(w, http.StatusOK, newContactResponse(contact))
}

// SearchContacts ищет контакты по подстрокам имени, фамилии и email (AND).
//
// Поиск идёт по контактам всех пользователей — поведение исходной системы
// сохранено (см. DESIGN.md).
//
// @Summary      Search contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        first_name query string false "First name substring"
// @Param        last_name  query string false "Last name substring"
// @Param        email      query string false "Email substring"
// @Success      200 {array} ContactResponse
// @Router       /api/contacts/search/ [get]
func (h *Handler) SearchContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	contacts, err := h.Svc.Contacts.Search(
		r.Context(),
		q.Get("first_name"), q.Get("last_name"), q.Get("email"),
	)
	if err != nil {
		h.writeContactErr(w, err, "search contacts")
		return
	}

	writeJSON(w, http.StatusOK, newContactListResponse(contacts))
}

// UpcomingBirthdays возвращает контакты с днём рождения в ближайшие 7 дней.
//
// Выборка не ограничена владельцем и не обрабатывает переход через границу
// месяца — ограничения исходной системы сохранены (см. DESIGN.md).
//
// @Summary      Upcoming birthdays
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} ContactResponse
// @Router       /api/contacts/upcoming-birthdays/ [get]
func (h *Handler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Svc.Contacts.UpcomingBirthdays(r.Context())
	if err != nil {
		h.writeContactErr(w, err, "upcoming birthdays")
		return
	}

	writeJSON(w, http.StatusOK, newContactListResponse(contacts))
}
