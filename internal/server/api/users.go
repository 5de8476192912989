// HTTP-хендлеры профиля пользователя
package api

import (
	"net/http"

	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// maxAvatarBytes — лимит размера файла аватара (5 MiB).
const maxAvatarBytes = 5 << 20

// Me возвращает профиль текущего пользователя.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Router       /api/users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeContactErr(w, err, "me")
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// UpdateAvatar принимает multipart-файл "file", загружает его в объектное
// хранилище и сохраняет публичный URL в профиле.
//
// @Summary      Upload avatar
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Avatar image"
// @Success      200 {object} UserResponse
// @Failure      400 {object} ErrorResponse "Missing or oversized file"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Router       /api/users/avatar [patch]
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeContactErr(w, err, "update avatar")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}
	defer file.Close()

	updated, err := h.Svc.Users.UpdateAvatar(
		r.Context(),
		user.Email,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		h.Log.Sugar().Errorw("avatar upload failed", "error", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(updated))
}
