// HTTP-хендлеры регистрации, логина, refresh токенов и подтверждения email
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// SignupRequest описывает тело запроса регистрации пользователя.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse — публичное представление пользователя (без хэша пароля).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Confirmed bool      `json:"confirmed"`
	Avatar    *string   `json:"avatar,omitempty"`
}

// SignupResponse описывает успешный ответ регистрации.
type SignupResponse struct {
	User   UserResponse `json:"user"`
	Detail string       `json:"detail"`
}

// TokenResponse описывает ответ с парой токенов.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RequestEmailRequest — тело запроса повторной отправки письма.
type RequestEmailRequest struct {
	Email string `json:"email"`
}

// newUserResponse собирает UserResponse из модели.
func newUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Confirmed: u.Confirmed,
		Avatar:    u.Avatar,
	}
}

// Signup обрабатывает регистрацию пользователя.
//
// После регистрации в фоне уходит письмо со ссылкой подтверждения —
// результат отправки на ответ не влияет.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 409 Conflict: пользователь уже существует;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Sign up
// @Description  Creates a new user account and sends a confirmation email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup request"
// @Success      201 {object} SignupResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} ErrorResponse "Account already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	user, err := h.Svc.Auth.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, err)
		default:
			h.Log.Sugar().Error("signup failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	writeJSON(w, http.StatusCreated, SignupResponse{
		User:   newUserResponse(user),
		Detail: "User successfully created. Check your email for confirmation.",
	})
}

// Login обрабатывает вход пользователя и выдачу пары токенов.
//
// Тело запроса — form-данные (username=email, password), как у
// классической OAuth2 password-формы.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 401 Unauthorized: неизвестный email / email не подтверждён / неверный пароль;
//   - 400 Bad Request: невалидная форма;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Log in
// @Description  Authenticates a user by form credentials and returns a token pair.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "User email"
// @Param        password formData string true "Password"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} ErrorResponse "Invalid form"
// @Failure      401 {object} ErrorResponse "Invalid email / not confirmed / invalid password"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	pair, err := h.Svc.Auth.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrInvalidEmail),
			errors.Is(err, serr.ErrEmailNotConfirmed),
			errors.Is(err, serr.ErrInvalidPassword):
			WriteError(w, http.StatusUnauthorized, err)
		default:
			h.Log.Sugar().Error("login failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// Refresh обрабатывает обновление пары токенов по refresh-токену.
//
// Refresh-токен передаётся как bearer в заголовке Authorization.
// Несовпадение с сохранённым токеном сбрасывает его у пользователя —
// повторная попытка со старым токеном тоже получит 401.
//
// Ответы:
//   - 200 OK: успешное обновление токенов;
//   - 401 Unauthorized: refresh токен недействителен/просрочен/не совпал;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Refresh tokens
// @Description  Exchanges a valid refresh token (bearer) for a new token pair.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} TokenResponse
// @Failure      401 {object} ErrorResponse "Invalid refresh token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/refresh_token [get]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearer(r.Header.Get("Authorization"))
	if token == "" {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	pair, err := h.Svc.Auth.Refresh(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrUnauthorized), errors.Is(err, serr.ErrInvalidRefreshToken):
			WriteError(w, http.StatusUnauthorized, err)
		default:
			h.Log.Sugar().Error("refresh failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// ConfirmedEmail подтверждает email по токену из письма.
//
// Идемпотентна: для уже подтверждённого аккаунта возвращает сообщение
// "already confirmed" без ошибки.
//
// Ответы:
//   - 200 OK: подтверждено (или уже было подтверждено);
//   - 400 Bad Request: токен не расшифровался или email не найден;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Confirm email
// @Tags         auth
// @Produce      json
// @Param        token path string true "Email confirmation token"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Verification error"
// @Router       /api/auth/confirmed_email/{token} [get]
func (h *Handler) ConfirmedEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	already, err := h.Svc.Auth.ConfirmEmail(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrVerification):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Sugar().Error("confirm email failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	msg := "Email confirmed"
	if already {
		msg = "Your email is already confirmed"
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// RequestEmail повторно отправляет письмо подтверждения.
//
// Ответ одинаков для существующего и несуществующего email —
// существование аккаунта не раскрывается.
//
// @Summary      Re-send confirmation email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RequestEmailRequest true "Email"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Router       /api/auth/request_email [post]
func (h *Handler) RequestEmail(w http.ResponseWriter, r *http.Request) {
	var req RequestEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	already, err := h.Svc.Auth.RequestEmail(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Sugar().Error("request email failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	msg := "Check your email for confirmation."
	if already {
		msg = "Your email is already confirmed"
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
