package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей и письмо подтверждения email
//   - аутентификация (логин)
//   - выпуск access / refresh токенов (у пользователя хранится один refresh)
//   - обновление пары токенов по refresh
//   - подтверждение email по токену из письма
type AuthService struct {
	users UsersRepo
	mail  MailSender
	log   *logger.HTTPLogger

	pass    crypto.Argon2Params
	jwt     crypto.JWTConfig
	baseURL string
}

// TokenPair представляет пару access / refresh токенов.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, deps Deps, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		mail:  deps.Mail,
		log:   deps.Log,

		pass: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
		jwt: crypto.JWTConfig{
			Issuer:        cfg.Auth.Issuer,
			Audience:      cfg.Auth.Audience,
			SigningKey:    cfg.Auth.JWT.SigningKey,
			AccessTTL:     cfg.Auth.AccessTTL,
			RefreshTTL:    cfg.Auth.RefreshTTL,
			EmailTokenTTL: cfg.Auth.EmailTokenTTL,
		},
		baseURL: cfg.Server.BaseURL,
	}
}

// Signup регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен и длиной >= 8 символов
//
// Письмо подтверждения уходит в фоне; ошибка отправки логируется и
// клиенту не возвращается.
//
// Ошибки:
//   - ErrInvalidInput при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if username == "" || email == "" || password == "" || !emailRe.MatchString(email) || len(password) < 8 {
		return models.User{}, serr.ErrInvalidInput
	}

	hash, err := crypto.HashPassword(password, s.pass)
	if err != nil {
		return models.User{}, serr.ErrInternal
	}

	user, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		return models.User{}, err
	}

	s.sendConfirmationAsync(user.Email, user.Username)

	return user, nil
}

// Login аутентифицирует пользователя и выдаёт пару токенов.
//
// Порядок проверок фиксирован: неизвестный email, затем неподтверждённый
// аккаунт, затем неверный пароль — каждая даёт свою 401-ошибку.
// Новый refresh-токен сохраняется у пользователя (единственный активный).
//
// Ошибки:
//   - ErrInvalidEmail / ErrEmailNotConfirmed / ErrInvalidPassword
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return TokenPair{}, serr.ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return TokenPair{}, serr.ErrInvalidEmail
		}
		return TokenPair{}, err
	}

	if !user.Confirmed {
		return TokenPair{}, serr.ErrEmailNotConfirmed
	}

	ok, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}
	if !ok {
		return TokenPair{}, serr.ErrInvalidPassword
	}

	return s.issuePair(ctx, user)
}

// Refresh обновляет пару токенов по refresh-токену.
//
// Если предъявленный токен не равен сохранённому у пользователя —
// сохранённый токен СБРАСЫВАЕТСЯ (принудительный re-login: старый токен
// после этого тоже перестаёт работать) и возвращается ErrInvalidRefreshToken.
//
// Ошибки:
//   - ErrUnauthorized (токен не расшифровался / не refresh / пользователь не найден)
//   - ErrInvalidRefreshToken (не совпал с сохранённым)
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return TokenPair{}, serr.ErrInvalidInput
	}

	email, err := crypto.DecodeToken(refreshToken, crypto.ScopeRefresh, s.jwt)
	if err != nil {
		return TokenPair{}, serr.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return TokenPair{}, serr.ErrUnauthorized
		}
		return TokenPair{}, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		// кто-то предъявил устаревший или чужой refresh — сбрасываем сессию
		if err := s.users.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			return TokenPair{}, err
		}
		return TokenPair{}, serr.ErrInvalidRefreshToken
	}

	return s.issuePair(ctx, user)
}

// ConfirmEmail подтверждает аккаунт по токену из письма.
//
// Идемпотентна: повторный вызов для подтверждённого аккаунта возвращает
// already=true без ошибки.
//
// Ошибки:
//   - ErrVerification (токен не расшифровался или email не найден)
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (already bool, err error) {
	email, err := crypto.DecodeToken(token, crypto.ScopeEmail, s.jwt)
	if err != nil {
		return false, serr.ErrVerification
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return false, serr.ErrVerification
		}
		return false, err
	}

	if user.Confirmed {
		return true, nil
	}

	if err := s.users.MarkConfirmed(ctx, email); err != nil {
		return false, err
	}
	return false, nil
}

// RequestEmail повторно отправляет письмо подтверждения.
//
// Существование аккаунта не раскрывается: для неизвестного email ответ
// такой же, как для успешной отправки. already=true — аккаунт уже подтверждён.
func (s *AuthService) RequestEmail(ctx context.Context, email string) (already bool, err error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return false, serr.ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			// не палим существование email
			return false, nil
		}
		return false, err
	}

	if user.Confirmed {
		return true, nil
	}

	s.sendConfirmationAsync(user.Email, user.Username)
	return false, nil
}

// issuePair выпускает access+refresh и сохраняет refresh у пользователя.
func (s *AuthService) issuePair(ctx context.Context, user models.User) (TokenPair, error) {
	access, err := crypto.NewToken(user.Email, crypto.ScopeAccess, s.jwt)
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}
	refresh, err := crypto.NewToken(user.Email, crypto.ScopeRefresh, s.jwt)
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// sendConfirmationAsync шлёт письмо подтверждения в отдельной горутине.
//
// Отправка живёт на фоновом контексте с таймаутом — контекст запроса
// к этому моменту уже может умереть. Ошибки только логируются.
func (s *AuthService) sendConfirmationAsync(email, username string) {
	if s.mail == nil {
		return
	}

	token, err := crypto.NewToken(email, crypto.ScopeEmail, s.jwt)
	if err != nil {
		if s.log != nil {
			s.log.Sugar().Errorw("email token failed", "error", err)
		}
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.mail.SendConfirmation(ctx, email, username, token, s.baseURL); err != nil {
			if s.log != nil {
				s.log.Sugar().Errorw("confirmation email failed", "error", err)
			}
		}
	}()
}
