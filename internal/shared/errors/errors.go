// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Email не найден при логине
	ErrInvalidEmail = errors.New("invalid email")
	// Аккаунт не подтверждён по email
	ErrEmailNotConfirmed = errors.New("email not confirmed")
	// Неверный пароль
	ErrInvalidPassword = errors.New("invalid password")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Refresh токен не совпал с сохранённым у пользователя
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("account already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Токен подтверждения email не прошёл проверку
	ErrVerification = errors.New("verification error")
	// Превышен лимит запросов
	ErrRateLimited = errors.New("too many requests")
)
