// Package mail отвечает за отправку писем подтверждения email.
//
// Письма отправляются по SMTP (go-mail) в фоне: сервис запускает отправку
// в отдельной горутине, ошибка отправки только логируется и никогда
// не возвращается клиенту.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
)

// Sender отправляет письма подтверждения через SMTP.
type Sender struct {
	cfg config.MailConfig
}

// NewSender создаёт Sender по настройкам SMTP из конфига.
func NewSender(cfg config.MailConfig) *Sender {
	return &Sender{cfg: cfg}
}

// confirmationBody — простое HTML-письмо со ссылкой подтверждения.
const confirmationBody = `<p>Привет, %s!</p>
<p>Для подтверждения email перейди по ссылке:</p>
<p><a href="%s/api/auth/confirmed_email/%s">Подтвердить email</a></p>
<p>Если ты не регистрировался — просто проигнорируй это письмо.</p>`

// SendConfirmation отправляет письмо со ссылкой подтверждения аккаунта.
//
// baseURL — внешний адрес сервера (из конфига), token — email-токен,
// который попадёт в ссылку /api/auth/confirmed_email/{token}.
func (s *Sender) SendConfirmation(ctx context.Context, to, username, token, baseURL string) error {
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	m.Subject("Confirm your email")
	m.SetBodyString(gomail.TypeTextHTML, fmt.Sprintf(confirmationBody, username, baseURL, token))

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, m)
}
