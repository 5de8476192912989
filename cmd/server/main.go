// @title           Contacts API
// @version         1.0
// @description     REST backend записной книжки контактов.
// @description     Регистрация, JWT-аутентификация, подтверждение email и CRUD контактов.
// @termsOfService  https://example.com/terms

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin
// @contact.email  ivan@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения Contacts API.
//
// Вся инициализация (конфиг, БД, Redis, SMTP, S3, HTTP-сервер) выполняется
// в пакете internal/server/cli; здесь только разбор команд и версии сборки.
//
// HTTP API сервера реализовано в пакете internal/server/api и документируется
// с помощью OpenAPI (Swagger).
package main

import (
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/cli"

	_ "github.com/IvanChernomyrdin/go-contacts-api/swagger/docs"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
