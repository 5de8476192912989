// Package cli реализует командный интерфейс серверного приложения.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд (serve, migrate, version);
//   - разбор аргументов и флагов командной строки;
//   - запуск HTTP-сервера и применение миграций.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ConfigPath — путь к YAML-конфигу сервера.
	ConfigPath string
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{
		ConfigPath: "./configs/server.yaml",
	}

	cmd := &cobra.Command{
		Use:   "contacts-api",
		Short: "Contacts API — backend записной книжки с JWT-аутентификацией",
		Long: `Contacts API.

Команды:
  serve     Запустить HTTP-сервер
  migrate   Применить миграции БД и выйти
  version   Версия и дата сборки

Примеры:

Запуск сервера:
  contacts-api serve --config ./configs/server.yaml

Только миграции:
  contacts-api migrate
`,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "./configs/server.yaml", "path to server config")

	cmd.AddCommand(NewServeCmd(app))
	cmd.AddCommand(NewMigrateCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
