package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
)

// NewMigrateCmd создаёт команду применения миграций БД.
//
// Удобно для деплоя: миграции накатываются отдельно от запуска сервера.
func NewMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции БД и выйти",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}

			db, err := config.OpenDB(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := config.MigrateDB(db, cfg.Migrations.Path); err != nil {
				return err
			}

			cmd.Println("migrations applied")
			return nil
		},
	}
}
