package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/cache"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/mail"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/repository"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/storage"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

// NewServeCmd создаёт команду запуска HTTP-сервера.
//
// Команда собирает все зависимости явно (без глобальных переменных):
// конфиг -> БД -> Redis -> SMTP/S3 -> репозитории -> сервисы -> роутер.
func NewServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(app.ConfigPath)
		},
	}
}

func runServe(configPath string) error {
	httpLogger := logger.NewHTTPLogger()
	sugar := httpLogger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnvOverrides()

	// подключаем базу данных
	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Migrations.Enabled {
		if err := config.MigrateDB(db, cfg.Migrations.Path); err != nil {
			return err
		}
		sugar.Info("migrations applied successfully")
	}

	// Redis нужен только счётчикам rate limit
	var limiter middleware.RouteLimiter
	if cfg.RateLimit.Enabled {
		c, err := cache.New(context.Background(), cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer c.Close()
		limiter = c
	}

	// внешние зависимости сервисов; выключены, если не сконфигурированы
	deps := service.Deps{Log: httpLogger}
	if cfg.Mail.Host != "" {
		deps.Mail = mail.NewSender(cfg.Mail)
	} else {
		sugar.Warn("mail.host is empty, confirmation emails disabled")
	}
	if cfg.S3.Bucket != "" {
		avatars, err := storage.NewAvatarStorage(context.Background(), cfg.S3)
		if err != nil {
			return err
		}
		deps.Avatars = avatars
	} else {
		sugar.Warn("s3.bucket is empty, avatar upload disabled")
	}

	// создаём репы
	repos := service.Repositories{
		Users:    repository.NewUsersRepository(db),
		Contacts: repository.NewContactsRepository(db),
	}
	// создаём сервисы
	svc := service.NewServices(repos, deps, cfg)
	// создаём jwt-верификатор
	verifier := middleware.NewJWTVerifier(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
	})
	// создаём хандлер и роутер
	handler := api.NewHandler(svc, httpLogger, verifier)
	router := api.NewRouter(handler, api.RouterConfig{
		CORS: middleware.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowCredentials: cfg.CORS.AllowCredentials,
		},
		RateLimit: middleware.RateLimitConfig{
			Limiter: limiter,
			Log:     httpLogger,
			Times:   cfg.RateLimit.Times,
			Window:  cfg.RateLimit.Window,
		},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	sugar.Info("server gracefully stopped")
	return nil
}
