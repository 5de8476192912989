package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
)

// RouterConfig — middleware-настройки роутера: CORS и rate limit.
type RouterConfig struct {
	CORS      middleware.CORSConfig
	RateLimit middleware.RateLimitConfig
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования и CORS для всех запросов;
//   - публичные эндпоинты аутентификации под префиксом /api/auth;
//   - группу защищённых JWT эндпоинтов /api/contacts и /api/users;
//   - rate limit 10 запросов/мин на list/get/create контактов и аватар.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(middleware.CORS(cfg.CORS))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// лимит на "горячие" маршруты
	limited := middleware.RateLimit(cfg.RateLimit)

	r.Route("/api", func(r chi.Router) {
		// Публичные пути
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Get("/refresh_token", h.Refresh)
			r.Get("/confirmed_email/{token}", h.ConfirmedEmail)
			r.Post("/request_email", h.RequestEmail)
		})

		// защищённые пути
		r.Group(func(r chi.Router) {
			// проверка access токена
			r.Use(h.Verifier.AuthMiddleware())

			r.Route("/contacts", func(r chi.Router) {
				r.With(limited).Get("/", h.ListContacts)
				r.With(limited).Post("/", h.CreateContact)
				r.Get("/search/", h.SearchContacts)
				r.Get("/upcoming-birthdays/", h.UpcomingBirthdays)
				r.With(limited).Get("/{id}", h.GetContact)
				r.Put("/{id}", h.UpdateContact)
				r.Delete("/{id}", h.DeleteContact)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.Me)
				r.With(limited).Patch("/avatar", h.UpdateAvatar)
			})
		})
	})

	return r
}
