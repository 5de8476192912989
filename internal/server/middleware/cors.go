package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig — настройки CORS для браузерных клиентов.
type CORSConfig struct {
	// AllowedOrigins — явный список разрешённых origin.
	// "*" с credentials не используем.
	AllowedOrigins   []string
	AllowCredentials bool
}

// CORS возвращает middleware, обрабатывающий Cross-Origin запросы.
//
// Preflight (OPTIONS) обрабатывается здесь же: разрешённый origin получает
// 204 с заголовками Allow-Methods/Allow-Headers, неразрешённый — 403.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[strings.ToLower(origin)] = true
	}

	const (
		methods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		headers = "Content-Type, Authorization, Accept"
		maxAge  = 24 * 60 * 60
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// нет Origin — same-origin запрос, CORS не нужен
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed[strings.ToLower(origin)] {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				// браузер сам заблокирует ответ без CORS-заголовков
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
