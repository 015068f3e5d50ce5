package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// OriginAllowed reports whether origin may call the API. Requests without an
// Origin header (curl, server-to-server) are always allowed.
func OriginAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, candidate := range allowed {
		if candidate == "*" || strings.EqualFold(strings.TrimRight(candidate, "/"), strings.TrimRight(origin, "/")) {
			return true
		}
	}
	return false
}

// CORS restricts cross-origin access to the allowed origins.
func CORS(allowed []string) func(http.Handler) http.Handler {
	origins := append([]string(nil), allowed...)
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return OriginAllowed(origins, origin)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
