package http

import (
	"net/http"

	"github.com/go-chi/cors"

	"crudkit/internal/config"
)

// WithCORS allows cross-origin calls from the configured origins, with any
// method and header.
func WithCORS(cfg *config.Config, next http.Handler) http.Handler {
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
