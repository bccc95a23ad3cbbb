package middleware

import (
	"net/http"

	"github.com/OnSightTeam/ordersvc/internal/config"
)

// APIKeyAuth middleware validates the API key passed in the "api_key" header
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		allowed[k] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			if _, ok := allowed[apiKey]; !ok {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
