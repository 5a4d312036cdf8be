package api

import (
	"net/http"
	"slices"

	"github.com/povarna/generative-ai-agents/review-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/review-agent/internal/metrics"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// IsAllowedOrigin reports whether origin is on the allow-list. Matching is exact.
func IsAllowedOrigin(origin string, allowList []string) bool {
	return slices.Contains(allowList, origin)
}

// NewCORSHandler rejects requests from origins outside the allow-list with 403 and
// serves allowed ones through rs/cors with credentials enabled. Requests without an
// Origin header (curl, server-to-server) pass untouched.
func NewCORSHandler(next http.Handler, allowList []string, logger *zerolog.Logger) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowList,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	}).Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && !IsAllowedOrigin(origin, allowList) {
			metrics.IncCORSRejects()
			logger.Warn().
				Str("origin", origin).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("CORS blocked origin")
			middleware.WriteError(w, middleware.ErrOriginBlocked, http.StatusForbidden)
			return
		}

		corsHandler.ServeHTTP(w, r)
	})
}
