package middleware

import (
	"context"
	"net/http"
	"strings"

	"restaurant-review/pkg/apperror"
	"restaurant-review/pkg/utils"

	"go.uber.org/zap"
)

// SessionAuthenticator resolves a session token to the username owning it.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// AuthSession requires an "Authorization: Bearer <token>" header carrying a
// valid session token and stores the session owner in the request context.
func AuthSession(auth SessionAuthenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			username, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if apperror.Is(err, apperror.KindUnauthorized) {
					logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetSessionContext(r.Context(), username, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
