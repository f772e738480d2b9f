package providers

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const ContextKeyUserID ctxKey = "user_id"

type TokenValidator interface {
	// ValidateToken returns the user id carried by a valid token.
	ValidateToken(token string) (string, error)
}

type messageResponse struct {
	Message string `json:"message"`
}

// AuthMiddleware requires an "Authorization: Bearer <token>" header.
// A missing header or token answers 401, an invalid or expired token 403.
func AuthMiddleware(validator TokenValidator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteJSON(w, http.StatusUnauthorized, messageResponse{Message: "Auth code required"})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
				WriteJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid auth code"})
				return
			}

			userID, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Debugf(TypeAuth, "Rejected token for %s %s: %s", r.Method, r.URL.Path, err)
				WriteJSON(w, http.StatusForbidden, messageResponse{Message: "Invalid or expired auth code"})
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(string)
	return id, ok
}
