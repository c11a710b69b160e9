package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/domain/record"
	"hrms/internal/transport/http/api"
)

// UserResolver looks up the persisted identity behind a verified token
// subject.
type UserResolver interface {
	UserByID(ctx context.Context, id string) (hr.User, error)
}

// Authenticate is the single gate in front of every protected route: it
// verifies the bearer token and resolves the subject to a live user. A
// token whose subject no longer exists is rejected even before its expiry.
func Authenticate(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
				return
			}

			subject, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					api.Fail(w, http.StatusUnauthorized, "token_expired", "Token expired")
					return
				}
				api.Fail(w, http.StatusUnauthorized, "token_invalid", "Invalid token")
				return
			}

			user, err := users.UserByID(r.Context(), subject)
			if errors.Is(err, record.ErrNotFound) {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "User not found")
				return
			}
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (hr.User, bool) {
	user, ok := ctx.Value(ctxKeyUser).(hr.User)
	return user, ok
}
