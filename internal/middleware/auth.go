package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

type Authenticator struct {
	service *auth.Service
}

func NewAuthenticator(service *auth.Service) *Authenticator {
	return &Authenticator{service: service}
}

func (a *Authenticator) JWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "jwt",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		cookie, err := r.Cookie(cookies.AuthCookieName)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := a.service.ValidateToken(cookie.Value)
		if err != nil {
			logger.Debug("Rejected auth token", "error", err)
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		logger.Debug("JWT authentication successful", "login", claims.Login)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
