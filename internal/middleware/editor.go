package middleware

import (
	"log/slog"
	"net/http"

	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

// Editor rejects authenticated users who are not on the editor allowlist.
// It must run inside JWT.
func (a *Authenticator) Editor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "editor",
			"method", r.Method,
			"path", r.URL.Path,
		)

		claims := GetUserFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if !a.service.CanEdit(claims.Login) {
			logger.Warn("Non-editor attempted to modify the galaxy", "login", claims.Login)
			response.Error(w, r, logger, errors.Forbidden("editor access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireEditor chains JWT and Editor.
func (a *Authenticator) RequireEditor(next http.Handler) http.Handler {
	return a.JWT(a.Editor(next))
}
