package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/auth/providers"
	"galaxy-server/internal/shared/cookies"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func newAuthService(t *testing.T, editors ...string) *auth.Service {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(secret, time.Hour)
	require.NoError(t, err)
	return auth.NewService(issuer, editors, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tokenFor(t *testing.T, login string) string {
	t.Helper()
	token, err := newAuthService(t).SignIn("github", &providers.Identity{ID: "7", Login: login})
	require.NoError(t, err)
	return token
}

func loginEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetUserFromContext(r)
		if claims == nil {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = io.WriteString(w, claims.Login)
	})
}

func TestJWT_MissingCookie(t *testing.T) {
	a := NewAuthenticator(newAuthService(t))

	rec := httptest.NewRecorder()
	a.JWT(loginEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/planets", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_InvalidToken(t *testing.T) {
	a := NewAuthenticator(newAuthService(t))

	req := httptest.NewRequest(http.MethodPost, "/api/planets", nil)
	req.AddCookie(&http.Cookie{Name: cookies.AuthCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	a.JWT(loginEcho()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_ValidTokenSetsClaims(t *testing.T) {
	a := NewAuthenticator(newAuthService(t))

	req := httptest.NewRequest(http.MethodPost, "/api/planets", nil)
	req.AddCookie(&http.Cookie{Name: cookies.AuthCookieName, Value: tokenFor(t, "alice")})
	rec := httptest.NewRecorder()
	a.JWT(loginEcho()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestRequireEditor(t *testing.T) {
	a := NewAuthenticator(newAuthService(t, "alice"))

	tests := []struct {
		login  string
		status int
	}{
		{"alice", http.StatusOK},
		{"ALICE", http.StatusOK},
		{"mallory", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodDelete, "/api/planets/Terra", nil)
		req.AddCookie(&http.Cookie{Name: cookies.AuthCookieName, Value: tokenFor(t, tt.login)})
		rec := httptest.NewRecorder()
		a.RequireEditor(loginEcho()).ServeHTTP(rec, req)

		assert.Equal(t, tt.status, rec.Code, tt.login)
	}
}

func TestEditor_WithoutClaims(t *testing.T) {
	a := NewAuthenticator(newAuthService(t))

	rec := httptest.NewRecorder()
	a.Editor(loginEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/planets/Terra", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
