package cookies

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"galaxy-server/internal/shared/config"
)

const (
	AuthCookieName  = "auth_token"
	StateCookieName = "oauth_state"
)

func SetAuthCookie(w http.ResponseWriter, token string) {
	cfg := config.GlobalConfig

	cookie := newCookie(AuthCookieName)
	cookie.Value = token
	cookie.MaxAge = int(cfg.Auth.TokenExpiration.Seconds())

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter) {
	clearCookie(w, AuthCookieName)
}

// SetStateCookie binds an OAuth state to the browser that started the login.
func SetStateCookie(w http.ResponseWriter, state string, ttl time.Duration) {
	cookie := newCookie(StateCookieName)
	cookie.Value = state
	cookie.MaxAge = int(ttl.Seconds())

	http.SetCookie(w, cookie)
}

func ClearStateCookie(w http.ResponseWriter) {
	clearCookie(w, StateCookieName)
}

func clearCookie(w http.ResponseWriter, name string) {
	cookie := newCookie(name)
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func newCookie(name string) *http.Cookie {
	cfg := config.GlobalConfig

	return &http.Cookie{
		Name:     name,
		Path:     "/",
		Domain:   extractDomain(cfg.Frontend.URL),
		HttpOnly: true,
		Secure:   cfg.Auth.CookieSecure,
		SameSite: parseSameSite(cfg.Auth.CookieSameSite),
	}
}

func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := strings.Split(parsedURL.Host, ":")[0]
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}

	return host
}

func parseSameSite(sameSiteStr string) http.SameSite {
	switch sameSiteStr {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
