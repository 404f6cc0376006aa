package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/auth/providers"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type OAuthHandler struct {
	provider     providers.Provider
	authService  *auth.Service
	states       *auth.StateManager
	frontendURL  string
	isConfigured bool
}

func NewOAuthHandler(provider providers.Provider, authService *auth.Service, states *auth.StateManager, frontendURL string, isConfigured bool) *OAuthHandler {
	return &OAuthHandler{
		provider:     provider,
		authService:  authService,
		states:       states,
		frontendURL:  frontendURL,
		isConfigured: isConfigured,
	}
}

func (h *OAuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	logger := slog.With("handler", name+"_oauth_init")

	if !h.isConfigured {
		response.Error(w, r, logger, errors.External(fmt.Sprintf("%s OAuth is not properly configured", name)))
		return
	}

	state, err := h.states.GenerateState(name, r.UserAgent())
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to initialize OAuth flow", err))
		return
	}

	cookies.SetStateCookie(w, state, h.states.TTL())
	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	logger := slog.With(
		"handler", name+"_oauth_callback",
		"user_agent", r.UserAgent(),
		"ip", r.RemoteAddr,
		"has_code", code != "",
		"has_state", state != "",
	)

	cookies.ClearStateCookie(w)

	if errorParam := query.Get("error"); errorParam != "" {
		logger.Warn("OAuth authorization denied",
			"oauth_error", errorParam,
			"error_description", query.Get("error_description"))
		h.redirectWithError(w, r, "oauth_denied")
		return
	}

	if code == "" {
		logger.Error("OAuth callback missing authorization code")
		h.redirectWithError(w, r, "oauth_error")
		return
	}

	if cookie, err := r.Cookie(cookies.StateCookieName); err != nil || cookie.Value != state {
		logger.Warn("OAuth state cookie missing or different from query state")
		h.redirectWithError(w, r, "oauth_error")
		return
	}

	if _, err := h.states.ValidateState(state, name, r.UserAgent()); err != nil {
		logger.Warn("OAuth state validation failed", "error", err)
		h.redirectWithError(w, r, "oauth_error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	token, err := h.provider.Exchange(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", "error", err)
		h.redirectWithError(w, r, "oauth_error")
		return
	}

	userInfo, err := h.provider.Identify(ctx, token)
	if err != nil {
		logger.Error("Failed to get user info", "error", err)
		h.redirectWithError(w, r, "oauth_error")
		return
	}

	jwtToken, err := h.authService.SignIn(name, userInfo)
	if err != nil {
		logger.Warn("Sign-in rejected", "login", userInfo.Login, "error", err)
		h.redirectWithError(w, r, "auth_error")
		return
	}

	cookies.SetAuthCookie(w, jwtToken)

	logger.Info("OAuth authentication successful", "login", userInfo.Login)
	http.Redirect(w, r, h.frontendURL+"/auth/callback?success=true", http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, errorType string) {
	errorURL := fmt.Sprintf("%s/auth/error?error=%s", h.frontendURL, url.QueryEscape(errorType))
	http.Redirect(w, r, errorURL, http.StatusTemporaryRedirect)
}
