package handlers

import (
	"net/http"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/response"
)

type LogoutHandler struct{}

func NewLogoutHandler() *LogoutHandler {
	return &LogoutHandler{}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookies.ClearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

type MeResponse struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	CanEdit  bool   `json:"can_edit"`
}

type MeHandler struct {
	authService *auth.Service
}

func NewMeHandler(authService *auth.Service) *MeHandler {
	return &MeHandler{authService: authService}
}

// ServeHTTP runs behind the JWT middleware, so claims are always present.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)

	response.Success(w, http.StatusOK, MeResponse{
		Login:    claims.Login,
		Name:     claims.Name,
		Email:    claims.Email,
		Provider: claims.Provider,
		CanEdit:  h.authService.CanEdit(claims.Login),
	})
}
