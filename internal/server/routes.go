package server

import (
	"log/slog"
	"net/http"

	"galaxy-server/internal/auth"
	authHandlers "galaxy-server/internal/auth/handlers"
	"galaxy-server/internal/galaxy"
	galaxyHandlers "galaxy-server/internal/galaxy/handlers"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/planet"
	planetHandlers "galaxy-server/internal/planet/handlers"
	serverHandlers "galaxy-server/internal/server/handlers"
	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/redis"
)

type Routes struct {
	db            *database.DB
	redis         *redis.Client
	galaxyService *galaxy.Service
	planetService *planet.Service
	authService   *auth.Service
	states        *auth.StateManager
	oauthConfig   *auth.OAuthConfig
	frontendURL   string
}

// Deps collects what the router needs. DB and Redis may be nil when those
// backends are disabled.
type Deps struct {
	DB            *database.DB
	Redis         *redis.Client
	GalaxyService *galaxy.Service
	PlanetService *planet.Service
	AuthService   *auth.Service
	States        *auth.StateManager
	OAuthConfig   *auth.OAuthConfig
	FrontendURL   string
}

func NewRoutes(deps Deps) *Routes {
	return &Routes{
		db:            deps.DB,
		redis:         deps.Redis,
		galaxyService: deps.GalaxyService,
		planetService: deps.PlanetService,
		authService:   deps.AuthService,
		states:        deps.States,
		oauthConfig:   deps.OAuthConfig,
		frontendURL:   deps.FrontendURL,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis)
	galaxyHandler := galaxyHandlers.NewGalaxyHandler(r.galaxyService)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService)
	meHandler := authHandlers.NewMeHandler(r.authService)
	logoutHandler := authHandlers.NewLogoutHandler()
	githubAuthHandler := authHandlers.NewOAuthHandler(
		r.oauthConfig.GitHubProvider,
		r.authService,
		r.states,
		r.frontendURL,
		r.oauthConfig.GitHubConfigured,
	)

	authn := middleware.NewAuthenticator(r.authService)
	editor := func(h http.HandlerFunc) http.Handler {
		return authn.RequireEditor(h)
	}

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/galaxy", galaxyHandler.Summary)
	mux.HandleFunc("GET /api/galaxy/stars", galaxyHandler.Stars)
	mux.HandleFunc("GET /api/galaxy/haze", galaxyHandler.Haze)
	mux.HandleFunc("GET /api/planets", planetHandler.List)
	mux.HandleFunc("GET /api/planets/editing", planetHandler.Editing)
	mux.HandleFunc("GET /api/planets/export", planetHandler.Export)

	// Editor endpoints (authenticated + allowlisted)
	mux.Handle("POST /api/planets", editor(planetHandler.Create))
	mux.Handle("PUT /api/planets/{name}", editor(planetHandler.Update))
	mux.Handle("DELETE /api/planets/{name}", editor(planetHandler.Delete))
	mux.Handle("DELETE /api/planets", editor(planetHandler.Clear))
	mux.Handle("POST /api/planets/{name}/confirm", editor(planetHandler.Confirm))
	mux.Handle("POST /api/planets/edit-all", editor(planetHandler.EditAll))
	mux.Handle("POST /api/planets/import", editor(planetHandler.Import))

	// Session endpoints
	mux.Handle("GET /api/me", authn.JWT(meHandler))
	mux.Handle("POST /auth/logout", logoutHandler)

	// OAuth endpoints
	mux.HandleFunc("GET /auth/github", githubAuthHandler.HandleAuth)
	mux.HandleFunc("GET /auth/github/callback", githubAuthHandler.HandleCallback)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/galaxy", "/api/galaxy/stars", "/api/galaxy/haze", "/api/planets", "/api/planets/editing", "/api/planets/export"},
		"editor_endpoints", []string{"/api/planets", "/api/planets/{name}", "/api/planets/{name}/confirm", "/api/planets/edit-all", "/api/planets/import"},
		"auth_endpoints", []string{"/auth/github", "/auth/github/callback", "/auth/logout", "/api/me"},
	)

	return mux
}
