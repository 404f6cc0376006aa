package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/events"
	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/planet"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/server"
	"galaxy-server/internal/shared/cache"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/logger"
	"galaxy-server/internal/shared/redis"
)

const (
	shutdownTimeout      = 10 * time.Second
	stateCleanupInterval = time.Minute
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.GlobalConfig); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := slog.With("component", "main")

	var (
		db    *database.DB
		store planet.Store
	)
	if cfg.Database.Enabled {
		var err error
		db, err = database.Connect(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("Failed to close database", "error", err)
			}
		}()

		if err := db.RunMigrations(ctx, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		store = planet.NewRepository(db, slog.Default())
	} else {
		log.Warn("Database disabled, planets are kept in memory and lost on restart")
		store = planet.NewMemoryStore()
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		// the cache is an optimisation; serve from the store without it
		log.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("Failed to close Redis client", "error", err)
		}
	}()

	bus := events.NewBus()
	bus.SubscribeAll(func(_ context.Context, e events.Event) {
		slog.Debug("Planet event", "component", "events", "event", e.Name, "planet", e.Planet)
	})

	planetService := planet.NewService(store, cache.New(rdb, cfg.Cache.MaxBytes), cfg.Cache.TTL, bus, slog.Default())
	defer planetService.Close()

	shape := procgen.DefaultShape()
	shape.Arms = cfg.Galaxy.Arms
	started := time.Now()
	g := galaxy.New(galaxy.Config{
		Seed:      cfg.Galaxy.Seed,
		NumStars:  cfg.Galaxy.NumStars,
		HazeRatio: cfg.Galaxy.HazeRatio,
		Shape:     shape,
	})
	log.Info("Galaxy generated",
		"seed", cfg.Galaxy.Seed,
		"stars", len(g.Stars),
		"haze", len(g.Haze),
		"duration", time.Since(started),
	)
	galaxyService := galaxy.NewService(g, slog.Default())

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}
	authService := auth.NewService(tokens, cfg.Auth.EditorLogins, slog.Default())

	states := auth.NewStateManager(auth.DefaultStateTTL)
	go states.Run(ctx, stateCleanupInterval)

	routes := server.NewRoutes(server.Deps{
		DB:            db,
		Redis:         rdb,
		GalaxyService: galaxyService,
		PlanetService: planetService,
		AuthService:   authService,
		States:        states,
		OAuthConfig:   auth.InitOAuth(cfg),
		FrontendURL:   cfg.Frontend.URL,
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx, middleware.DefaultCleanupInterval)

	cors := middleware.NewCORS(cfg.Frontend)
	handler := cors.Middleware(rateLimiter.Middleware(routes.Setup()))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Galaxy server starting", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
