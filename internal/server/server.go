// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: every dependency is created and wired here,
// in one place — DB → repositories → services → handlers → routes. main.go
// stays minimal (read config, create logger, call server.New, Start).
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/devconnector/internal/auth"
	"github.com/sakif/devconnector/internal/config"
	"github.com/sakif/devconnector/internal/github"
	"github.com/sakif/devconnector/internal/handler"
	"github.com/sakif/devconnector/internal/middleware"
	sqliteRepo "github.com/sakif/devconnector/internal/repository/sqlite"
	"github.com/sakif/devconnector/internal/service"
)

// Server owns the router and the database connection. The DB is closed
// during graceful shutdown, after in-flight requests have drained.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and wires the full dependency chain.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and all route handlers.
//
// MIDDLEWARE ORDER MATTERS — they run in registration order:
//  1. RequestID — unique ID per request for tracing
//  2. RealIP — real client IP from proxy headers
//  3. Recoverer — panics become 500s instead of crashes
//  4. CORS — browser clients on the configured origins
//  5. request logging
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.TrustedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", auth.TokenHeader},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Logger(s.logger))

	// Dependency chain: sqlite repos → services → handlers.
	users := s.db.Users()
	profiles := s.db.Profiles()

	authService := service.NewAuthService(
		users, tokens, auth.NewPasswordService(), s.logger,
		s.config.RegisterTokenTTL, s.config.LoginTokenTTL,
	)
	profileService := service.NewProfileService(profiles, users, s.logger)
	ghClient := github.NewClient(s.config.GitHubToken)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, ghClient, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/users", authHandler.HandleRegister)
		r.Post("/auth", authHandler.HandleLogin)
		r.Get("/profile/github/{username}", profileHandler.HandleGitHubRepos)

		// Private — everything behind the token header
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth", authHandler.HandleMe)

			r.Get("/profile/me", profileHandler.HandleGetOwn)
			r.Get("/profile", profileHandler.HandleList)
			r.Get("/profile/user/{id}", profileHandler.HandleGetByUserID)
			r.Post("/profile", profileHandler.HandleUpsert)
			r.Delete("/profile", profileHandler.HandleDeleteAccount)

			r.Put("/profile/experience", profileHandler.HandleAddExperience)
			r.Delete("/profile/experience/{id}", profileHandler.HandleRemoveExperience)
			r.Put("/profile/education", profileHandler.HandleAddEducation)
			r.Delete("/profile/education/{id}", profileHandler.HandleRemoveEducation)
		})
	})

	return nil
}

// Router exposes the configured router, mainly so tests can drive the full
// stack through httptest without opening a socket.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
