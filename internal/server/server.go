// Package server wires the application together: router, middleware, routes,
// and the dependency chain from database to handler.
//
// This is the composition root. main.go reads config and calls New; every
// constructor call in the app happens here, in one place, so the shape of
// the dependency graph is visible at a glance:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler layer
// ever sees HTTP.
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

	"github.com/sakif/taskflow/internal/auth"
	"github.com/sakif/taskflow/internal/handler"
	"github.com/sakif/taskflow/internal/middleware"
	sqliteRepo "github.com/sakif/taskflow/internal/repository/sqlite"
	"github.com/sakif/taskflow/internal/service"
)

// Config holds server configuration, translated from the env-level config by
// main. Keeping a separate struct means this package never imports the
// config package and can be constructed directly in tests.
type Config struct {
	Port   int
	DBPath string

	JWTSecret          string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown, after in-flight requests drain.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
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

// setupRoutes configures middleware, builds the handlers, and registers the
// route table.
//
//	GET    /auth/github/login        → redirect to GitHub        (public)
//	GET    /auth/github/callback     → complete OAuth, set cookie (public)
//	POST   /auth/logout              → clear session cookie       (public)
//
//	GET    /api/auth/user            → current user profile
//	GET    /api/projects             → list projects
//	POST   /api/projects             → create project
//	GET    /api/projects/{id}        → get project
//	DELETE /api/projects/{id}        → delete project (and its tasks)
//	GET    /api/tasks                → list/filter tasks (paginated)
//	POST   /api/tasks                → create task
//	GET    /api/tasks/{id}           → get task with project
//	PUT    /api/tasks/{id}           → partial update
//	DELETE /api/tasks/{id}           → delete task
//	GET    /api/dashboard/stats      → aggregate counts
//	GET    /api/dashboard/overdue-tasks → overdue list
//
// Everything under /api sits behind RequireAuth. Middleware order: RequestID
// first so the logger can include it, Recoverer before the logger so a panic
// still produces a request line.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	github := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)

	authService := service.NewAuthService(s.db, tokens, s.logger)
	projectService := service.NewProjectService(s.db, s.logger)
	taskService := service.NewTaskService(s.db, s.db, s.logger)
	dashboardService := service.NewDashboardService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(github, authService, s.logger)
	projectHandler := handler.NewProjectHandler(projectService, s.logger)
	taskHandler := handler.NewTaskHandler(taskService, s.logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/github/login", authHandler.HandleGitHubLogin)
		r.Get("/github/callback", authHandler.HandleGitHubCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/auth/user", authHandler.HandleCurrentUser)

		r.Get("/projects", projectHandler.HandleList)
		r.Post("/projects", projectHandler.HandleCreate)
		r.Get("/projects/{id}", projectHandler.HandleGet)
		r.Delete("/projects/{id}", projectHandler.HandleDelete)

		r.Get("/tasks", taskHandler.HandleList)
		r.Post("/tasks", taskHandler.HandleCreate)
		r.Get("/tasks/{id}", taskHandler.HandleGet)
		r.Put("/tasks/{id}", taskHandler.HandleUpdate)
		r.Delete("/tasks/{id}", taskHandler.HandleDelete)

		r.Get("/dashboard/stats", dashboardHandler.HandleStats)
		r.Get("/dashboard/overdue-tasks", dashboardHandler.HandleOverdueTasks)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30 seconds
// to finish, close the database (flushes the WAL, releases the file lock).
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
