package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sakif/taskflow/internal/auth"
	"github.com/sakif/taskflow/internal/handler"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository/sqlite"
	"github.com/sakif/taskflow/internal/service"
)

// Handler tests run against the real services over an in-memory SQLite
// database — the whole stack below the router. Authentication is simulated
// by injecting the user id into the request context with auth.WithUserID,
// exactly what RequireAuth does after validating a cookie.

type env struct {
	db     *sqlite.DB
	user   *model.User
	tokens *auth.TokenService

	auths     *handler.AuthHandler
	projects  *handler.ProjectHandler
	tasks     *handler.TaskHandler
	dashboard *handler.DashboardHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService("test-secret-0123456789abcdef")
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}
	github := auth.NewGitHubProvider("client-id", "client-secret", "http://localhost:8080/auth/github/callback")

	authService := service.NewAuthService(db, tokens, logger)
	projectService := service.NewProjectService(db, logger)
	taskService := service.NewTaskService(db, db, logger)
	dashboardService := service.NewDashboardService(db, logger)

	user := &model.User{GitHubID: 1, Email: "dev@example.com", FirstName: "Ada", LastName: "Lovelace"}
	if err := db.Upsert(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return &env{
		db:        db,
		user:      user,
		tokens:    tokens,
		auths:     handler.NewAuthHandler(github, authService, logger),
		projects:  handler.NewProjectHandler(projectService, logger),
		tasks:     handler.NewTaskHandler(taskService, logger),
		dashboard: handler.NewDashboardHandler(dashboardService, logger),
	}
}

// request builds an authenticated request as the fixture user.
func (e *env) request(method, target, body string) *http.Request {
	return e.requestAs(e.user.ID, method, target, body)
}

func (e *env) requestAs(userID, method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

func (e *env) createProject(t *testing.T, name string) *model.Project {
	t.Helper()
	project := &model.Project{Name: name, UserID: e.user.ID}
	if err := e.db.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

func (e *env) createTask(t *testing.T, projectID, title string) *model.Task {
	t.Helper()
	task := &model.Task{Title: title, ProjectID: projectID, UserID: e.user.ID}
	if err := e.db.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

func readBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	b, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}
