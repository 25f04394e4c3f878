// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Services receive repository INTERFACES, not the concrete sqlite.DB — tests
// inject in-memory fakes, and the services never import the sqlite package.
// Every method takes the authenticated user's ID explicitly: ownership
// scoping is part of the business rules, not an afterthought in SQL.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
	"github.com/sakif/taskflow/internal/validation"
)

// ProjectService handles business logic for projects.
type ProjectService struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewProjectService(projects repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		logger:   logger,
	}
}

// List returns all of the user's projects, newest first.
func (s *ProjectService) List(ctx context.Context, userID string) ([]model.Project, error) {
	projects, err := s.projects.ListProjects(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list projects",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Get returns one project scoped to its owner.
// Returns apperror.ErrNotFound for a missing OR foreign project — the two
// must be indistinguishable to the caller.
func (s *ProjectService) Get(ctx context.Context, id, userID string) (*model.Project, error) {
	return s.projects.GetProject(ctx, id, userID)
}

// Create saves a new project for the user. The input has already passed
// payload validation; owner and timestamps are stamped server-side and any
// client-supplied owner id never reaches this far.
func (s *ProjectService) Create(ctx context.Context, userID string, in *validation.ProjectInput) (*model.Project, error) {
	project := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		UserID:      userID,
	}

	if err := s.projects.CreateProject(ctx, project); err != nil {
		s.logger.Error("failed to create project",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created",
		slog.String("id", project.ID),
		slog.String("userID", userID),
	)

	return project, nil
}

// Delete removes a project and, transactionally, all of its tasks.
// A nonexistent or foreign id comes back as NotFound, never as an internal
// error.
func (s *ProjectService) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.projects.DeleteProject(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to delete project",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting project: %w", err)
	}
	if !deleted {
		return apperror.NotFound("Project")
	}

	s.logger.Info("project deleted",
		slog.String("id", id),
		slog.String("userID", userID),
	)
	return nil
}
