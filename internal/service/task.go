package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
	"github.com/sakif/taskflow/internal/validation"
)

// Pagination defaults for task listing. Pagination happens here, after
// retrieval: the repository returns the complete filtered set and this layer
// slices it, so the page contents and the reported total always describe the
// same snapshot.
const (
	DefaultPage      = 1
	DefaultTaskLimit = 50
)

// TaskPage is one page of a filtered task listing. Total is the size of the
// whole filtered set, not the page.
type TaskPage struct {
	Tasks []model.TaskWithProject `json:"tasks"`
	Total int                     `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// TaskService handles business logic for tasks.
//
// It holds the project repository as well: the task↔project ownership
// invariant (a task's user_id must equal its project's user_id) is enforced
// here by resolving the project — scoped to the requester — before any
// insert or project move. The schema stores the owner redundantly and can't
// check this itself.
type TaskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		logger:   logger,
	}
}

// List returns one page of the user's tasks matching the filter.
// page/limit fall back to 1/50 when zero or negative.
func (s *TaskService) List(ctx context.Context, userID string, filter repository.TaskFilter, page, limit int) (*TaskPage, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultTaskLimit
	}

	all, err := s.tasks.ListTasks(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to list tasks",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	start := (page - 1) * limit
	end := start + limit
	pageTasks := []model.TaskWithProject{}
	if start < len(all) {
		if end > len(all) {
			end = len(all)
		}
		pageTasks = all[start:end]
	}

	return &TaskPage{
		Tasks: pageTasks,
		Total: len(all),
		Page:  page,
		Limit: limit,
	}, nil
}

// Get returns one task with its project embedded, scoped to the owner.
func (s *TaskService) Get(ctx context.Context, id, userID string) (*model.TaskWithProject, error) {
	return s.tasks.GetTask(ctx, id, userID)
}

// Create saves a new task after confirming the target project belongs to the
// requester. A projectId naming someone else's project (or nothing) fails
// validation — it must not reveal whether such a project exists.
func (s *TaskService) Create(ctx context.Context, userID string, in *validation.TaskInput) (*model.Task, error) {
	if err := s.checkProjectOwnership(ctx, in.ProjectID, userID); err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		ProjectID:   in.ProjectID,
		UserID:      userID,
	}
	// Unset status/priority stay "" here — the store applies the defaults.
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			slog.String("userID", userID),
			slog.String("projectID", in.ProjectID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Info("task created",
		slog.String("id", task.ID),
		slog.String("projectID", task.ProjectID),
		slog.String("userID", userID),
	)

	return task, nil
}

// Update applies a partial update to a task. Moving a task to another
// project re-checks ownership of the destination, keeping the denormalized
// user_id truthful.
func (s *TaskService) Update(ctx context.Context, id, userID string, patch *validation.TaskPatch) (*model.Task, error) {
	if patch.ProjectID != nil {
		if err := s.checkProjectOwnership(ctx, *patch.ProjectID, userID); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.UpdateTask(ctx, id, userID, repository.TaskUpdate{
		Title:          patch.Title,
		Description:    patch.Description,
		DescriptionSet: patch.DescriptionSet,
		Status:         patch.Status,
		Priority:       patch.Priority,
		Deadline:       patch.Deadline,
		DeadlineSet:    patch.DeadlineSet,
		ProjectID:      patch.ProjectID,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update task",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.logger.Info("task updated",
		slog.String("id", task.ID),
		slog.String("status", task.Status),
	)

	return task, nil
}

// Delete removes a task. Nonexistent or foreign ids surface as NotFound.
func (s *TaskService) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.tasks.DeleteTask(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to delete task",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting task: %w", err)
	}
	if !deleted {
		return apperror.NotFound("Task")
	}

	s.logger.Info("task deleted", slog.String("id", id))
	return nil
}

// checkProjectOwnership verifies projectID names a project the user owns.
// Failure is a validation error on the projectId field — the same answer
// whether the project is missing or belongs to someone else.
func (s *TaskService) checkProjectOwnership(ctx context.Context, projectID, userID string) error {
	_, err := s.projects.GetProject(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.ValidationFailed("projectId", "projectId must reference one of your projects")
		}
		return fmt.Errorf("checking project ownership: %w", err)
	}
	return nil
}
