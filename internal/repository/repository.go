// Package repository declares the storage interfaces the service layer
// programs against, plus the option/result types those interfaces share.
// The sqlite subpackage provides the concrete implementation; tests use
// in-memory substitutes.
package repository

import (
	"context"

	"github.com/sakif/taskflow/internal/model"
)

// TaskFilter narrows ListTasks. Zero values mean "no constraint"; set fields
// combine with AND, never OR. DeadlineFrom/DeadlineTo are inclusive bounds on
// the deadline column, each independently optional, in YYYY-MM-DD form.
type TaskFilter struct {
	ProjectID    string
	Status       string
	Priority     string
	DeadlineFrom string
	DeadlineTo   string
}

// TaskUpdate is a partial update: nil pointers leave the stored value alone.
// Description and Deadline are nullable columns, so a nil pointer is
// ambiguous — the Set flags record "the caller touched this field", and
// Set with a nil value means "clear it".
type TaskUpdate struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *string
	Priority       *string
	Deadline       *string
	DeadlineSet    bool
	ProjectID      *string
}

// StatusCount is one row of the by-status breakdown. Status is the literal
// stored string — unrecognized statuses form their own group.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardStats is the aggregate snapshot behind GET /api/dashboard/stats.
type DashboardStats struct {
	TotalProjects  int           `json:"totalProjects"`
	TotalTasks     int           `json:"totalTasks"`
	CompletedTasks int           `json:"completedTasks"`
	OverdueTasks   int           `json:"overdueTasks"`
	TasksByStatus  []StatusCount `json:"tasksByStatus"`
}

type UserRepository interface {
	// Upsert creates the user on first login and refreshes the profile on
	// subsequent logins, keyed by the identity provider's GitHub ID.
	Upsert(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// ProjectRepository and TaskRepository take an explicit userID on every read
// and mutation: rows belonging to other users must be indistinguishable from
// rows that don't exist.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id, userID string) (*model.Project, error)
	ListProjects(ctx context.Context, userID string) ([]model.Project, error)
	// DeleteProject removes the project and all of its tasks in one
	// transaction. The bool reports whether a project row existed.
	DeleteProject(ctx context.Context, id, userID string) (bool, error)
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id, userID string) (*model.TaskWithProject, error)
	// ListTasks returns the full filtered set, each task joined to its
	// project, newest-created first. Pagination is the service's job.
	ListTasks(ctx context.Context, userID string, filter TaskFilter) ([]model.TaskWithProject, error)
	// UpdateTask applies only the fields the update names and always
	// refreshes updated_at. Returns apperror.ErrNotFound if no row matches
	// id+owner.
	UpdateTask(ctx context.Context, id, userID string, upd TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, id, userID string) (bool, error)

	// Aggregations. "today" is a YYYY-MM-DD string from the server clock;
	// overdue means deadline strictly before today and status != "done".
	DashboardStats(ctx context.Context, userID, today string) (*DashboardStats, error)
	OverdueTasks(ctx context.Context, userID, today string) ([]model.TaskWithProject, error)
}
