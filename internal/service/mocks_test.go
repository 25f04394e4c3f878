package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
)

// Hand-written in-memory mocks for the repository interfaces. The services
// don't know or care that these aren't SQLite — that's the point of
// programming against the interfaces. Each mock mirrors the contract the
// real store keeps (ownership scoping, storage defaults, newest-first
// ordering) closely enough for service tests to be meaningful.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// --- users ---

type mockUserRepo struct {
	users  map[string]*model.User
	byGH   map[int64]string
	nextID int

	upsertErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[string]*model.User),
		byGH:  make(map[int64]string),
	}
}

func (m *mockUserRepo) Upsert(_ context.Context, user *model.User) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if id, ok := m.byGH[user.GitHubID]; ok {
		user.ID = id
		user.CreatedAt = m.users[id].CreatedAt
	} else {
		m.nextID++
		user.ID = fmt.Sprintf("user-%d", m.nextID)
		user.CreatedAt = time.Now()
		m.byGH[user.GitHubID] = user.ID
	}
	user.UpdatedAt = time.Now()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("User")
	}
	result := *user
	return &result, nil
}

// --- projects ---

type mockProjectRepo struct {
	projects []*model.Project
	nextID   int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{}
}

func (m *mockProjectRepo) CreateProject(_ context.Context, project *model.Project) error {
	m.nextID++
	project.ID = fmt.Sprintf("project-%d", m.nextID)
	project.CreatedAt = time.Now()
	stored := *project
	m.projects = append(m.projects, &stored)
	return nil
}

func (m *mockProjectRepo) GetProject(_ context.Context, id, userID string) (*model.Project, error) {
	for _, p := range m.projects {
		if p.ID == id && p.UserID == userID {
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("Project")
}

func (m *mockProjectRepo) ListProjects(_ context.Context, userID string) ([]model.Project, error) {
	// Newest first, like the real store.
	result := []model.Project{}
	for i := len(m.projects) - 1; i >= 0; i-- {
		if m.projects[i].UserID == userID {
			result = append(result, *m.projects[i])
		}
	}
	return result, nil
}

func (m *mockProjectRepo) DeleteProject(_ context.Context, id, userID string) (bool, error) {
	for i, p := range m.projects {
		if p.ID == id && p.UserID == userID {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- tasks ---

type mockTaskRepo struct {
	tasks    []*model.Task
	projects *mockProjectRepo // for the project join on reads
	nextID   int

	listErr error

	// Canned aggregation results, plus a record of the "today" the service
	// passed in.
	stats    *repository.DashboardStats
	overdue  []model.TaskWithProject
	gotToday string
}

func newMockTaskRepo(projects *mockProjectRepo) *mockTaskRepo {
	return &mockTaskRepo{projects: projects}
}

func (m *mockTaskRepo) CreateTask(_ context.Context, task *model.Task) error {
	m.nextID++
	task.ID = fmt.Sprintf("task-%d", m.nextID)
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	stored := *task
	m.tasks = append(m.tasks, &stored)
	return nil
}

func (m *mockTaskRepo) join(task model.Task) model.TaskWithProject {
	twp := model.TaskWithProject{Task: task}
	if p, err := m.projects.GetProject(context.Background(), task.ProjectID, task.UserID); err == nil {
		twp.Project = *p
	}
	return twp
}

func (m *mockTaskRepo) GetTask(_ context.Context, id, userID string) (*model.TaskWithProject, error) {
	for _, task := range m.tasks {
		if task.ID == id && task.UserID == userID {
			twp := m.join(*task)
			return &twp, nil
		}
	}
	return nil, apperror.NotFound("Task")
}

func (m *mockTaskRepo) ListTasks(_ context.Context, userID string, filter repository.TaskFilter) ([]model.TaskWithProject, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []model.TaskWithProject{}
	for i := len(m.tasks) - 1; i >= 0; i-- {
		task := m.tasks[i]
		if task.UserID != userID {
			continue
		}
		if filter.ProjectID != "" && task.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		if filter.DeadlineFrom != "" && (task.Deadline == nil || *task.Deadline < filter.DeadlineFrom) {
			continue
		}
		if filter.DeadlineTo != "" && (task.Deadline == nil || *task.Deadline > filter.DeadlineTo) {
			continue
		}
		result = append(result, m.join(*task))
	}
	return result, nil
}

func (m *mockTaskRepo) UpdateTask(_ context.Context, id, userID string, upd repository.TaskUpdate) (*model.Task, error) {
	for _, task := range m.tasks {
		if task.ID != id || task.UserID != userID {
			continue
		}
		if upd.Title != nil {
			task.Title = *upd.Title
		}
		if upd.DescriptionSet {
			task.Description = upd.Description
		}
		if upd.Status != nil {
			task.Status = *upd.Status
		}
		if upd.Priority != nil {
			task.Priority = *upd.Priority
		}
		if upd.DeadlineSet {
			task.Deadline = upd.Deadline
		}
		if upd.ProjectID != nil {
			task.ProjectID = *upd.ProjectID
		}
		task.UpdatedAt = time.Now()
		result := *task
		return &result, nil
	}
	return nil, apperror.NotFound("Task")
}

func (m *mockTaskRepo) DeleteTask(_ context.Context, id, userID string) (bool, error) {
	for i, task := range m.tasks {
		if task.ID == id && task.UserID == userID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTaskRepo) DashboardStats(_ context.Context, _, today string) (*repository.DashboardStats, error) {
	m.gotToday = today
	if m.stats != nil {
		return m.stats, nil
	}
	return &repository.DashboardStats{TasksByStatus: []repository.StatusCount{}}, nil
}

func (m *mockTaskRepo) OverdueTasks(_ context.Context, _, today string) ([]model.TaskWithProject, error) {
	m.gotToday = today
	return m.overdue, nil
}

// --- shared helpers ---

// newTaskFixture builds a TaskService plus an owned project, the setup every
// task test starts from.
func newTaskFixture(t *testing.T, userID string) (*TaskService, *mockTaskRepo, *model.Project) {
	t.Helper()
	projects := newMockProjectRepo()
	tasks := newMockTaskRepo(projects)
	svc := NewTaskService(tasks, projects, testLogger())

	project := &model.Project{Name: "Fixture", UserID: userID}
	if err := projects.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("setup: CreateProject() error = %v", err)
	}
	return svc, tasks, project
}

func strPtr(s string) *string { return &s }
