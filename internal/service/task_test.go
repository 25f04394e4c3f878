package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
	"github.com/sakif/taskflow/internal/validation"
)

func TestTaskList_DefaultsApplied(t *testing.T) {
	svc, _, _ := newTaskFixture(t, "user-1")

	page, err := svc.List(context.Background(), "user-1", repository.TaskFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Page != DefaultPage {
		t.Errorf("Page = %d, want %d", page.Page, DefaultPage)
	}
	if page.Limit != DefaultTaskLimit {
		t.Errorf("Limit = %d, want %d", page.Limit, DefaultTaskLimit)
	}
	if page.Tasks == nil {
		t.Error("Tasks should be an empty slice, not nil")
	}
}

func TestTaskList_NegativeValuesFallBack(t *testing.T) {
	svc, _, _ := newTaskFixture(t, "user-1")

	page, err := svc.List(context.Background(), "user-1", repository.TaskFilter{}, -3, -10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Page != DefaultPage || page.Limit != DefaultTaskLimit {
		t.Errorf("page/limit = %d/%d, want %d/%d", page.Page, page.Limit, DefaultPage, DefaultTaskLimit)
	}
}

func TestTaskList_Pagination(t *testing.T) {
	svc, _, project := newTaskFixture(t, "user-1")

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), "user-1", &validation.TaskInput{
			Title:     fmt.Sprintf("task %d", i),
			ProjectID: project.ID,
		})
		if err != nil {
			t.Fatalf("setup: Create() error = %v", err)
		}
	}

	page, err := svc.List(context.Background(), "user-1", repository.TaskFilter{}, 2, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// Total describes the whole filtered set, not the page.
	if page.Total != 5 {
		t.Errorf("Total = %d, want 5", page.Total)
	}
	if len(page.Tasks) != 2 {
		t.Fatalf("len(Tasks) = %d, want 2", len(page.Tasks))
	}
	// Newest first: page 2 of limit 2 holds the 3rd and 4th newest.
	if page.Tasks[0].Title != "task 2" || page.Tasks[1].Title != "task 1" {
		t.Errorf("page 2 = [%q, %q], want [%q, %q]",
			page.Tasks[0].Title, page.Tasks[1].Title, "task 2", "task 1")
	}
}

func TestTaskList_PageBeyondEnd(t *testing.T) {
	svc, _, project := newTaskFixture(t, "user-1")

	_, err := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "only one",
		ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	page, err := svc.List(context.Background(), "user-1", repository.TaskFilter{}, 99, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Tasks) != 0 {
		t.Errorf("len(Tasks) = %d, want 0", len(page.Tasks))
	}
	if page.Total != 1 {
		t.Errorf("Total = %d, want 1", page.Total)
	}
}

func TestTaskCreate_StorageDefaults(t *testing.T) {
	svc, _, project := newTaskFixture(t, "user-1")

	task, err := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "defaults",
		ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.Status != model.StatusTodo {
		t.Errorf("Status = %q, want %q", task.Status, model.StatusTodo)
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want %q", task.Priority, model.PriorityMedium)
	}
	if task.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", task.UserID, "user-1")
	}
}

func TestTaskCreate_ExplicitFieldsKept(t *testing.T) {
	svc, _, project := newTaskFixture(t, "user-1")

	task, err := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "explicit",
		Status:    strPtr(model.StatusInProgress),
		Priority:  strPtr(model.PriorityHigh),
		Deadline:  strPtr("2026-01-31"),
		ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.Status != model.StatusInProgress {
		t.Errorf("Status = %q, want %q", task.Status, model.StatusInProgress)
	}
	if task.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q, want %q", task.Priority, model.PriorityHigh)
	}
	if task.Deadline == nil || *task.Deadline != "2026-01-31" {
		t.Errorf("Deadline = %v, want 2026-01-31", task.Deadline)
	}
}

func TestTaskCreate_ForeignProjectRejected(t *testing.T) {
	svc, tasks, _ := newTaskFixture(t, "user-1")

	// A project that exists but belongs to someone else.
	other := &model.Project{Name: "Theirs", UserID: "user-2"}
	if err := tasks.projects.CreateProject(context.Background(), other); err != nil {
		t.Fatalf("setup: CreateProject() error = %v", err)
	}

	_, err := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "sneaky",
		ProjectID: other.ID,
	})
	if err == nil {
		t.Fatal("Create() should reject a project owned by another user")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Field != "projectId" {
		t.Errorf("error should name the projectId field, got %+v", appErr)
	}
}

func TestTaskCreate_MissingProjectRejected(t *testing.T) {
	svc, _, _ := newTaskFixture(t, "user-1")

	_, err := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "orphan",
		ProjectID: "no-such-project",
	})
	if err == nil {
		t.Fatal("Create() should reject a nonexistent project")
	}
	// Missing and foreign look identical — both are validation failures,
	// so a caller can't probe for other users' project ids.
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestTaskUpdate_PartialFields(t *testing.T) {
	svc, _, project := newTaskFixture(t, "user-1")

	created, err := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "before",
		Priority:  strPtr(model.PriorityHigh),
		ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, "user-1", &validation.TaskPatch{
		Title: strPtr("after"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "after" {
		t.Errorf("Title = %q, want %q", updated.Title, "after")
	}
	// Untouched fields survive.
	if updated.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q, want untouched %q", updated.Priority, model.PriorityHigh)
	}
}

func TestTaskUpdate_MoveToOwnProject(t *testing.T) {
	svc, tasks, project := newTaskFixture(t, "user-1")

	second := &model.Project{Name: "Second", UserID: "user-1"}
	if err := tasks.projects.CreateProject(context.Background(), second); err != nil {
		t.Fatalf("setup: CreateProject() error = %v", err)
	}

	created, _ := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "mover",
		ProjectID: project.ID,
	})

	updated, err := svc.Update(context.Background(), created.ID, "user-1", &validation.TaskPatch{
		ProjectID: strPtr(second.ID),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ProjectID != second.ID {
		t.Errorf("ProjectID = %q, want %q", updated.ProjectID, second.ID)
	}
}

func TestTaskUpdate_MoveToForeignProjectRejected(t *testing.T) {
	svc, tasks, project := newTaskFixture(t, "user-1")

	foreign := &model.Project{Name: "Theirs", UserID: "user-2"}
	if err := tasks.projects.CreateProject(context.Background(), foreign); err != nil {
		t.Fatalf("setup: CreateProject() error = %v", err)
	}

	created, _ := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "stays put",
		ProjectID: project.ID,
	})

	_, err := svc.Update(context.Background(), created.ID, "user-1", &validation.TaskPatch{
		ProjectID: strPtr(foreign.ID),
	})
	if err == nil {
		t.Fatal("Update() should reject a move to another user's project")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestTaskUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTaskFixture(t, "user-1")

	_, err := svc.Update(context.Background(), "nonexistent", "user-1", &validation.TaskPatch{
		Title: strPtr("ghost"),
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTaskDelete_Success(t *testing.T) {
	svc, _, project := newTaskFixture(t, "user-1")

	created, _ := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "doomed",
		ProjectID: project.ID,
	})

	if err := svc.Delete(context.Background(), created.ID, "user-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := svc.Get(context.Background(), created.ID, "user-1")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}
}

func TestTaskDelete_ForeignTaskIsNotFound(t *testing.T) {
	svc, _, project := newTaskFixture(t, "user-1")

	created, _ := svc.Create(context.Background(), "user-1", &validation.TaskInput{
		Title:     "protected",
		ProjectID: project.ID,
	})

	err := svc.Delete(context.Background(), created.ID, "user-2")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	// Still there for the real owner.
	if _, err := svc.Get(context.Background(), created.ID, "user-1"); err != nil {
		t.Errorf("owner's Get() after foreign delete attempt: error = %v", err)
	}
}
