package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/taskflow/internal/model"
)

// Test helpers shared by the per-entity test files.
//
// ":memory:" gives each test its own throwaway database — fast, isolated,
// destroyed when the connection closes. Foreign keys are ON, so every task
// needs a real project and every project a real user; these helpers build
// that chain.

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, githubID int64) *model.User {
	t.Helper()
	user := &model.User{
		GitHubID:  githubID,
		Email:     "dev@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if err := db.Upsert(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProject(t *testing.T, db *DB, userID, name string) *model.Project {
	t.Helper()
	project := &model.Project{Name: name, UserID: userID}
	if err := db.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

func createTestTask(t *testing.T, db *DB, projectID, userID, title string) *model.Task {
	t.Helper()
	task := &model.Task{Title: title, ProjectID: projectID, UserID: userID}
	if err := db.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

func strPtr(s string) *string { return &s }
