package model

import "time"

// Task priority values. Priority is a closed set — validation rejects
// anything outside these three.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Canonical task statuses. These are what the kanban board offers, but —
// deliberately — NOT what the store enforces: status is free-form text and
// any string round-trips unchanged. The board renders unknown statuses as
// their own column, and the dashboard groups by the literal stored string.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Task is a unit of work inside a project.
//
// Deadline is a calendar date with no time component, carried as a *string in
// "YYYY-MM-DD" form (nil = no deadline). Keeping it a string rather than a
// time.Time avoids inventing a timezone for a date that doesn't have one, and
// ISO dates compare correctly as plain strings — which the overdue queries
// rely on.
//
// UserID is a denormalized copy of the owning project's user id. The service
// layer keeps the two in sync by resolving the project (scoped to the
// requester) before any insert or project move.
type Task struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description *string   `json:"description" db:"description"`
	Status      string    `json:"status"      db:"status"`
	Priority    string    `json:"priority"    db:"priority"`
	Deadline    *string   `json:"deadline"    db:"deadline"`
	ProjectID   string    `json:"projectId"   db:"project_id"`
	UserID      string    `json:"userId"      db:"user_id"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// TaskWithProject is a task with its parent project embedded.
//
// Read endpoints always return this shape so the client never needs a second
// round trip to label a task with its project name. The embedded Task keeps
// the JSON flat: {"id": ..., "title": ..., "project": {...}}.
type TaskWithProject struct {
	Task
	Project Project `json:"project"`
}
