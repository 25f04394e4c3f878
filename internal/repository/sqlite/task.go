package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
)

// compile-time check that *DB implements repository.TaskRepository
var _ repository.TaskRepository = (*DB)(nil)

// taskWithProjectColumns is the SELECT list shared by every query that joins
// a task to its owning project. Scan order must match scanTaskWithProject.
const taskWithProjectColumns = `
	t.id, t.title, t.description, t.status, t.priority, t.deadline,
	t.project_id, t.user_id, t.created_at, t.updated_at,
	p.id, p.name, p.description, p.user_id, p.created_at`

func scanTaskWithProject(scan func(...any) error) (*model.TaskWithProject, error) {
	var tw model.TaskWithProject
	err := scan(
		&tw.ID, &tw.Title, &tw.Description, &tw.Status, &tw.Priority, &tw.Deadline,
		&tw.ProjectID, &tw.UserID, &tw.CreatedAt, &tw.UpdatedAt,
		&tw.Project.ID, &tw.Project.Name, &tw.Project.Description,
		&tw.Project.UserID, &tw.Project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tw, nil
}

// CreateTask inserts a new task. ID, timestamps and the workflow defaults
// (status "todo", priority "medium") are assigned here — the validation
// layer deliberately leaves unsupplied fields unset.
//
// The caller (service layer) has already verified that ProjectID names a
// project owned by UserID; that invariant is application logic, not schema.
func (db *DB) CreateTask(ctx context.Context, task *model.Task) error {
	task.ID = uuid.NewString()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, deadline,
		                    project_id, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Deadline,
		task.ProjectID,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating task: %w", err)
	}

	return nil
}

// GetTask retrieves a single task joined to its project, scoped to the owner.
func (db *DB) GetTask(ctx context.Context, id, userID string) (*model.TaskWithProject, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+taskWithProjectColumns+`
		 FROM tasks t
		 INNER JOIN projects p ON p.id = t.project_id
		 WHERE t.id = ? AND t.user_id = ?`,
		id, userID,
	)

	tw, err := scanTaskWithProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Task")
		}
		return nil, fmt.Errorf("sqlite: getting task %s: %w", id, err)
	}

	return tw, nil
}

// ListTasks returns every task matching the filter, joined to its project,
// ordered newest-created first. All filter criteria are conjunctive; the
// deadline bounds are inclusive.
//
// The full filtered set is returned — the service slices pages out of it so
// the page and the total count always come from the same snapshot.
func (db *DB) ListTasks(ctx context.Context, userID string, filter repository.TaskFilter) ([]model.TaskWithProject, error) {
	where := []string{"t.user_id = ?"}
	args := []any{userID}

	if filter.ProjectID != "" {
		where = append(where, "t.project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		where = append(where, "t.priority = ?")
		args = append(args, filter.Priority)
	}
	if filter.DeadlineFrom != "" {
		where = append(where, "t.deadline >= ?")
		args = append(args, filter.DeadlineFrom)
	}
	if filter.DeadlineTo != "" {
		where = append(where, "t.deadline <= ?")
		args = append(args, filter.DeadlineTo)
	}

	// rowid breaks ties between tasks created in the same instant, keeping
	// the newest-first order (and therefore pagination) deterministic.
	query := `SELECT ` + taskWithProjectColumns + `
		 FROM tasks t
		 INNER JOIN projects p ON p.id = t.project_id
		 WHERE ` + strings.Join(where, " AND ") + `
		 ORDER BY t.created_at DESC, t.rowid DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.TaskWithProject{}
	for rows.Next() {
		tw, err := scanTaskWithProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning task row: %w", err)
		}
		tasks = append(tasks, *tw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask applies a partial update to a task scoped to its owner.
//
// Only the fields the update names appear in the SET clause; updated_at is
// always refreshed, even for an empty patch. RowsAffected distinguishes
// "updated" from "no such task for this user" — the latter surfaces as
// NotFound, never as an error leaking another user's data.
func (db *DB) UpdateTask(ctx context.Context, id, userID string, upd repository.TaskUpdate) (*model.Task, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now()}

	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.DescriptionSet {
		set = append(set, "description = ?")
		args = append(args, upd.Description) // nil clears the column
	}
	if upd.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if upd.DeadlineSet {
		set = append(set, "deadline = ?")
		args = append(args, upd.Deadline) // nil clears the column
	}
	if upd.ProjectID != nil {
		set = append(set, "project_id = ?")
		args = append(args, *upd.ProjectID)
	}

	args = append(args, id, userID)

	result, err := db.conn.ExecContext(ctx,
		`UPDATE tasks SET `+strings.Join(set, ", ")+` WHERE id = ? AND user_id = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating task %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("Task")
	}

	// Read the row back so the caller gets the stored state, including the
	// fields the patch didn't touch.
	var t model.Task
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, status, priority, deadline,
		        project_id, user_id, created_at, updated_at
		 FROM tasks WHERE id = ?`,
		id,
	).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Deadline,
		&t.ProjectID, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading back task %s: %w", id, err)
	}

	return &t, nil
}

// DeleteTask removes a task scoped to its owner. The bool reports whether a
// row existed; a foreign or nonexistent ID is (false, nil).
func (db *DB) DeleteTask(ctx context.Context, id, userID string) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting task %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DashboardStats computes the aggregate counts for one user in a single
// snapshot. Overdue means deadline strictly before today AND status is not
// "done" — a task with no deadline is never overdue, and neither is a task
// due exactly today.
func (db *DB) DashboardStats(ctx context.Context, userID, today string) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{TasksByStatus: []repository.StatusCount{}}

	err := db.conn.QueryRowContext(ctx,
		`SELECT count(*) FROM projects WHERE user_id = ?`, userID,
	).Scan(&stats.TotalProjects)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting projects: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT count(*) FROM tasks WHERE user_id = ?`, userID,
	).Scan(&stats.TotalTasks)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting tasks: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT count(*) FROM tasks WHERE user_id = ? AND status = ?`,
		userID, model.StatusDone,
	).Scan(&stats.CompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting completed tasks: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT count(*) FROM tasks
		 WHERE user_id = ? AND deadline IS NOT NULL AND deadline < ? AND status != ?`,
		userID, today, model.StatusDone,
	).Scan(&stats.OverdueTasks)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting overdue tasks: %w", err)
	}

	// Grouped by the literal stored status string: an unrecognized status
	// shows up as its own group, not folded into the canonical three.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT status, count(*) FROM tasks WHERE user_id = ? GROUP BY status`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting tasks by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc repository.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning status count: %w", err)
		}
		stats.TasksByStatus = append(stats.TasksByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating status counts: %w", err)
	}

	return stats, nil
}

// OverdueTasks lists the user's overdue tasks (same rule as the stats count),
// joined to their projects, oldest deadline first — the most overdue task
// leads the list.
func (db *DB) OverdueTasks(ctx context.Context, userID, today string) ([]model.TaskWithProject, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+taskWithProjectColumns+`
		 FROM tasks t
		 INNER JOIN projects p ON p.id = t.project_id
		 WHERE t.user_id = ? AND t.deadline IS NOT NULL AND t.deadline < ? AND t.status != ?
		 ORDER BY t.deadline ASC`,
		userID, today, model.StatusDone,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing overdue tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.TaskWithProject{}
	for rows.Next() {
		tw, err := scanTaskWithProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning overdue task row: %w", err)
		}
		tasks = append(tasks, *tw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating overdue tasks: %w", err)
	}

	return tasks, nil
}
