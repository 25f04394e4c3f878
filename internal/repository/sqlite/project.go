package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
)

// compile-time check that *DB implements repository.ProjectRepository
var _ repository.ProjectRepository = (*DB)(nil)

// CreateProject inserts a new project. The ID and created_at are assigned
// here, server-side; the caller supplies name, description and owner.
func (db *DB) CreateProject(ctx context.Context, project *model.Project) error {
	project.ID = uuid.NewString()
	project.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO projects (id, name, description, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		project.Description,
		project.UserID,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	return nil
}

// GetProject retrieves a project by ID, scoped to its owner. A project owned
// by someone else yields the same NotFound as a nonexistent ID — existence
// must not leak.
func (db *DB) GetProject(ctx context.Context, id, userID string) (*model.Project, error) {
	var p model.Project

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, user_id, created_at
		 FROM projects
		 WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.UserID,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Project")
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}

	return &p, nil
}

// ListProjects returns all of the user's projects, newest first.
func (db *DB) ListProjects(ctx context.Context, userID string) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, user_id, created_at
		 FROM projects
		 WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}

	return projects, nil
}

// DeleteProject removes a project and all of its tasks in one transaction —
// tasks first, then the project, so the foreign key never dangles and either
// both deletes happen or neither does.
//
// The bool reports whether a project row actually existed (scoped to the
// owner). Deleting someone else's project, or a nonexistent ID, returns
// (false, nil) — not an error.
func (db *DB) DeleteProject(ctx context.Context, id, userID string) (bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("sqlite: beginning delete transaction: %w", err)
	}
	defer tx.Rollback() // no-op after a successful Commit

	// Child tasks go first. Scoping by user_id as well as project_id is
	// belt-and-braces: tasks always share their project's owner.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tasks WHERE project_id = ? AND user_id = ?`,
		id, userID,
	); err != nil {
		return false, fmt.Errorf("sqlite: deleting tasks of project %s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("sqlite: committing delete of project %s: %w", id, err)
	}

	return rowsAffected > 0, nil
}
