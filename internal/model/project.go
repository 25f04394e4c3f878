package model

import "time"

// Project is a container for tasks, owned by exactly one user.
//
// Description is a *string (not string) because it's genuinely nullable:
// "no description" and "empty description" are different things on the wire —
// the client renders a placeholder for null but shows an empty box for "".
//
// There is no update endpoint for projects — they're created and deleted only.
// Deleting a project deletes all of its tasks (see sqlite.DeleteProject).
type Project struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Description *string   `json:"description" db:"description"`
	UserID      string    `json:"userId"      db:"user_id"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
}
