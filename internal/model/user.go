// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered user account.
//
// We use GitHub OAuth as the identity provider, so the primary external
// identifier is the GitHub user ID (an integer). We still generate our own
// internal string ID (xid) so our primary keys aren't tied to a third-party's
// numbering scheme.
//
// A user row is created (or refreshed) on every successful login — an upsert
// keyed by github_id. Users are never deleted by this system.
//
// WHY FirstName/LastName AND NOT A SINGLE Name?
// The dashboard greets users by first name and the task cards show initials,
// so the profile is stored split. GitHub only returns a single display name;
// the auth service splits it on the first space at upsert time.
type User struct {
	ID        string    `json:"id"        db:"id"`
	GitHubID  int64     `json:"githubId"  db:"github_id"` // GitHub's numeric user ID
	Email     string    `json:"email"     db:"email"`     // Primary public email (may be empty)
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName"  db:"last_name"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"` // Profile picture URL
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
