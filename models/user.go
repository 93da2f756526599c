package models

import "time"

// User represents a registered dashboard tenant. Every bot account is owned
// by exactly one user; the user's ID doubles as the tenant key that scopes
// the account repository.
//
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the opaque, stable identifier of the user (UUID string).
	ID string `json:"id"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Email is the unique login identifier within the tenant namespace.
	// Uniqueness is enforced by the backing user store at registration time.
	Email string `json:"email"`

	// Role is an optional role tag (e.g. "admin"). Informational only.
	Role string `json:"role,omitempty"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never plaintext, never serialized to JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of the user safe to hand to the presentation
// layer: the credential hash is stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// TenantKey returns the scoping key under which this user's bot accounts
// are stored. Both storage strategies use the user's own identifier; the
// shared-token scoping of early deployments is intentionally not supported.
func (u User) TenantKey() string {
	return u.ID
}
