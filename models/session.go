package models

import "time"

// Session is the persisted marker for an authenticated user. One row is
// written on register/login and removed on logout, so a restarted process
// (or a token replay after logout) can tell a live session from a revoked
// one.
type Session struct {
	// TokenID is the jti claim of the JWT issued for this session.
	TokenID string `json:"token_id"`

	// UserID is the identifier of the authenticated user.
	UserID string `json:"user_id"`

	// CreatedAt is when the session was established.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
