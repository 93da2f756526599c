package store

import (
	"context"

	"github.com/aleasistemi/botmanager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists registered users. Email uniqueness is enforced by
// the backing store; a duplicate registration surfaces as
// [ErrEmailAlreadyExists].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
}

// SessionRepository persists the marker for established sessions, keyed by
// the token id (jti). A missing row reads as [ErrSessionNotFound]; deleting
// an absent row is a no-op.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	FindSession(ctx context.Context, tokenID string) (models.Session, error)
	DeleteSession(ctx context.Context, tokenID string) error
}

// AccountRepository is the pluggable backing store for bot accounts, scoped
// by tenant key. Two interchangeable strategies implement it: a sqlite
// per-tenant blob (local) and a PostgreSQL row-per-account table (remote).
//
// LoadAll returns an empty slice for a first-time tenant and degrades
// malformed stored records to absent instead of failing. Upsert inserts or
// fully replaces by account identifier. Remove deletes if present and is a
// no-op otherwise.
type AccountRepository interface {
	LoadAll(ctx context.Context, tenantKey string) ([]models.BotAccount, error)
	Upsert(ctx context.Context, tenantKey string, account models.BotAccount) error
	Remove(ctx context.Context, tenantKey string, accountID string) error
}
