package service

import (
	"context"
	"time"

	"github.com/aleasistemi/botmanager/models"
)

// SessionService handles user registration, credential verification and the
// JWT session lifecycle.
type SessionService interface {
	Register(ctx context.Context, name, email, password string) (models.User, models.Token, error)
	Login(ctx context.Context, email, password string) (models.User, models.Token, error)

	// CurrentUser resolves the user behind a raw bearer token. A malformed,
	// expired or revoked token yields (zero, false) rather than an error.
	CurrentUser(ctx context.Context, tokenString string) (models.User, bool)

	// Logout revokes the session behind the token. Unknown or malformed
	// tokens are ignored.
	Logout(ctx context.Context, tokenString string)

	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AccountService is the in-memory account collection of each tenant, the
// single source of truth the HTTP layer reads from. Every mutation updates
// memory first and persists in the background; persistence outcomes are
// reported through MutationReceipt records.
type AccountService interface {
	Accounts(ctx context.Context, tenantKey string) []models.BotAccount
	CreateAccount(ctx context.Context, tenantKey, name, phoneNumber string) (models.BotAccount, error)
	UpdateAccount(ctx context.Context, tenantKey string, account models.BotAccount) (models.BotAccount, error)
	DeleteAccount(ctx context.Context, tenantKey, accountID string)

	// Account is a pure lookup with no side effects.
	Account(ctx context.Context, tenantKey, accountID string) (models.BotAccount, bool)
	Selected(ctx context.Context, tenantKey string) (models.BotAccount, bool)

	Disconnect(ctx context.Context, tenantKey, accountID string) (models.BotAccount, error)
	MarkConnected(ctx context.Context, tenantKey, accountID string) (models.BotAccount, error)

	SyncState(ctx context.Context, tenantKey string) []models.MutationReceipt
	RetryFailed(ctx context.Context)

	// Flush blocks until every in-flight background persist has settled.
	Flush()
}

// DeployService pushes an account's bot configuration to its WhatsApp bot
// server and verifies the configuration against the model provider.
type DeployService interface {
	Deploy(ctx context.Context, tenantKey, accountID, serverURL string) error
	CheckConfig(ctx context.Context, cfg models.BotConfig) error
}

// SyncJob periodically re-drives failed background persists.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
