package store

import (
	"context"
	"fmt"

	"github.com/aleasistemi/botmanager/internal/config"
	"github.com/aleasistemi/botmanager/internal/logger"
)

// Storages bundles the repositories of the selected storage mode behind the
// strategy-agnostic interfaces the service layer depends on.
type Storages struct {
	Users    UserRepository
	Sessions SessionRepository
	Accounts AccountRepository

	db *DB
}

// NewStorages connects the backing store selected by cfg.Mode and wires the
// matching repository implementations. In remote mode pending migrations
// are applied before any repository is handed out; in local mode the sqlite
// schema is bootstrapped by the connect call itself.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.Mode {
	case config.StorageModeRemote:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting postgres: %w", err)
		}

		if err = db.Migrate(); err != nil {
			return nil, fmt.Errorf("error running migrations: %w", err)
		}

		return &Storages{
			Users:    NewUserRepository(db, log),
			Sessions: NewSessionRepository(db, log),
			Accounts: NewAccountRepository(db, log),
			db:       db,
		}, nil

	case config.StorageModeLocal:
		db, err := NewConnectSQLite(ctx, cfg.Local, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting sqlite: %w", err)
		}

		return &Storages{
			Users:    NewLocalUserRepository(db, log),
			Sessions: NewLocalSessionRepository(db, log),
			Accounts: NewLocalAccountRepository(db, log),
			db:       db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Mode)
	}
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
