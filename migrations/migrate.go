// Package migrations holds the embedded goose migrations for the remote
// (PostgreSQL) storage mode: users, sessions and the bot_nodes account
// table. Local mode bootstraps its sqlite schema inline and never runs
// these.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schema embed.FS

// Migrate brings the connected database up to the latest schema version.
// Safe to call on every startup: goose skips versions already applied.
func Migrate(db *sql.DB) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(schema)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
