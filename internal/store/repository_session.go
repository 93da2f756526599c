package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. One row per established session, keyed by token id.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSession persists the session marker. Saving the same token id twice
// is a no-op (ON CONFLICT DO NOTHING), so re-establishing is idempotent.
func (r *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, saveSession, session.TokenID, session.UserID, session.CreatedAt); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SaveSession").Str("user_id", session.UserID).Msg("error: session insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindSession reads the persisted session marker for the given token id.
// A missing row maps to [ErrSessionNotFound].
func (r *sessionRepository) FindSession(ctx context.Context, tokenID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findSession, tokenID)

	if err := row.Scan(&session.TokenID, &session.UserID, &session.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*sessionRepository.FindSession").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// DeleteSession removes the session marker. Deleting an absent row is a
// no-op, never an error.
func (r *sessionRepository) DeleteSession(ctx context.Context, tokenID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSession, tokenID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error: session delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
