package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

// localSessionRepository is the sqlite-backed implementation of
// [SessionRepository] used in local storage mode.
type localSessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLocalSessionRepository constructs a [SessionRepository] backed by the
// local sqlite database.
func NewLocalSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating local session repository")
	return &localSessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *localSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, localSaveSession, session.TokenID, session.UserID, session.CreatedAt); err != nil {
		log.Err(err).Str("func", "*localSessionRepository.SaveSession").Str("user_id", session.UserID).Msg("error: session insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *localSessionRepository) FindSession(ctx context.Context, tokenID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, localFindSession, tokenID)

	if err := row.Scan(&session.TokenID, &session.UserID, &session.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*localSessionRepository.FindSession").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

func (r *localSessionRepository) DeleteSession(ctx context.Context, tokenID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, localDeleteSession, tokenID); err != nil {
		log.Err(err).Str("func", "*localSessionRepository.DeleteSession").Msg("error: session delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
