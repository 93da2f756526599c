package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

// localUserRepository is the sqlite-backed implementation of
// [UserRepository] used in local storage mode.
type localUserRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLocalUserRepository constructs a [UserRepository] backed by the local
// sqlite database.
func NewLocalUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating local user repository")
	return &localUserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *localUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, localCreateUser,
		user.ID, user.Name, user.Email, user.Role, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*localUserRepository.CreateUser").Str("email", user.Email).Msg("error: user insert failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

func (r *localUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, localFindUserByEmail, email)
}

func (r *localUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, localFindUserByID, id)
}

func (r *localUserRepository) findUser(ctx context.Context, query, arg string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&foundUser.ID, &foundUser.Name, &foundUser.Email, &foundUser.Role, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*localUserRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return foundUser, nil
}

// isSQLiteUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure, the local analogue of PostgreSQL's 23505.
func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
