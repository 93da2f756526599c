package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

// accountRepository is the PostgreSQL-backed ("remote") implementation of
// [AccountRepository]. Each bot account is one row in the "bot_nodes" table:
// {id, tenant_token, data}, where data holds the full serialized
// [models.BotAccount] including its nested config.
//
// Row-level upserts make concurrent writes to different accounts naturally
// safe; no whole-collection rewrite ever happens in this strategy.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
	sq     sq.StatementBuilderType
}

// NewAccountRepository constructs the remote-strategy [AccountRepository]
// backed by the provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// LoadAll returns every account stored under the given tenant token.
//
// A first-time tenant yields an empty slice. A row whose payload cannot be
// decoded is logged at warn level and skipped; malformed persisted data
// must never surface as a hard failure to the caller.
func (r *accountRepository) LoadAll(ctx context.Context, tenantKey string) ([]models.BotAccount, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Select("data").
		From("bot_nodes").
		Where(sq.Eq{"tenant_token": tenantKey}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.LoadAll").
			Str("tenant", tenantKey).
			Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.LoadAll").
			Str("tenant", tenantKey).
			Msg("failed to execute query for loading tenant accounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.BotAccount, 0, 8)

	for rows.Next() {
		var payload []byte
		if scanErr := rows.Scan(&payload); scanErr != nil {
			log.Err(scanErr).
				Str("func", "accountRepository.LoadAll").
				Str("tenant", tenantKey).
				Msg("failed to scan account row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		var account models.BotAccount
		if decodeErr := json.Unmarshal(payload, &account); decodeErr != nil {
			// malformed rows degrade to absent
			log.Warn().
				Err(decodeErr).
				Str("func", "accountRepository.LoadAll").
				Str("tenant", tenantKey).
				Msg("skipping undecodable account row")
			continue
		}

		accounts = append(accounts, account)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "accountRepository.LoadAll").
			Str("tenant", tenantKey).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return accounts, nil
}

// Upsert inserts the account or fully replaces the existing row with the
// same identifier. The tenant token column is overwritten together with the
// payload so an account can never end up orphaned under a stale tenant.
func (r *accountRepository) Upsert(ctx context.Context, tenantKey string, account models.BotAccount) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(account)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.Upsert").
			Str("account_id", account.ID).
			Msg("failed to serialize account")
		return fmt.Errorf("failed to serialize account %s: %w", account.ID, err)
	}

	query, args, err := r.sq.
		Insert("bot_nodes").
		Columns("id", "tenant_token", "data").
		Values(account.ID, tenantKey, payload).
		Suffix("ON CONFLICT (id) DO UPDATE SET tenant_token = EXCLUDED.tenant_token, data = EXCLUDED.data").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.Upsert").
			Str("account_id", account.ID).
			Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "accountRepository.Upsert").
			Str("tenant", tenantKey).
			Str("account_id", account.ID).
			Msg("failed to execute upsert for account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Remove deletes the account row by identifier. Removing an absent account
// is a no-op, never an error, so repeated removals converge to the same
// end state.
func (r *accountRepository) Remove(ctx context.Context, tenantKey string, accountID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Delete("bot_nodes").
		Where(sq.Eq{"id": accountID, "tenant_token": tenantKey}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.Remove").
			Str("account_id", accountID).
			Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "accountRepository.Remove").
			Str("tenant", tenantKey).
			Str("account_id", accountID).
			Msg("failed to execute delete for account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
