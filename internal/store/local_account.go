package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

// maxMergeAttempts bounds the optimistic-revision retry loop of the local
// blob strategy before the write is reported as failed.
const maxMergeAttempts = 5

// localAccountRepository is the sqlite-backed ("local") implementation of
// [AccountRepository]. All accounts of one tenant are serialized as a single
// JSON blob in the tenant_blobs table, under a key derived from the tenant
// identifier (the browser-storage strategy of the dashboard).
//
// Because a blob write replaces the whole collection, every mutation runs a
// read-merge-write cycle guarded by a revision counter: the UPDATE only
// lands if the revision read at the start is still current, otherwise the
// cycle retries. Concurrent upserts of different accounts therefore cannot
// clobber each other's records.
type localAccountRepository struct {
	logger *logger.Logger
	db     *DB

	// mu serializes in-process merge cycles; the revision guard still
	// protects against other processes holding the same file.
	mu sync.Mutex
}

// NewLocalAccountRepository constructs the local-strategy
// [AccountRepository] backed by the sqlite database.
func NewLocalAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating local account repository")
	return &localAccountRepository{
		db:     db,
		logger: logger,
	}
}

// LoadAll deserializes the tenant's whole collection. A first-time tenant
// (no blob yet) and an undecodable blob both degrade to an empty slice; the
// latter is logged at warn level. LastActive timestamps are revived from
// their serialized form by the JSON decoder.
func (r *localAccountRepository) LoadAll(ctx context.Context, tenantKey string) ([]models.BotAccount, error) {
	log := logger.FromContext(ctx)

	_, payload, err := r.readBlob(ctx, tenantKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.BotAccount{}, nil
		}

		log.Err(err).
			Str("func", "localAccountRepository.LoadAll").
			Str("tenant", tenantKey).
			Msg("failed to read tenant blob")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var accounts []models.BotAccount
	if decodeErr := json.Unmarshal([]byte(payload), &accounts); decodeErr != nil {
		// malformed blob degrades to empty
		log.Warn().
			Err(decodeErr).
			Str("func", "localAccountRepository.LoadAll").
			Str("tenant", tenantKey).
			Msg("tenant blob is undecodable, treating as empty")
		return []models.BotAccount{}, nil
	}

	if accounts == nil {
		accounts = []models.BotAccount{}
	}

	return accounts, nil
}

// Upsert inserts the account into the tenant's blob or replaces the entry
// with the same identifier.
func (r *localAccountRepository) Upsert(ctx context.Context, tenantKey string, account models.BotAccount) error {
	return r.merge(ctx, tenantKey, func(accounts []models.BotAccount) []models.BotAccount {
		for i := range accounts {
			if accounts[i].ID == account.ID {
				accounts[i] = account
				return accounts
			}
		}

		return append(accounts, account)
	})
}

// Remove drops the account from the tenant's blob. Removing an absent
// account leaves the blob untouched.
func (r *localAccountRepository) Remove(ctx context.Context, tenantKey string, accountID string) error {
	return r.merge(ctx, tenantKey, func(accounts []models.BotAccount) []models.BotAccount {
		kept := accounts[:0]
		for _, account := range accounts {
			if account.ID != accountID {
				kept = append(kept, account)
			}
		}

		return kept
	})
}

// merge runs one read-merge-write cycle: load the current blob, apply the
// mutation to the decoded collection, and write the result back only if the
// revision is unchanged. Lost races retry up to maxMergeAttempts.
func (r *localAccountRepository) merge(ctx context.Context, tenantKey string, apply func([]models.BotAccount) []models.BotAccount) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	for attempt := 0; attempt < maxMergeAttempts; attempt++ {
		revision, payload, err := r.readBlob(ctx, tenantKey)
		exists := true
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				log.Err(err).
					Str("func", "localAccountRepository.merge").
					Str("tenant", tenantKey).
					Msg("failed to read tenant blob")
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
			exists = false
		}

		var accounts []models.BotAccount
		if exists {
			if decodeErr := json.Unmarshal([]byte(payload), &accounts); decodeErr != nil {
				log.Warn().
					Err(decodeErr).
					Str("func", "localAccountRepository.merge").
					Str("tenant", tenantKey).
					Msg("tenant blob is undecodable, rebuilding from scratch")
				accounts = nil
			}
		}

		merged, err := json.Marshal(apply(accounts))
		if err != nil {
			return fmt.Errorf("failed to serialize tenant %s accounts: %w", tenantKey, err)
		}

		if !exists {
			if _, err = r.db.ExecContext(ctx, localInsertBlob, tenantKey, string(merged)); err != nil {
				if isSQLiteUniqueViolation(err) {
					// another writer created the blob first
					continue
				}
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			return nil
		}

		res, err := r.db.ExecContext(ctx, localUpdateBlob, string(merged), tenantKey, revision)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected > 0 {
			return nil
		}
		// revision moved underneath us, retry the cycle
	}

	log.Error().
		Str("func", "localAccountRepository.merge").
		Str("tenant", tenantKey).
		Msg("tenant blob write lost every merge attempt")
	return fmt.Errorf("tenant %s: blob revision contention, giving up after %d attempts", tenantKey, maxMergeAttempts)
}

func (r *localAccountRepository) readBlob(ctx context.Context, tenantKey string) (int64, string, error) {
	var revision int64
	var payload string

	row := r.db.QueryRowContext(ctx, localSelectBlob, tenantKey)
	if err := row.Scan(&revision, &payload); err != nil {
		return 0, "", err
	}

	return revision, payload, nil
}
