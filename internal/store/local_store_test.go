// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleasistemi/botmanager/internal/config"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

func newLocalDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "botmanager-test.db")

	db, err := NewConnectSQLite(ctx, config.Local{Path: path}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestLocalUserRepository_RoundTrip(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalUserRepository(db, logger.Nop())
	ctx := context.Background()

	user := models.User{
		ID:           "u-1",
		Name:         "John",
		Email:        "john@example.com",
		Role:         "admin",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().Truncate(time.Second),
	}

	created, err := repo.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.Email, created.Email)

	byEmail, err := repo.FindUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)

	byID, err := repo.FindUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "John", byID.Name)
}

func TestLocalUserRepository_DuplicateEmail(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalUserRepository(db, logger.Nop())
	ctx := context.Background()

	user := models.User{ID: "u-1", Name: "John", Email: "dup@example.com", PasswordHash: "h", CreatedAt: time.Now()}
	_, err := repo.CreateUser(ctx, user)
	require.NoError(t, err)

	user.ID = "u-2"
	_, err = repo.CreateUser(ctx, user)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLocalUserRepository_UnknownEmail(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalUserRepository(db, logger.Nop())

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestLocalSessionRepository_RoundTrip(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalSessionRepository(db, logger.Nop())
	ctx := context.Background()

	session := models.Session{TokenID: "jti-1", UserID: "u-1", CreatedAt: time.Now().Truncate(time.Second)}
	require.NoError(t, repo.SaveSession(ctx, session))

	found, err := repo.FindSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.UserID)

	require.NoError(t, repo.DeleteSession(ctx, "jti-1"))

	_, err = repo.FindSession(ctx, "jti-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// deleting again is a no-op
	require.NoError(t, repo.DeleteSession(ctx, "jti-1"))
}

func TestLocalAccountRepository_FirstTimeTenantIsEmpty(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalAccountRepository(db, logger.Nop())

	accounts, err := repo.LoadAll(context.Background(), "fresh-tenant")
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestLocalAccountRepository_UpsertLoadRoundTrip(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalAccountRepository(db, logger.Nop())
	ctx := context.Background()

	lastActive := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	account := models.BotAccount{
		ID:           "a-1",
		InstanceID:   "692C275AE02BB",
		UserID:       "u-1",
		Name:         "Support",
		PhoneNumber:  "+39 333 000 1122",
		Status:       models.StatusConnected,
		ServerStatus: models.ServerOnline,
		IsActive:     true,
		AvatarColor:  models.AvatarPalette[0],
		LastActive:   &lastActive,
		Config:       models.DefaultBotConfig(),
	}

	require.NoError(t, repo.Upsert(ctx, "u-1", account))

	loaded, err := repo.LoadAll(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, account.InstanceID, got.InstanceID)
	assert.Equal(t, models.DefaultTemperature, got.Config.Temperature)

	// LastActive is revived as a real timestamp with second precision
	require.NotNil(t, got.LastActive)
	assert.True(t, got.LastActive.Equal(lastActive))
}

func TestLocalAccountRepository_UpsertReplacesByID(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalAccountRepository(db, logger.Nop())
	ctx := context.Background()

	first := models.BotAccount{ID: "a-1", Name: "Support"}
	second := models.BotAccount{ID: "a-2", Name: "Sales"}
	require.NoError(t, repo.Upsert(ctx, "u-1", first))
	require.NoError(t, repo.Upsert(ctx, "u-1", second))

	first.Name = "Support v2"
	require.NoError(t, repo.Upsert(ctx, "u-1", first))

	loaded, err := repo.LoadAll(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Support v2", loaded[0].Name)
	assert.Equal(t, "Sales", loaded[1].Name)
}

func TestLocalAccountRepository_RemoveIsIdempotent(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalAccountRepository(db, logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "u-1", models.BotAccount{ID: "a-1", Name: "Support"}))
	require.NoError(t, repo.Upsert(ctx, "u-1", models.BotAccount{ID: "a-2", Name: "Sales"}))

	require.NoError(t, repo.Remove(ctx, "u-1", "a-1"))
	require.NoError(t, repo.Remove(ctx, "u-1", "a-1"))

	loaded, err := repo.LoadAll(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a-2", loaded[0].ID)
}

func TestLocalAccountRepository_TenantsAreIsolated(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalAccountRepository(db, logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "u-1", models.BotAccount{ID: "a-1", Name: "Mine"}))
	require.NoError(t, repo.Upsert(ctx, "u-2", models.BotAccount{ID: "a-2", Name: "Theirs"}))

	mine, err := repo.LoadAll(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)

	theirs, err := repo.LoadAll(ctx, "u-2")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "Theirs", theirs[0].Name)
}

func TestLocalAccountRepository_UndecodableBlobDegradesToEmpty(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalAccountRepository(db, logger.Nop())
	ctx := context.Background()

	_, err := db.ExecContext(ctx, localInsertBlob, "u-1", "{corrupted")
	require.NoError(t, err)

	loaded, err := repo.LoadAll(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLocalAccountRepository_InterleavedUpsertsKeepUnrelatedRecords(t *testing.T) {
	db := newLocalDB(t)
	repo := NewLocalAccountRepository(db, logger.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "u-1", models.BotAccount{ID: "a-1", Name: "First"}))

	done := make(chan error, 2)
	go func() { done <- repo.Upsert(ctx, "u-1", models.BotAccount{ID: "a-2", Name: "Second"}) }()
	go func() { done <- repo.Upsert(ctx, "u-1", models.BotAccount{ID: "a-3", Name: "Third"}) }()

	require.NoError(t, <-done)
	require.NoError(t, <-done)

	loaded, err := repo.LoadAll(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
}
