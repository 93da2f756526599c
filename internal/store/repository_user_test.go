package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		ID:           "u-1",
		Name:         "John",
		Email:        "john@example.com",
		Role:         "admin",
		PasswordHash: "$2a$10$hash",
	}

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "name", "email", "role", "password_hash", "created_at"}).
		AddRow(user.ID, user.Name, user.Email, user.Role, user.PasswordHash, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Name, user.Email, user.Role, user.PasswordHash).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, created.Email)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned created_at")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{ID: "u-1", Email: "dup@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, email, role, password_hash, created_at").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"id", "name", "email", "role", "password_hash", "created_at"}).
		AddRow("u-42", "Jane", "jane@example.com", "admin", "$2a$10$hash", now)

	mock.ExpectQuery("SELECT id, name, email, role, password_hash, created_at").
		WithArgs("u-42").
		WillReturnRows(rows)

	found, err := repo.FindUserByID(context.Background(), "u-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "Jane" {
		t.Fatalf("expected name Jane, got %q", found.Name)
	}
}
