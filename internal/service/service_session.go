// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aleasistemi/botmanager/internal/config"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/store"
	"github.com/aleasistemi/botmanager/internal/utils"
	"github.com/aleasistemi/botmanager/models"
)

// sessionService is the concrete implementation of SessionService.
// Passwords are hashed with bcrypt before storage; sessions are carried by
// HMAC-SHA256 JWTs whose jti claim keys a persisted session row, so a logout
// revokes the token server-side before its expiry.
type sessionService struct {
	users    store.UserRepository
	sessions store.SessionRepository

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
	bcryptCost    int

	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

// NewSessionService constructs a SessionService wired to the given user and
// session repositories and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewSessionService(users store.UserRepository, sessions store.SessionRepository, cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		users:         users,
		sessions:      sessions,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		bcryptCost:    cfg.BcryptCost,
		idGenerator:   utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// Register creates a new user account and opens a session for it.
//
// The password is bcrypt-hashed before it reaches the repository; the
// returned user never carries the hash.
//
// Returns the persisted user with a fresh token or:
//   - ErrInvalidDataProvided if name, email or password is empty.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
func (s *sessionService) Register(ctx context.Context, name, email, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid registration data provided")
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:           s.idGenerator.Generate(),
		Name:         name,
		Email:        email,
		Role:         "admin",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	createdUser, err := s.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := s.openSession(ctx, createdUser)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return createdUser.Sanitized(), token, nil
}

// Login authenticates an existing user and opens a session for it.
//
// Both an unknown email and a wrong password collapse to ErrWrongCredentials
// so the response does not reveal which of the two failed.
func (s *sessionService) Login(ctx context.Context, email, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	foundUser, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrWrongCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("wrong password")
		return models.User{}, models.Token{}, ErrWrongCredentials
	}

	token, err := s.openSession(ctx, foundUser)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return foundUser.Sanitized(), token, nil
}

// CurrentUser resolves the user behind a raw bearer token.
//
// Every failure mode collapses to an absent session: a malformed or expired
// token, a revoked session row and a deleted user all yield (zero, false)
// without an error.
func (s *sessionService) CurrentUser(ctx context.Context, tokenString string) (models.User, bool) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.User{}, false
	}

	session, err := s.sessions.FindSession(ctx, token.TokenID)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Err(err).Str("token_id", token.TokenID).Msg("session lookup failed")
		}
		return models.User{}, false
	}

	user, err := s.users.FindUserByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Str("user_id", session.UserID).Msg("user lookup failed")
		}
		return models.User{}, false
	}

	return user.Sanitized(), true
}

// Logout revokes the session keyed by the token's jti claim. A malformed
// token or an already revoked session is ignored.
func (s *sessionService) Logout(ctx context.Context, tokenString string) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return
	}

	if err := s.sessions.DeleteSession(ctx, token.TokenID); err != nil {
		log.Err(err).Str("token_id", token.TokenID).Msg("session deletion failed")
	}
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors. A valid token whose session row was revoked is rejected the
// same way.
func (s *sessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if _, err := s.sessions.FindSession(ctx, token.TokenID); err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (s *sessionService) openSession(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.ID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	session := models.Session{TokenID: token.TokenID, UserID: user.ID, CreatedAt: time.Now()}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("session save failed")
		return models.Token{}, fmt.Errorf("session save failed: %w", err)
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
