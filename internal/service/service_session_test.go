package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/aleasistemi/botmanager/internal/config"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/mock"
	"github.com/aleasistemi/botmanager/internal/store"
	"github.com/aleasistemi/botmanager/models"
)

func newTestSessionSvc(t *testing.T, ctrl *gomock.Controller) (SessionService, *mock.MockUserRepository, *mock.MockSessionRepository) {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)

	cfg := config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "botmanager",
		TokenDuration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	return NewSessionService(users, sessions, cfg, logger.Nop()), users, sessions
}

func TestSessionService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, sessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.NotEmpty(t, u.ID)
			assert.Equal(t, "mario@example.com", u.Email)
			// the hash must never be the raw password
			assert.NotEqual(t, "secret", u.PasswordHash)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
			return u, nil
		},
	)
	sessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	user, token, err := svc.Register(ctx, "Mario", "Mario@Example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "mario@example.com", user.Email, "email is normalised to lower case")
	assert.Empty(t, user.PasswordHash, "returned user never carries the hash")
	assert.NotEmpty(t, token.SignedString)
	assert.NotEmpty(t, token.TokenID)
}

func TestSessionService_Register_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestSessionSvc(t, ctrl)

	for _, tc := range []struct {
		name, userName, email, password string
	}{
		{"empty name", "", "a@b.c", "pw"},
		{"empty email", "Mario", "", "pw"},
		{"empty password", "Mario", "a@b.c", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestSessionService_Register_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestSessionSvc(t, ctrl)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, _, err := svc.Register(context.Background(), "Mario", "dup@example.com", "secret")
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestSessionService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, sessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := models.User{ID: "u-1", Name: "Mario", Email: "mario@example.com", PasswordHash: string(hash)}
	users.EXPECT().FindUserByEmail(ctx, "mario@example.com").Return(stored, nil)
	sessions.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) error {
			assert.Equal(t, "u-1", s.UserID)
			assert.NotEmpty(t, s.TokenID)
			return nil
		},
	)

	user, token, err := svc.Login(ctx, "mario@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, token.SignedString)
}

func TestSessionService_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestSessionSvc(t, ctrl)

	users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestSessionSvc(t, ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	users.EXPECT().FindUserByEmail(gomock.Any(), "mario@example.com").
		Return(models.User{ID: "u-1", Email: "mario@example.com", PasswordHash: string(hash)}, nil)

	_, _, err = svc.Login(context.Background(), "mario@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestSessionService_CurrentUser_ResolvesTokenHolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, sessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := models.User{ID: "u-1", Name: "Mario", Email: "mario@example.com", PasswordHash: string(hash)}

	users.EXPECT().FindUserByEmail(ctx, "mario@example.com").Return(stored, nil)
	sessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, token, err := svc.Login(ctx, "mario@example.com", "secret")
	require.NoError(t, err)

	sessions.EXPECT().FindSession(ctx, token.TokenID).
		Return(models.Session{TokenID: token.TokenID, UserID: "u-1"}, nil)
	users.EXPECT().FindUserByID(ctx, "u-1").Return(stored, nil)

	user, ok := svc.CurrentUser(ctx, token.SignedString)
	require.True(t, ok)
	assert.Equal(t, "u-1", user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestSessionService_CurrentUser_MalformedTokenIsAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestSessionSvc(t, ctrl)

	// no repository calls expected, the garbage never reaches them
	_, ok := svc.CurrentUser(context.Background(), "not-a-jwt-at-all")
	assert.False(t, ok)
}

func TestSessionService_CurrentUser_RevokedSessionIsAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, sessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := models.User{ID: "u-1", Email: "mario@example.com", PasswordHash: string(hash)}

	users.EXPECT().FindUserByEmail(ctx, "mario@example.com").Return(stored, nil)
	sessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, token, err := svc.Login(ctx, "mario@example.com", "secret")
	require.NoError(t, err)

	// logout revokes the session row
	sessions.EXPECT().DeleteSession(ctx, token.TokenID).Return(nil)
	svc.Logout(ctx, token.SignedString)

	sessions.EXPECT().FindSession(ctx, token.TokenID).Return(models.Session{}, store.ErrSessionNotFound)

	_, ok := svc.CurrentUser(ctx, token.SignedString)
	assert.False(t, ok)
}

func TestSessionService_Logout_MalformedTokenIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestSessionSvc(t, ctrl)

	// must not panic and must not touch the session repository
	svc.Logout(context.Background(), "garbage")
}

func TestSessionService_ParseToken_RevokedSessionRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, sessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	users.EXPECT().FindUserByEmail(ctx, "mario@example.com").
		Return(models.User{ID: "u-1", Email: "mario@example.com", PasswordHash: string(hash)}, nil)
	sessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, token, err := svc.Login(ctx, "mario@example.com", "secret")
	require.NoError(t, err)

	sessions.EXPECT().FindSession(ctx, token.TokenID).Return(models.Session{}, store.ErrSessionNotFound)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
