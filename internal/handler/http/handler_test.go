package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/aleasistemi/botmanager/internal/config"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/mock"
	"github.com/aleasistemi/botmanager/internal/service"
	"github.com/aleasistemi/botmanager/internal/store"
)

// testEnv is one fully wired HTTP stack over a throwaway sqlite file, with
// the outbound adapter and the AI prober replaced by gomock doubles.
type testEnv struct {
	router   *chi.Mux
	services *service.Services
	adapter  *mock.MockBotServerAdapter
	prober   *mock.MockConfigProber
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)

	log := logger.Nop()
	storages, err := store.NewStorages(context.Background(), config.Storage{
		Mode:  config.StorageModeLocal,
		Local: config.Local{Path: filepath.Join(t.TempDir(), "handler-test.db")},
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	botAdapter := mock.NewMockBotServerAdapter(ctrl)
	prober := mock.NewMockConfigProber(ctrl)

	cfg := &config.StructuredConfig{
		Auth: config.Auth{
			TokenSignKey:  "handler-test-key",
			TokenIssuer:   "botmanager",
			TokenDuration: time.Hour,
			BcryptCost:    bcrypt.MinCost,
		},
		Accounts: config.Accounts{MaxPerTenant: 3},
	}

	services := service.NewServices(storages, botAdapter, prober, cfg, log)
	handler := NewHandler(services, log)

	return &testEnv{
		router:   handler.Init(),
		services: services,
		adapter:  botAdapter,
		prober:   prober,
	}
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// registerUser registers a fresh user and returns the bearer token.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
