package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validBaseConfig returns a config that satisfies every validation rule.
func validBaseConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey:  "secret",
			TokenIssuer:   "botmanager",
			TokenDuration: 24 * time.Hour,
		},
		Accounts: Accounts{MaxPerTenant: 5},
		Storage: Storage{
			Mode:  StorageModeLocal,
			Local: Local{Path: "botmanager.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Auth: Auth{TokenSignKey: "from-env"}},
		validBaseConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)

	// Earlier configs win for non-zero fields.
	assert.Equal(t, "from-env", cfg.Auth.TokenSignKey)
	assert.Equal(t, "botmanager", cfg.Auth.TokenIssuer)
	assert.Equal(t, StorageModeLocal, cfg.Storage.Mode)
}

func TestBuild_FailsValidationWithoutSignKey(t *testing.T) {
	base := validBaseConfig()
	base.Auth.TokenSignKey = ""

	b := newConfigBuilder()
	b.configs = append(b.configs, base)

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAuthConfigs)
}

func TestWithDefaults_FillsMissingFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Auth: Auth{TokenSignKey: "secret"},
	})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	// The explicit value survives; the rest comes from defaults.
	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "botmanager", cfg.Auth.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 5, cfg.Accounts.MaxPerTenant)
	assert.Equal(t, StorageModeLocal, cfg.Storage.Mode)
	assert.Equal(t, "botmanager.db", cfg.Storage.Local.Path)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Workers.RetryInterval)
}

func TestWithDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Auth:     Auth{TokenSignKey: "secret", TokenDuration: time.Hour},
		Accounts: Accounts{MaxPerTenant: 2},
	})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 2, cfg.Accounts.MaxPerTenant)
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBaseConfig())

	before := len(b.configs)
	b.withJSON()

	assert.Len(t, b.configs, before)
	assert.NoError(t, b.err)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "no-such-file.json"})

	b.withJSON()

	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "error reading a json file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"valid", func(cfg *StructuredConfig) {}, nil},
		{"missing issuer", func(cfg *StructuredConfig) { cfg.Auth.TokenIssuer = "" }, ErrInvalidAuthConfigs},
		{"zero duration", func(cfg *StructuredConfig) { cfg.Auth.TokenDuration = 0 }, ErrInvalidAuthConfigs},
		{"non-positive cap", func(cfg *StructuredConfig) { cfg.Accounts.MaxPerTenant = 0 }, ErrInvalidAccountsConfigs},
		{"unknown storage mode", func(cfg *StructuredConfig) { cfg.Storage.Mode = "cloud" }, ErrInvalidStorageConfigs},
		{"local mode without path", func(cfg *StructuredConfig) { cfg.Storage.Local.Path = "" }, ErrInvalidStorageConfigs},
		{"remote mode without dsn", func(cfg *StructuredConfig) {
			cfg.Storage.Mode = StorageModeRemote
			cfg.Storage.DB.DSN = ""
		}, ErrInvalidStorageConfigs},
		{"missing address", func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
