// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenDuration == 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Accounts.MaxPerTenant <= 0 {
		return ErrInvalidAccountsConfigs
	}

	switch cfg.Storage.Mode {
	case StorageModeLocal:
		if cfg.Storage.Local.Path == "" {
			return ErrInvalidStorageConfigs
		}
	case StorageModeRemote:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
