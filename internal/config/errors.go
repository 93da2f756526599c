package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates invalid token settings
	// (for example, missing sign key, issuer, or duration).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidAccountsConfigs indicates an invalid account policy
	// (for example, a non-positive per-tenant cap).
	ErrInvalidAccountsConfigs = errors.New("invalid accounts configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, unknown mode, empty DSN, or missing sqlite path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, missing address or zero request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
