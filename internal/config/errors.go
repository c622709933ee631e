package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidIdentityConfigs indicates the identity service-account
	// secret is missing; the verifier cannot be constructed without it.
	ErrInvalidIdentityConfigs = errors.New("invalid identity configuration")
	// ErrInvalidStorageConfigs indicates the selected storage backend lacks
	// its connection settings (Mongo URI or PostgreSQL DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrUnknownStorageBackend indicates a backend selector outside the
	// supported set ("mongo", "postgres").
	ErrUnknownStorageBackend = errors.New("unknown storage backend")
)
