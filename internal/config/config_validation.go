// SPDX-License-Identifier: Apache-2.0

package config

// applyDefaults fills every field no configuration source set with its
// documented default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendMongo
	}
	if cfg.Storage.Mongo.Database == "" {
		cfg.Storage.Mongo.Database = DefaultMongoDatabase
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Identity.ServiceKey == "" {
		return ErrInvalidIdentityConfigs
	}

	switch cfg.Storage.Backend {
	case BackendMongo:
		if cfg.Storage.Mongo.URI == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrUnknownStorageBackend
	}

	return nil
}
