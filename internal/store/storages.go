package store

import (
	"context"
	"fmt"
	"time"

	"github.com/freelancy/marketplace-api/internal/config"
	"github.com/freelancy/marketplace-api/internal/logger"
)

// closeTimeout bounds the disconnect performed by the cleanup function.
const closeTimeout = 5 * time.Second

// Storages bundles the repositories for every resource collection.
type Storages struct {
	Jobs  JobRepository
	Tasks TaskRepository
}

// NewStorages constructs the repositories for the backend selected in cfg
// and returns them together with a cleanup function that releases the
// underlying connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, func(), error) {
	switch cfg.Backend {
	case config.BackendMongo:
		m, err := NewConnectMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating document storages: %w", err)
		}

		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			if err := m.Close(closeCtx); err != nil {
				log.Err(err).Msg("error closing document store connection")
			}
		}

		return &Storages{
			Jobs:  NewMongoJobRepository(m, log),
			Tasks: NewMongoTaskRepository(m, log),
		}, cleanup, nil

	case config.BackendPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating sql storages: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("error migrating sql storage: %w", err)
		}

		cleanup := func() {
			if err := db.Close(); err != nil {
				log.Err(err).Msg("error closing database connection")
			}
		}

		return &Storages{
			Jobs:  NewSQLJobRepository(db, log),
			Tasks: NewSQLTaskRepository(db, log),
		}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageBackend, cfg.Backend)
	}
}
