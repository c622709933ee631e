package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/freelancy/marketplace-api/internal/config"
	"github.com/freelancy/marketplace-api/internal/logger"
)

// Collection names in the document database.
const (
	jobsCollection  = "jobs"
	tasksCollection = "accepted_tasks"
)

// Mongo wraps the document-database client and the application database
// handle the repositories operate on.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// NewConnectMongo establishes a connection to the document store described
// by cfg and verifies it with a ping before returning.
func NewConnectMongo(ctx context.Context, cfg config.MongoConfig, log *logger.Logger) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occured during document store connection")
		return nil, fmt.Errorf("error occured during document store connection: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting document store (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Database).
		Msg("connected to document store successfully")

	return &Mongo{
		client: client,
		db:     client.Database(cfg.Database),
		logger: log,
	}, nil
}

// Close disconnects from the document store.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
