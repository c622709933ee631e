package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/models"
)

// mongoJobRepository is the document-store implementation of [JobRepository].
// Jobs live in the "jobs" collection as flat documents: the invariant fields
// plus every caller-supplied descriptive field at the top level.
type mongoJobRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewMongoJobRepository constructs a [JobRepository] backed by the given
// document store connection.
func NewMongoJobRepository(m *Mongo, logger *logger.Logger) JobRepository {
	return &mongoJobRepository{
		collection: m.db.Collection(jobsCollection),
		logger:     logger,
	}
}

// jobDoc is the BSON shape of a job. The open field set is inlined so the
// stored document stays flat.
type jobDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	PostedAt time.Time          `bson:"postedAt"`
	Extra    map[string]any     `bson:",inline"`
}

func (d jobDoc) toModel() models.Job {
	return models.Job{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		PostedAt: d.PostedAt.UTC(),
		Extra:    d.Extra,
	}
}

// jobListFilter translates a listing filter into a BSON query document.
func jobListFilter(filter models.JobFilter) bson.M {
	query := bson.M{}
	if filter.Email != "" {
		query[models.FieldEmail] = filter.Email
	}
	return query
}

// ListJobs returns jobs matching the filter, newest-first (descending
// object-id order, which follows insertion order).
func (r *mongoJobRepository) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: models.FieldID, Value: -1}})
	cursor, err := r.collection.Find(ctx, jobListFilter(filter), opts)
	if err != nil {
		log.Err(err).Str("func", "mongoJobRepository.ListJobs").Msg("failed to query jobs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []jobDoc
	if err := cursor.All(ctx, &docs); err != nil {
		log.Err(err).Str("func", "mongoJobRepository.ListJobs").Msg("failed to decode jobs")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	jobs := make([]models.Job, 0, len(docs))
	for _, doc := range docs {
		jobs = append(jobs, doc.toModel())
	}

	return jobs, nil
}

// GetJob fetches a single job by its hex identifier.
func (r *mongoJobRepository) GetJob(ctx context.Context, id string) (models.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Job{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var doc jobDoc
	err = r.collection.FindOne(ctx, bson.M{models.FieldID: oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Job{}, ErrJobNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "mongoJobRepository.GetJob").
			Str("id", id).Msg("failed to fetch job")
		return models.Job{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc.toModel(), nil
}

// CreateJob inserts the job and returns the assigned identifier.
func (r *mongoJobRepository) CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error) {
	doc := jobDoc{
		ID:       primitive.NewObjectID(),
		Email:    job.Email,
		PostedAt: job.PostedAt,
		Extra:    job.Extra,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoJobRepository.CreateJob").
			Msg("failed to insert job")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return models.InsertResult{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

// UpdateJob merges the patch into the stored document via a $set. The patch
// is expected to already be free of immutable fields.
func (r *mongoJobRepository) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M(patch)})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoJobRepository.UpdateJob").
			Str("id", id).Msg("failed to update job")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.MatchedCount == 0 {
		return models.UpdateResult{}, ErrJobNotFound
	}

	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteJob removes the job by identifier.
func (r *mongoJobRepository) DeleteJob(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{models.FieldID: oid})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoJobRepository.DeleteJob").
			Str("id", id).Msg("failed to delete job")
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.DeletedCount == 0 {
		return models.DeleteResult{}, ErrJobNotFound
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
