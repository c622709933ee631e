package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/models"
)

// mongoTaskRepository is the document-store implementation of
// [TaskRepository] over the "accepted_tasks" collection.
type mongoTaskRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewMongoTaskRepository constructs a [TaskRepository] backed by the given
// document store connection.
func NewMongoTaskRepository(m *Mongo, logger *logger.Logger) TaskRepository {
	return &mongoTaskRepository{
		collection: m.db.Collection(tasksCollection),
		logger:     logger,
	}
}

type taskDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	AcceptedByEmail string             `bson:"acceptedByEmail"`
	AcceptedAt      time.Time          `bson:"acceptedAt"`
	JobID           string             `bson:"jobId"`
	Extra           map[string]any     `bson:",inline"`
}

func (d taskDoc) toModel() models.AcceptedTask {
	return models.AcceptedTask{
		ID:              d.ID.Hex(),
		AcceptedByEmail: d.AcceptedByEmail,
		AcceptedAt:      d.AcceptedAt.UTC(),
		JobID:           d.JobID,
		Extra:           d.Extra,
	}
}

// taskListFilter translates a listing filter into a BSON query document.
// Non-empty fields are intersected.
func taskListFilter(filter models.TaskFilter) bson.M {
	query := bson.M{}
	if filter.Email != "" {
		query[models.FieldAcceptedByEmail] = filter.Email
	}
	if filter.JobID != "" {
		query[models.FieldJobID] = filter.JobID
	}
	return query
}

// ListTasks returns accepted tasks matching the filter.
func (r *mongoTaskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.AcceptedTask, error) {
	log := logger.FromContext(ctx)

	cursor, err := r.collection.Find(ctx, taskListFilter(filter))
	if err != nil {
		log.Err(err).Str("func", "mongoTaskRepository.ListTasks").Msg("failed to query tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		log.Err(err).Str("func", "mongoTaskRepository.ListTasks").Msg("failed to decode tasks")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	tasks := make([]models.AcceptedTask, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toModel())
	}

	return tasks, nil
}

// GetTask fetches a single accepted task by its hex identifier.
func (r *mongoTaskRepository) GetTask(ctx context.Context, id string) (models.AcceptedTask, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.AcceptedTask{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var doc taskDoc
	err = r.collection.FindOne(ctx, bson.M{models.FieldID: oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.AcceptedTask{}, ErrTaskNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "mongoTaskRepository.GetTask").
			Str("id", id).Msg("failed to fetch task")
		return models.AcceptedTask{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc.toModel(), nil
}

// CreateTask inserts the accepted task and returns the assigned identifier.
func (r *mongoTaskRepository) CreateTask(ctx context.Context, task models.AcceptedTask) (models.InsertResult, error) {
	doc := taskDoc{
		ID:              primitive.NewObjectID(),
		AcceptedByEmail: task.AcceptedByEmail,
		AcceptedAt:      task.AcceptedAt,
		JobID:           task.JobID,
		Extra:           task.Extra,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoTaskRepository.CreateTask").
			Msg("failed to insert task")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return models.InsertResult{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

// DeleteTask removes the accepted task by identifier.
func (r *mongoTaskRepository) DeleteTask(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{models.FieldID: oid})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoTaskRepository.DeleteTask").
			Str("id", id).Msg("failed to delete task")
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.DeletedCount == 0 {
		return models.DeleteResult{}, ErrTaskNotFound
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
