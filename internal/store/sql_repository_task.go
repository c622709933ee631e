package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/models"
)

// sqlTaskRepository is the PostgreSQL implementation of [TaskRepository],
// laid out like [sqlJobRepository]: invariant columns plus a JSONB fields
// column.
type sqlTaskRepository struct {
	*DB
	logger *logger.Logger
}

// NewSQLTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewSQLTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	return &sqlTaskRepository{
		DB:     db,
		logger: logger,
	}
}

func scanTaskRow(scan func(dest ...any) error) (models.AcceptedTask, error) {
	var task models.AcceptedTask
	var fields []byte

	if err := scan(&task.ID, &task.AcceptedByEmail, &task.AcceptedAt, &task.JobID, &fields); err != nil {
		return models.AcceptedTask{}, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &task.Extra); err != nil {
			return models.AcceptedTask{}, err
		}
	}
	task.AcceptedAt = task.AcceptedAt.UTC()

	return task, nil
}

func (r *sqlTaskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.AcceptedTask, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select("id", "accepted_by_email", "accepted_at", "job_id", "fields").
		From("accepted_tasks").
		OrderBy("seq ASC")
	if filter.Email != "" {
		builder = builder.Where(sq.Eq{"accepted_by_email": filter.Email})
	}
	if filter.JobID != "" {
		builder = builder.Where(sq.Eq{"job_id": filter.JobID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlTaskRepository.ListTasks").Msg("failed to query tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.AcceptedTask, 0, 16)
	for rows.Next() {
		task, err := scanTaskRow(rows.Scan)
		if err != nil {
			log.Err(err).Str("func", "sqlTaskRepository.ListTasks").Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

func (r *sqlTaskRepository) GetTask(ctx context.Context, id string) (models.AcceptedTask, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.AcceptedTask{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	query, args, err := psql.Select("id", "accepted_by_email", "accepted_at", "job_id", "fields").
		From("accepted_tasks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.AcceptedTask{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	task, err := scanTaskRow(r.DB.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AcceptedTask{}, ErrTaskNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "sqlTaskRepository.GetTask").
			Str("id", id).Msg("failed to fetch task")
		return models.AcceptedTask{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return task, nil
}

func (r *sqlTaskRepository) CreateTask(ctx context.Context, task models.AcceptedTask) (models.InsertResult, error) {
	fields, err := json.Marshal(task.Extra)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	id := uuid.NewString()
	acceptedAt := task.AcceptedAt
	if acceptedAt.IsZero() {
		acceptedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("accepted_tasks").
		Columns("id", "accepted_by_email", "accepted_at", "job_id", "fields").
		Values(id, task.AcceptedByEmail, acceptedAt, task.JobID, fields).
		ToSql()
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlTaskRepository.CreateTask").
			Msg("failed to insert task")
		return models.InsertResult{}, classifyPGError(err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *sqlTaskRepository) DeleteTask(ctx context.Context, id string) (models.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	query, args, err := psql.Delete("accepted_tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlTaskRepository.DeleteTask").
			Str("id", id).Msg("failed to delete task")
		return models.DeleteResult{}, classifyPGError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.DeleteResult{}, ErrTaskNotFound
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: affected}, nil
}
