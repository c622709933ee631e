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

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sqlJobRepository is the PostgreSQL implementation of [JobRepository].
// Invariant fields get their own columns; the open descriptive field set is
// a JSONB column merged with the || operator on update. A monotonic "seq"
// column preserves insertion order for newest-first listings.
type sqlJobRepository struct {
	*DB
	logger *logger.Logger
}

// NewSQLJobRepository constructs a [JobRepository] backed by the provided
// database connection and logger.
func NewSQLJobRepository(db *DB, logger *logger.Logger) JobRepository {
	return &sqlJobRepository{
		DB:     db,
		logger: logger,
	}
}

// scanJobRow decodes one jobs row (id, email, posted_at, fields) into a model.
func scanJobRow(scan func(dest ...any) error) (models.Job, error) {
	var job models.Job
	var fields []byte

	if err := scan(&job.ID, &job.Email, &job.PostedAt, &fields); err != nil {
		return models.Job{}, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &job.Extra); err != nil {
			return models.Job{}, err
		}
	}
	job.PostedAt = job.PostedAt.UTC()

	return job, nil
}

func (r *sqlJobRepository) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select("id", "email", "posted_at", "fields").
		From("jobs").
		OrderBy("seq DESC")
	if filter.Email != "" {
		builder = builder.Where(sq.Eq{"email": filter.Email})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlJobRepository.ListJobs").Msg("failed to query jobs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	jobs := make([]models.Job, 0, 16)
	for rows.Next() {
		job, err := scanJobRow(rows.Scan)
		if err != nil {
			log.Err(err).Str("func", "sqlJobRepository.ListJobs").Msg("failed to scan job row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return jobs, nil
}

func (r *sqlJobRepository) GetJob(ctx context.Context, id string) (models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Job{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	query, args, err := psql.Select("id", "email", "posted_at", "fields").
		From("jobs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Job{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	job, err := scanJobRow(r.DB.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Job{}, ErrJobNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "sqlJobRepository.GetJob").
			Str("id", id).Msg("failed to fetch job")
		return models.Job{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return job, nil
}

func (r *sqlJobRepository) CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error) {
	fields, err := json.Marshal(job.Extra)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	id := uuid.NewString()
	postedAt := job.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("jobs").
		Columns("id", "email", "posted_at", "fields").
		Values(id, job.Email, postedAt, fields).
		ToSql()
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlJobRepository.CreateJob").
			Msg("failed to insert job")
		return models.InsertResult{}, classifyPGError(err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *sqlJobRepository) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.UpdateResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	patchJSON, err := json.Marshal(map[string]any(patch))
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	query, args, err := psql.Update("jobs").
		Set("fields", sq.Expr("fields || ?::jsonb", string(patchJSON))).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlJobRepository.UpdateJob").
			Str("id", id).Msg("failed to update job")
		return models.UpdateResult{}, classifyPGError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.UpdateResult{}, ErrJobNotFound
	}

	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  affected,
		ModifiedCount: affected,
	}, nil
}

func (r *sqlJobRepository) DeleteJob(ctx context.Context, id string) (models.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	query, args, err := psql.Delete("jobs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlJobRepository.DeleteJob").
			Str("id", id).Msg("failed to delete job")
		return models.DeleteResult{}, classifyPGError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.DeleteResult{}, ErrJobNotFound
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: affected}, nil
}
