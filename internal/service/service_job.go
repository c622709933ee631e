package service

import (
	"context"
	"time"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/policy"
	"github.com/freelancy/marketplace-api/internal/store"
	"github.com/freelancy/marketplace-api/models"
)

type jobService struct {
	jobs   store.JobRepository
	logger *logger.Logger
}

func NewJobService(jobs store.JobRepository, log *logger.Logger) JobService {
	return &jobService{jobs: jobs, logger: log}
}

func (s *jobService) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	return s.jobs.ListJobs(ctx, filter)
}

func (s *jobService) GetJob(ctx context.Context, id string) (models.Job, error) {
	return s.jobs.GetJob(ctx, id)
}

// CreateJob stamps the posting time on the server. The owner email is taken
// from the submitted document as-is.
func (s *jobService) CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error) {
	job.ID = ""
	job.PostedAt = time.Now().UTC()

	result, err := s.jobs.CreateJob(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Msg("create job")
		return models.InsertResult{}, err
	}

	s.logger.Info().Str("job_id", result.InsertedID).Str("email", job.Email).Msg("job created")
	return result, nil
}

// UpdateJob applies a partial update to an existing job. The job must exist
// and belong to the principal; immutable keys are dropped from the patch
// before it reaches storage.
func (s *jobService) UpdateJob(ctx context.Context, principal models.Principal, id string, patch models.JobPatch) (models.UpdateResult, error) {
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if !policy.CanMutateJob(principal, job) {
		s.logger.Warn().Str("job_id", id).Str("email", principal.Email).Msg("update denied")
		return models.UpdateResult{}, ErrForbidden
	}

	patch = patch.StripImmutable()
	if len(patch) == 0 {
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	}

	return s.jobs.UpdateJob(ctx, id, patch)
}

// DeleteJob removes a job owned by the principal.
func (s *jobService) DeleteJob(ctx context.Context, principal models.Principal, id string) (models.DeleteResult, error) {
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if !policy.CanMutateJob(principal, job) {
		s.logger.Warn().Str("job_id", id).Str("email", principal.Email).Msg("delete denied")
		return models.DeleteResult{}, ErrForbidden
	}

	return s.jobs.DeleteJob(ctx, id)
}
