package service

import (
	"context"
	"time"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/policy"
	"github.com/freelancy/marketplace-api/internal/store"
	"github.com/freelancy/marketplace-api/models"
)

type taskService struct {
	tasks  store.TaskRepository
	logger *logger.Logger
}

func NewTaskService(tasks store.TaskRepository, log *logger.Logger) TaskService {
	return &taskService{tasks: tasks, logger: log}
}

// ListTasks returns the principal's accepted tasks. A caller may only filter
// by their own email; any other email filter is rejected.
func (s *taskService) ListTasks(ctx context.Context, principal models.Principal, filter models.TaskFilter) ([]models.AcceptedTask, error) {
	if !policy.CanListTasks(principal, filter.Email) {
		s.logger.Warn().Str("email", principal.Email).Str("filter_email", filter.Email).Msg("task list denied")
		return nil, ErrForbidden
	}

	return s.tasks.ListTasks(ctx, filter)
}

// CreateTask records that the principal accepted a job. The accepting email
// always comes from the verified identity, never from the submitted document,
// and the acceptance time is stamped on the server.
func (s *taskService) CreateTask(ctx context.Context, principal models.Principal, task models.AcceptedTask) (models.InsertResult, error) {
	task.ID = ""
	task.AcceptedByEmail = principal.Email
	task.AcceptedAt = time.Now().UTC()

	result, err := s.tasks.CreateTask(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("create accepted task")
		return models.InsertResult{}, err
	}

	s.logger.Info().Str("task_id", result.InsertedID).Str("email", task.AcceptedByEmail).Msg("task accepted")
	return result, nil
}

// DeleteTask removes an accepted task belonging to the principal.
func (s *taskService) DeleteTask(ctx context.Context, principal models.Principal, id string) (models.DeleteResult, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if !policy.CanDeleteTask(principal, task) {
		s.logger.Warn().Str("task_id", id).Str("email", principal.Email).Msg("task delete denied")
		return models.DeleteResult{}, ErrForbidden
	}

	return s.tasks.DeleteTask(ctx, id)
}
