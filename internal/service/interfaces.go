package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/freelancy/marketplace-api/models"
)

// JobService exposes the job board operations. Reads are open to any
// authenticated principal, mutations are restricted to the posting owner.
type JobService interface {
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error)
	UpdateJob(ctx context.Context, principal models.Principal, id string, patch models.JobPatch) (models.UpdateResult, error)
	DeleteJob(ctx context.Context, principal models.Principal, id string) (models.DeleteResult, error)
}

// TaskService exposes the accepted task operations. Every operation is scoped
// to the authenticated principal.
type TaskService interface {
	ListTasks(ctx context.Context, principal models.Principal, filter models.TaskFilter) ([]models.AcceptedTask, error)
	CreateTask(ctx context.Context, principal models.Principal, task models.AcceptedTask) (models.InsertResult, error)
	DeleteTask(ctx context.Context, principal models.Principal, id string) (models.DeleteResult, error)
}
