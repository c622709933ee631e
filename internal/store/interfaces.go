package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/freelancy/marketplace-api/models"
)

// JobRepository is the minimal store contract for the jobs collection.
//
// Implementations must provide atomic single-document operations; the
// service layer issues a read followed by a conditional write and accepts
// the race window in between. Listings are ordered newest-first by
// insertion order.
type JobRepository interface {
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error)
	UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.UpdateResult, error)
	DeleteJob(ctx context.Context, id string) (models.DeleteResult, error)
}

// TaskRepository is the minimal store contract for the accepted_tasks
// collection. Filter fields are intersected when more than one is set.
type TaskRepository interface {
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.AcceptedTask, error)
	GetTask(ctx context.Context, id string) (models.AcceptedTask, error)
	CreateTask(ctx context.Context, task models.AcceptedTask) (models.InsertResult, error)
	DeleteTask(ctx context.Context, id string) (models.DeleteResult, error)
}
