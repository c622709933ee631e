package service

import (
	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/store"
)

// Services aggregates the domain services consumed by the HTTP layer.
type Services struct {
	Jobs  JobService
	Tasks TaskService
}

func NewServices(storages *store.Storages, log *logger.Logger) *Services {
	return &Services{
		Jobs:  NewJobService(storages.Jobs, log),
		Tasks: NewTaskService(storages.Tasks, log),
	}
}
