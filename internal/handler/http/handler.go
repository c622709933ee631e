package http

import (
	"github.com/freelancy/marketplace-api/internal/identity"
	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/service"
)

type Handler struct {
	services *service.Services
	verifier identity.Verifier

	logger *logger.Logger
}

func NewHandler(services *service.Services, verifier identity.Verifier, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		verifier: verifier,
		logger:   logger,
	}
}
