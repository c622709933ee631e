package http

import (
	"errors"
	"net/http"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/service"
	"github.com/freelancy/marketplace-api/internal/store"
	"github.com/freelancy/marketplace-api/internal/utils"
	"github.com/freelancy/marketplace-api/models"
)

type errorResponse struct {
	status  int
	message string
}

var errorResponseMap = map[error]errorResponse{
	service.ErrForbidden: {http.StatusForbidden, "forbidden access"},

	store.ErrJobNotFound:  {http.StatusNotFound, "job not found"},
	store.ErrTaskNotFound: {http.StatusNotFound, "task not found"},
	store.ErrInvalidID:    {http.StatusBadRequest, "invalid resource id"},

	store.ErrConstraintViolation: {http.StatusConflict, "conflicting resource state"},
}

const internalErrorMessage = "internal server error"

// writeError resolves err to a terminal HTTP response. Errors without a
// dedicated mapping are reported as a generic 500; driver detail is logged
// but never echoed to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for target, response := range errorResponseMap {
		if errors.Is(err, target) {
			utils.WriteJSON(w, models.Message{Message: response.message}, response.status)
			return
		}
	}

	logger.FromRequest(r).Error().Err(err).Msg("unclassified handler error")
	utils.WriteJSON(w, models.Message{Message: internalErrorMessage}, http.StatusInternalServerError)
}
