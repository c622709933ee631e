package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/store"
	"github.com/freelancy/marketplace-api/internal/utils"
	"github.com/freelancy/marketplace-api/models"
	"github.com/go-chi/chi/v5"
)

const invalidJSONMessage = "invalid json body"

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	filter := models.JobFilter{Email: r.URL.Query().Get("email")}

	jobs, err := h.services.Jobs.ListJobs(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if jobs == nil {
		jobs = []models.Job{}
	}
	utils.WriteJSON(w, jobs, http.StatusOK)
}

// getJob returns the job document, or a JSON null with HTTP 200 when the
// identifier does not resolve. Clients treat the null body as "not found".
func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.services.Jobs.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrJobNotFound) {
			utils.WriteJSON(w, nil, http.StatusOK)
			return
		}
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, job, http.StatusOK)
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		log.Err(err).Str("func", "*Handler.createJob").Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.Message{Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	result, err := h.services.Jobs.CreateJob(r.Context(), job)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateJob").Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.Message{Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	result, err := h.services.Jobs.UpdateJob(r.Context(), principal, chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	result, err := h.services.Jobs.DeleteJob(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
