package http

import (
	"encoding/json"
	"net/http"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/utils"
	"github.com/freelancy/marketplace-api/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	query := r.URL.Query()
	filter := models.TaskFilter{
		Email: query.Get("email"),
		JobID: query.Get("jobId"),
	}

	tasks, err := h.services.Tasks.ListTasks(r.Context(), principal, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if tasks == nil {
		tasks = []models.AcceptedTask{}
	}
	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	var task models.AcceptedTask
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Err(err).Str("func", "*Handler.createTask").Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.Message{Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	result, err := h.services.Tasks.CreateTask(r.Context(), principal, task)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	result, err := h.services.Tasks.DeleteTask(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
