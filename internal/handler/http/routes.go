package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/", h.health)

	// job reads are open to anyone
	router.Group(func(r chi.Router) {
		r.Get("/Jobs", h.listJobs)
		r.Get("/Jobs/{id}", h.getJob)
	})

	// everything else requires a verified identity
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/Jobs", h.createJob)
		r.Patch("/Jobs/{id}", h.updateJob)
		r.Delete("/Jobs/{id}", h.deleteJob)

		r.Get("/accepted-tasks", h.listTasks)
		r.Post("/accepted-tasks", h.createTask)
		r.Delete("/accepted-tasks/{id}", h.deleteTask)
	})

	return router
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("marketplace server is running"))
}
