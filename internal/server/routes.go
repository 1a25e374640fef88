package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/healthz", h.health)

	router.Route("/v1", func(r chi.Router) {
		r.Use(h.withBodyLimit)
		r.Post("/validate", h.validate)
		r.Post("/lint", h.lint)
		r.Get("/rules", h.rules)
	})

	return router
}
