package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hakseup/topik-api/internal/api/middleware"
	"github.com/hakseup/topik-api/internal/api/shared"
)

// NewRouter assembles the HTTP routes for the service. Every request
// carries a trace ID and a learner namespace by the time it reaches a
// handler.
func NewRouter(handler *PracticeHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.LearnerMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/grade", handler.Grade)
		r.Get("/due", handler.Due)
		r.Get("/stats", handler.Stats)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", handler.StartSession)

			r.Route("/{mode}", func(r chi.Router) {
				r.Get("/", handler.GetSession)
				r.Delete("/", handler.EndSession)
				r.Post("/advance", handler.Advance)
				r.Post("/shuffle", handler.Shuffle)
				r.Post("/grade", handler.GradeCurrent)
				r.Post("/answer", handler.SubmitAnswer)
			})
		})
	})

	return r
}
