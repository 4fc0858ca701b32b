package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const apiPrefix = "/api/v1"

// NewRouter wires every API route onto a chi router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route(apiPrefix, func(r chi.Router) {
		r.Post("/token", h.CreateToken)

		r.Route("/statuses", func(r chi.Router) {
			r.Get("/", h.ListStatuses)
			r.Get("/{slug}", h.GetStatus)
			r.With(h.requireAuth).Post("/", h.CreateStatus)
		})

		r.Route("/status-images", func(r chi.Router) {
			r.Get("/", h.ListImages)
			r.Get("/{slug}", h.GetImage)
		})

		r.Route("/service-lists", func(r chi.Router) {
			r.Get("/", h.ListLists)
			r.Get("/{slug}", h.GetList)
			r.With(h.requireAuth).Post("/", h.CreateList)
			r.With(h.requireAuth).Post("/{slug}", h.UpdateList)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.ListServices)
			r.With(h.requireAuth).Post("/", h.CreateService)

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", h.GetService)
				r.With(h.requireAuth).Post("/", h.UpdateService)
				r.Get("/history", h.GetHistory)

				r.Route("/events", func(r chi.Router) {
					r.Get("/", h.ListEvents)
					r.With(h.requireAuth).Post("/", h.CreateEvent)
					r.Get("/current", h.GetCurrentEvent)
					r.Get("/{sid}", h.GetEvent)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "no such resource")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
