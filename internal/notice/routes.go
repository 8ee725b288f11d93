package notice

import "github.com/go-chi/chi/v5"

// MountRoutes registers the announcement endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/notices", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Route("/{noticeID}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
		})
	})
}
