package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/reviews", h.PutReview)
		r.Get("/reviews", h.GetReviewsBySentiment)
		r.Get("/reviews/{reviewId}", func(w http.ResponseWriter, r *http.Request) {
			h.GetReview(w, r, chi.URLParam(r, "reviewId"))
		})
	})

	return r
}
