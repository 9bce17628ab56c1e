package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.userMiddleware)

		r.Post("/quiz/answer", s.handleQuizAnswer)
		r.Post("/quiz/complete", s.handleQuizComplete)
		r.Post("/review/answer", s.handleReviewAnswer)
		r.Get("/review/due", s.handleReviewDue)
		r.Post("/rituals/log", s.handleRitualLog)
		r.Get("/store", s.handleStore)
		r.Post("/store/purchase", s.handlePurchase)
		r.Get("/summary", s.handleSummary)
	})
	return r
}
