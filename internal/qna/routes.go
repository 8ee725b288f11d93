package qna

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers inquiry routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/strategies/{strategyID}/questions", func(r chi.Router) {
		r.Post("/", h.createQuestion)
		r.Delete("/{questionID}", h.deleteQuestion)
	})

	r.Route("/questions/{questionID}", func(r chi.Router) {
		r.Get("/", h.questionDetail)
		r.Post("/answers", h.createAnswer)
		r.Delete("/answers/{answerID}", h.deleteAnswer)
	})

	r.Get("/investor/questions", h.investorQuestions)
	r.Get("/trader/questions", h.traderQuestions)

	r.Route("/admin/questions", func(r chi.Router) {
		r.Get("/", h.adminQuestions)
		r.Get("/{questionID}", h.adminQuestionDetail)
	})
}
