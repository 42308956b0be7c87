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

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)

		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleCreateUser)

		// Everything past this point needs a resolved user.
		r.Group(func(r chi.Router) {
			r.Use(s.userMiddleware)

			r.Get("/users/me", s.handleCurrentUser)
			r.Delete("/users/me", s.handleDeleteUser)

			r.Get("/categories", s.handleCategories)
			r.Get("/categories/stats", s.handleAllCategoryStats)
			r.Get("/categories/{category}/stats", s.handleCategoryStats)

			r.Get("/flashcards", s.handleListCards)
			r.Post("/flashcards", s.handleCreateCard)
			r.Get("/flashcards/{id}", s.handleGetCard)
			r.Delete("/flashcards/{id}", s.handleDeleteCard)

			r.Post("/import", s.handleImport)

			r.Post("/sessions", s.handleCreateSession)
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleCloseSession)
				r.Post("/flip", s.handleFlip)
				r.Post("/advance", s.handleAdvance)
				r.Post("/answer", s.handleAnswer)
				r.Post("/next", s.handleNextQuestion)
				r.Post("/restart", s.handleRestartSession)
			})
		})
	})

	return r
}
