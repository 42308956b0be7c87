package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAllCategoryStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	stats, err := s.Stats.AllCategoryStats(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"stats": stats})
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	stats, err := s.Stats.CategoryStats(r.Context(), user.ID, chi.URLParam(r, "category"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
