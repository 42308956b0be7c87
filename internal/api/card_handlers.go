package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/celyn/geirfa/internal/models"
)

type createCardRequest struct {
	SourceText    string                   `json:"sourceText" validate:"required,max=500"`
	TargetText    string                   `json:"targetText" validate:"required,max=500"`
	Pronunciation string                   `json:"pronunciation" validate:"max=500"`
	Category      string                   `json:"category" validate:"required,max=100"`
	Examples      []models.ExampleSentence `json:"examples" validate:"max=10"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req createCardRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.Create(r.Context(), models.Flashcard{
		UserID:        user.ID,
		SourceText:    req.SourceText,
		TargetText:    req.TargetText,
		Pronunciation: req.Pronunciation,
		Category:      req.Category,
		Examples:      req.Examples,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	q := r.URL.Query()

	limit := 50
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		offset = v
	}

	filter := models.CardFilter{
		UserID:   user.ID,
		Category: q.Get("category"),
		Limit:    limit,
		Offset:   offset,
	}
	cards, total, err := s.Cards.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"cards":  cards,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	card, err := s.Cards.Get(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.Cards.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	categories, err := s.Cards.Categories(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}
