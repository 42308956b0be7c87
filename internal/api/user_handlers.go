package api

import (
	"net/http"

	"github.com/celyn/geirfa/internal/logger"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.Users.GetOrCreate(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setUserCookie(w, user.ID)
	writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Users.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, userFromContext(r.Context()))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	if err := s.Users.Delete(r.Context(), user.ID); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("user deleted: id=%d", user.ID)
	clearUserCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
