package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/celyn/geirfa/internal/db"
	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/services"
)

type Server struct {
	DB       *db.DB
	Users    services.UserService
	Cards    services.CardService
	Sessions services.SessionService
	Stats    services.StatsService
	Imports  services.ImportService

	validate *validator.Validate
}

// NewServer creates an API server wired to the given services.
func NewServer(database *db.DB, users services.UserService, cards services.CardService, sessions services.SessionService, stats services.StatsService, imports services.ImportService) *Server {
	return &Server{
		DB:       database,
		Users:    users,
		Cards:    cards,
		Sessions: sessions,
		Stats:    stats,
		Imports:  imports,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON reads and validates a JSON request body.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	if err := s.validate.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewValidationError(fe.Field(), "failed rule "+fe.Tag())
		}
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}
