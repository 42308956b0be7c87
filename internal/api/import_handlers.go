package api

import (
	"net/http"

	"github.com/celyn/geirfa/internal/errors"
	"github.com/celyn/geirfa/internal/logger"
)

const maxImportSize = 10 << 20 // 10 MiB

// handleImport accepts a multipart upload with a "file" field holding an
// XLSX or CSV deck and queues card creation.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		handleError(w, r, errors.NewBadRequestError("could not parse upload: "+err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("missing file field"))
		return
	}
	defer file.Close()

	log.Info("received deck upload: file=%s, size=%d", header.Filename, header.Size)

	summary, err := s.Imports.ImportDeck(r.Context(), user.ID, header.Filename, file)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, summary)
}
