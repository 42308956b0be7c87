package jobs

import "github.com/celyn/geirfa/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(userID int64, source string, cards []models.Flashcard) error
}
