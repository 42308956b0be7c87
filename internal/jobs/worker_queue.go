package jobs

import (
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
	"github.com/celyn/geirfa/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	importPool *worker.Pool
	cardRepo   repository.CardRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, cardRepo repository.CardRepository) JobQueue {
	return &WorkerQueue{
		importPool: importPool,
		cardRepo:   cardRepo,
	}
}

func (q *WorkerQueue) EnqueueImport(userID int64, source string, cards []models.Flashcard) error {
	return q.importPool.Submit(&worker.ImportDeckJob{
		CardRepo: q.cardRepo,
		UserID:   userID,
		Source:   source,
		Cards:    cards,
	})
}
