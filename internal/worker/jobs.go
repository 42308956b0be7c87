package worker

import (
	"context"
	"fmt"

	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

// ImportDeckJob inserts a batch of parsed flashcards for a user.
// Parsing and validation happen before the job is queued, so a failure
// here is a storage problem, not a bad file.
type ImportDeckJob struct {
	CardRepo repository.CardRepository
	UserID   int64
	Source   string
	Cards    []models.Flashcard
}

func (j *ImportDeckJob) Name() string { return "import_deck" }

func (j *ImportDeckJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": j.UserID,
		"source":  j.Source,
	})
	log.Info("importing %d cards", len(j.Cards))

	var failed int
	for _, card := range j.Cards {
		if err := j.CardRepo.Insert(ctx, card); err != nil {
			log.Error("failed to insert card %s (%s): %v", card.ID, card.SourceText, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("import of %s: %d of %d cards failed", j.Source, failed, len(j.Cards))
	}
	log.Info("import finished: %d cards inserted", len(j.Cards))
	return nil
}
