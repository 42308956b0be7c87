package learning

import (
	"context"

	"github.com/celyn/geirfa/internal/models"
)

// Store is the progress store the engine reads and writes. Implementations
// live outside this package; the session only assumes upsert semantics on
// SaveProgress and that GetProgress returns nil (no error) for a card that
// has never been reviewed.
type Store interface {
	ListCards(ctx context.Context, userID int64, category string) ([]models.Flashcard, error)
	GetProgress(ctx context.Context, userID int64, cardID string) (*models.Progress, error)
	SaveProgress(ctx context.Context, progress models.Progress) error
}

// Callbacks notify the surrounding application of engine events. Either
// field may be nil.
type Callbacks struct {
	// CardMastered fires when a card crosses the mastery threshold during
	// a session.
	CardMastered func(cardID string)
	// SessionComplete fires when no unmastered cards remain in the category.
	SessionComplete func(category string)
}

// CardState pairs a card with its current progress for the duration of a
// session. The session mutates Progress in place as writes succeed.
type CardState struct {
	Card     models.Flashcard
	Progress models.Progress
}
