package repository

import (
	"context"

	"github.com/celyn/geirfa/internal/models"
)

// CardRepository handles flashcard data access
type CardRepository interface {
	Insert(ctx context.Context, card models.Flashcard) error
	Get(ctx context.Context, id string, userID int64) (*models.Flashcard, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, error)
	Count(ctx context.Context, filter models.CardFilter) (int, error)
	Categories(ctx context.Context, userID int64) ([]string, error)
	Delete(ctx context.Context, id string, userID int64) error
}

// ProgressRepository handles per-user, per-card progress records.
// Upsert recomputes the learnt flag from points on every write.
type ProgressRepository interface {
	Get(ctx context.Context, userID int64, cardID string) (*models.Progress, error)
	Upsert(ctx context.Context, progress models.Progress) error
	ListByCategory(ctx context.Context, userID int64, category string) ([]models.Progress, error)
}

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Upsert(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
