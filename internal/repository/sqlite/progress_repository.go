package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

type progressRepository struct {
	db            *sql.DB
	masteryPoints int
}

// NewProgressRepository creates a new ProgressRepository implementation.
// masteryPoints is the score at which a card counts as learnt; the flag
// is recomputed from points on every write so a stale value can never
// be persisted.
func NewProgressRepository(db *sql.DB, masteryPoints int) repository.ProgressRepository {
	return &progressRepository{db: db, masteryPoints: masteryPoints}
}

func (r *progressRepository) Get(ctx context.Context, userID int64, cardID string) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d, card_id=%s", userID, cardID)

	var p models.Progress
	var lastReviewed sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, card_id, points, review_count, correct_answers, incorrect_answers, learnt, last_reviewed, created_at, updated_at
FROM progress
WHERE user_id = ? AND card_id = ?
`, userID, cardID).Scan(&p.UserID, &p.CardID, &p.Points, &p.ReviewCount, &p.CorrectAnswers, &p.IncorrectAnswers, &p.Learnt, &lastReviewed, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("progress not found: user_id=%d, card_id=%s", userID, cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	if lastReviewed.Valid {
		p.LastReviewed = lastReviewed.Time
	}
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.Progress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%d, card_id=%s, points=%d", p.UserID, p.CardID, p.Points)

	learnt := p.Points >= r.masteryPoints
	var lastReviewed sql.NullTime
	if !p.LastReviewed.IsZero() {
		lastReviewed = sql.NullTime{Time: p.LastReviewed, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO progress (user_id, card_id, points, review_count, correct_answers, incorrect_answers, learnt, last_reviewed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, card_id) DO UPDATE SET
    points = excluded.points,
    review_count = excluded.review_count,
    correct_answers = excluded.correct_answers,
    incorrect_answers = excluded.incorrect_answers,
    learnt = excluded.learnt,
    last_reviewed = excluded.last_reviewed,
    updated_at = CURRENT_TIMESTAMP
`, p.UserID, p.CardID, p.Points, p.ReviewCount, p.CorrectAnswers, p.IncorrectAnswers, learnt, lastReviewed)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

func (r *progressRepository) ListByCategory(ctx context.Context, userID int64, category string) ([]models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%d, category=%s", userID, category)

	rows, err := r.db.QueryContext(ctx, `
SELECT p.user_id, p.card_id, p.points, p.review_count, p.correct_answers, p.incorrect_answers, p.learnt, p.last_reviewed, p.created_at, p.updated_at
FROM progress p
JOIN flashcards f ON f.id = p.card_id AND f.user_id = p.user_id
WHERE p.user_id = ? AND f.category = ?
`, userID, category)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.Progress
	for rows.Next() {
		var p models.Progress
		var lastReviewed sql.NullTime
		if err := rows.Scan(&p.UserID, &p.CardID, &p.Points, &p.ReviewCount, &p.CorrectAnswers, &p.IncorrectAnswers, &p.Learnt, &lastReviewed, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		if lastReviewed.Valid {
			p.LastReviewed = lastReviewed.Time
		}
		records = append(records, p)
	}
	log.Debug("found %d progress records", len(records))
	return records, rows.Err()
}
