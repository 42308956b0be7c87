package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Insert(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s, category=%s", c.ID, c.Category)

	examples, err := marshalExamples(c.Examples)
	if err != nil {
		log.Error("failed to marshal examples: %v", err)
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO flashcards (id, user_id, source_text, target_text, pronunciation, category, examples)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.UserID, c.SourceText, c.TargetText, c.Pronunciation, c.Category, examples)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return err
	}
	log.Debug("card inserted: id=%s", c.ID)
	return nil
}

func (r *cardRepository) Get(ctx context.Context, id string, userID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s, user_id=%d", id, userID)

	var c models.Flashcard
	var examples string
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, source_text, target_text, pronunciation, category, examples, created_at
FROM flashcards
WHERE id = ? AND user_id = ?
`, id, userID).Scan(&c.ID, &c.UserID, &c.SourceText, &c.TargetText, &c.Pronunciation, &c.Category, &examples, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	if c.Examples, err = unmarshalExamples(examples); err != nil {
		log.Error("failed to unmarshal examples for card %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards with filter: user_id=%d, category=%s", filter.UserID, filter.Category)

	query := sqlBuilder.Select(
		"id", "user_id", "source_text", "target_text", "pronunciation",
		"category", "examples", "created_at",
	).From("flashcards")

	// Dynamic WHERE clauses
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	query = query.OrderBy("created_at ASC", "id ASC")

	// Pagination
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()
	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		var examples string
		if err := rows.Scan(&c.ID, &c.UserID, &c.SourceText, &c.TargetText, &c.Pronunciation, &c.Category, &examples, &c.CreatedAt); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		if c.Examples, err = unmarshalExamples(examples); err != nil {
			log.Error("failed to unmarshal examples for card %s: %v", c.ID, err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("counting cards with filter: user_id=%d, category=%s", filter.UserID, filter.Category)

	query := sqlBuilder.Select("COUNT(*)").From("flashcards")

	// Same WHERE logic as List()
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, sql, args...).Scan(&count)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) Categories(ctx context.Context, userID int64) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing categories: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT category
FROM flashcards
WHERE user_id = ?
ORDER BY category
`, userID)
	if err != nil {
		log.Error("failed to list categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			log.Error("failed to scan category: %v", err)
			return nil, err
		}
		categories = append(categories, category)
	}
	log.Debug("found %d categories", len(categories))
	return categories, rows.Err()
}

func (r *cardRepository) Delete(ctx context.Context, id string, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%s, user_id=%d", id, userID)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM progress WHERE card_id = ? AND user_id = ?`, id, userID); err != nil {
			log.Error("failed to delete card progress: %v", err)
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ? AND user_id = ?`, id, userID)
		if err != nil {
			log.Error("failed to delete card: %v", err)
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			log.Debug("card not found for delete: id=%s", id)
			return sql.ErrNoRows
		}
		return nil
	})
}
