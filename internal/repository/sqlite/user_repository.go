package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
	"github.com/celyn/geirfa/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, created_at FROM users WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("listing users")

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, created_at FROM users ORDER BY username`)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	log.Debug("found %d users", len(users))
	return users, rows.Err()
}

func (r *userRepository) Upsert(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: username=%s", username)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (username) VALUES (?)
ON CONFLICT(username) DO NOTHING
`, username)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, `
SELECT id, username, created_at FROM users WHERE username = ?
`, username).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		log.Error("failed to get user after upsert: %v", err)
		return nil, err
	}
	log.Debug("user ready: id=%d", u.ID)
	return &u, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("deleting user: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM progress WHERE user_id = ?`, id); err != nil {
			log.Error("failed to delete user progress: %v", err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM flashcards WHERE user_id = ?`, id); err != nil {
			log.Error("failed to delete user cards: %v", err)
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			log.Error("failed to delete user: %v", err)
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			log.Debug("user not found for delete: id=%d", id)
			return sql.ErrNoRows
		}
		return nil
	})
}
