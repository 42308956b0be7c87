package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/models"
)

// Helper functions shared across repository implementations

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}

func marshalExamples(examples []models.ExampleSentence) (string, error) {
	if len(examples) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(examples)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalExamples(raw string) ([]models.ExampleSentence, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var examples []models.ExampleSentence
	if err := json.Unmarshal([]byte(raw), &examples); err != nil {
		return nil, err
	}
	return examples, nil
}
