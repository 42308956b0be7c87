package models

import "time"

// Progress is the per-user, per-card review record. Points accumulate from
// quiz answers and never decrease except by explicit reset; Learnt is derived
// from Points and must be recomputed on every write, never set on its own.
type Progress struct {
	UserID           int64     `json:"user_id"`
	CardID           string    `json:"card_id"`
	Points           int       `json:"points"`
	ReviewCount      int       `json:"review_count"`
	CorrectAnswers   int       `json:"correct_answers"`
	IncorrectAnswers int       `json:"incorrect_answers"`
	Learnt           bool      `json:"learnt"`
	LastReviewed     time.Time `json:"last_reviewed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProgress returns a zero-valued record for a card that has never been
// reviewed.
func NewProgress(userID int64, cardID string) Progress {
	return Progress{UserID: userID, CardID: cardID}
}

// CategoryStats is the rolled-up view of one category. It is recomputed from
// the progress records on demand and never persisted.
type CategoryStats struct {
	Category      string `json:"category"`
	TotalCards    int    `json:"total_cards"`
	MasteredCards int    `json:"mastered_cards"`
	TotalPoints   int    `json:"total_points"`
	AveragePoints int    `json:"average_points"`
}
