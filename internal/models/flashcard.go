package models

import "time"

// ExampleSentence is a source/target sentence pair attached to a flashcard.
type ExampleSentence struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Flashcard is a single vocabulary card. Cards are immutable once created;
// all mutable review state lives in Progress.
type Flashcard struct {
	ID            string            `json:"id"`
	UserID        int64             `json:"user_id"`
	SourceText    string            `json:"source_text"`
	TargetText    string            `json:"target_text"`
	Pronunciation string            `json:"pronunciation,omitempty"`
	Category      string            `json:"category"`
	Examples      []ExampleSentence `json:"examples,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CardFilter narrows flashcard listings.
type CardFilter struct {
	UserID   int64
	Category string
	Limit    int
	Offset   int
}
