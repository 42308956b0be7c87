package learning

import (
	"fmt"
	"strings"
	"time"

	"github.com/celyn/geirfa/internal/models"
)

// ScoreResult describes the outcome of one scored quiz answer.
type ScoreResult struct {
	Correct  bool
	Delta    int
	Mastered bool // true only when this answer crossed the mastery threshold
}

// AnswerMatches reports whether a submitted answer matches the card's target
// text. Matching is exact after trimming surrounding whitespace and folding
// case; there is no partial credit or fuzzy matching.
func AnswerMatches(target, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(target))
}

// ScoreAnswer evaluates an answer against a card and returns the updated
// progress record. Points are clamped to [0, MaxPoints] and Learnt is
// recomputed from the new points in the same step so the two fields can
// never drift apart.
func (s Settings) ScoreAnswer(p models.Progress, targetText, answer string, now time.Time) (models.Progress, ScoreResult) {
	res := ScoreResult{Correct: AnswerMatches(targetText, answer)}

	wasLearnt := p.Learnt
	if res.Correct {
		res.Delta = s.PointsPerCorrect
		p.CorrectAnswers++
	} else {
		p.IncorrectAnswers++
	}

	p.Points += res.Delta
	if p.Points > s.MaxPoints {
		p.Points = s.MaxPoints
	}
	if p.Points < 0 {
		p.Points = 0
	}
	p.Learnt = p.Points >= s.MaxPoints
	p.LastReviewed = now
	p.UpdatedAt = now

	res.Mastered = p.Learnt && !wasLearnt
	return p, res
}

// CheckInvariants verifies the learnt/points consistency of a record. A
// violation is a programming error, not user input, so callers should treat
// the returned error as fatal in development.
func (s Settings) CheckInvariants(p models.Progress) error {
	if p.Points < 0 || p.Points > s.MaxPoints {
		return fmt.Errorf("progress for card %s: points %d outside [0,%d]", p.CardID, p.Points, s.MaxPoints)
	}
	if p.Learnt != (p.Points >= s.MaxPoints) {
		return fmt.Errorf("progress for card %s: learnt=%t inconsistent with points=%d", p.CardID, p.Learnt, p.Points)
	}
	return nil
}
